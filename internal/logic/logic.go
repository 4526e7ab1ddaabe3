// Package logic implements the batch encryption/decryption of image files.
package logic

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/imgseal/imgseal/internal/config"
	"github.com/imgseal/imgseal/internal/encryption"
	"github.com/imgseal/imgseal/internal/fileutil"
	"github.com/imgseal/imgseal/internal/keys"
	"github.com/imgseal/imgseal/internal/raster"
)

// keySuffix names the wrapped-key sidecar next to each container.
const keySuffix = ".key"

// Result represents the outcome of processing a single file.
type Result struct {
	// Input file path
	Input string

	// Output file path
	Output string

	// Output size in bytes (container plus sidecar for encryption)
	OutputSize int64

	// Any error that occurred during processing
	Error error
}

// Run processes all configured files and optionally prints run statistics.
func Run(cfg *config.Config) error {
	start := time.Now()

	proc, err := newProcessor(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.processFiles()

	if cfg.Stats {
		printStats(processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("processing files: %w", err)
	}

	return nil
}

// processor drives the per-file pipeline with a bounded worker pool.
type processor struct {
	cfg    *config.Config
	cipher *encryption.Cipher

	// mode and wrapper serve encrypt runs, unwrapper serves decrypt runs
	mode      encryption.Mode
	wrapper   encryption.KeyWrapper
	unwrapper encryption.KeyUnwrapper

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

func newProcessor(cfg *config.Config) (*processor, error) {
	proc := &processor{
		cfg:     cfg,
		cipher:  encryption.NewCipher(nil),
		results: make(chan Result, len(cfg.Files)),
	}

	if cfg.Decrypt {
		private, err := keys.LoadPrivate(cfg.PrivateKey)
		if err != nil {
			return nil, err
		}

		proc.unwrapper = encryption.OAEPUnwrapper{Private: private}

		return proc, nil
	}

	public, err := keys.LoadPublic(cfg.PublicKey)
	if err != nil {
		return nil, err
	}

	proc.wrapper = encryption.OAEPWrapper{Public: public}

	mode, err := encryption.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	proc.mode = mode

	return proc, nil
}

// processFiles runs the workers and drains results through a printer
// goroutine. It returns the processed/errored counts and total output size.
func (p *processor) processFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			processed++

			totalSize += result.OutputSize

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", result.Input, result.Output)
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	return processed, errored, totalSize, err
}

func (p *processor) processFile(filename, outPath string) (int64, error) {
	if p.cfg.Decrypt {
		return p.decryptFile(filename, outPath)
	}

	return p.encryptFile(filename, outPath)
}

// encryptFile reads a PGM image and writes the container plus the wrapped-key
// sidecar.
func (p *processor) encryptFile(filename, outPath string) (int64, error) {
	img, err := raster.ReadPGM(filename)
	if err != nil {
		return 0, err
	}

	container, wrappedKey, err := p.cipher.EncryptImage(img.Pix, img.Width, img.Height, p.wrapper, p.mode)
	if err != nil {
		return 0, err
	}

	const ownerReadWrite = 0o600

	if err := fileutil.WriteAtomic(outPath, container, ownerReadWrite); err != nil {
		return 0, err
	}

	if err := fileutil.WriteAtomic(outPath+keySuffix, wrappedKey, ownerReadWrite); err != nil {
		return 0, err
	}

	return int64(len(container) + len(wrappedKey)), nil
}

// decryptFile reads a container and its sidecar and writes the recovered PGM.
func (p *processor) decryptFile(filename, outPath string) (int64, error) {
	container, err := os.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("reading container: %w", err)
	}

	wrappedKey, err := os.ReadFile(filename + keySuffix)
	if err != nil {
		return 0, fmt.Errorf("reading wrapped key: %w", err)
	}

	pix, width, height, err := p.cipher.DecryptImage(container, wrappedKey, p.unwrapper)
	if err != nil {
		return 0, err
	}

	img := raster.Image{Width: width, Height: height, Pix: pix}
	if err := raster.WritePGM(outPath, img); err != nil {
		return 0, err
	}

	return fileutil.Size(outPath)
}

// outputPath derives the output file path from the input filename and the
// configured container suffix.
func (p *processor) outputPath(filename string) string {
	if p.cfg.Decrypt {
		name := strings.TrimSuffix(filename, p.cfg.Suffix)
		if name == filename {
			name += ".pgm"
		}

		return name
	}

	return filename + p.cfg.Suffix
}

func printStats(processed, errored int, totalSize int64, elapsed time.Duration) {
	fmt.Fprintf(os.Stderr, "Processed %d file(s), %d error(s), %s written in %s\n",
		processed, errored, humanize.Bytes(uint64(totalSize)), elapsed.Round(time.Millisecond))
}
