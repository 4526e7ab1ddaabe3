package logic_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/imgseal/imgseal/internal/config"
	"github.com/imgseal/imgseal/internal/keys"
	"github.com/imgseal/imgseal/internal/logic"
	"github.com/imgseal/imgseal/internal/raster"
)

// writeFixtures creates a key pair and a set of PGM images in dir.
func writeFixtures(t *testing.T, dir string, images int) (privatePath, publicPath string, pgmPaths []string, pix [][]byte) {
	t.Helper()

	privatePath = filepath.Join(dir, "private_key.pem")
	publicPath = filepath.Join(dir, "public_key.pem")

	key, err := keys.Generate(keys.DefaultBits)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if err := keys.Save(key, privatePath, publicPath); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	for i := range images {
		const width, height = 12, 9

		img := raster.Image{Width: width, Height: height, Pix: make([]byte, width*height)}
		for j := range img.Pix {
			img.Pix[j] = byte(i*31 + j)
		}

		path := filepath.Join(dir, "image"+string(rune('a'+i))+".pgm")
		if err := raster.WritePGM(path, img); err != nil {
			t.Fatalf("WritePGM error: %v", err)
		}

		pgmPaths = append(pgmPaths, path)
		pix = append(pix, img.Pix)
	}

	return privatePath, publicPath, pgmPaths, pix
}

func TestRunEncryptDecrypt(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"ECB", "CBC", "CTR", "CFB", "OCB"} {
		t.Run(mode, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			privatePath, publicPath, pgmPaths, pix := writeFixtures(t, dir, 3)

			encCfg := config.Config{
				Parallel:  2,
				Quiet:     true,
				Suffix:    ".enc",
				Mode:      mode,
				PublicKey: publicPath,
				Files:     pgmPaths,
			}

			if err := logic.Run(&encCfg); err != nil {
				t.Fatalf("encrypt Run error: %v", err)
			}

			var containers []string

			for _, path := range pgmPaths {
				container := path + ".enc"
				containers = append(containers, container)

				if _, err := os.Stat(container); err != nil {
					t.Fatalf("missing container: %v", err)
				}

				if _, err := os.Stat(container + ".key"); err != nil {
					t.Fatalf("missing wrapped-key sidecar: %v", err)
				}
			}

			decCfg := config.Config{
				Parallel:   2,
				Quiet:      true,
				Suffix:     ".enc",
				PrivateKey: privatePath,
				Decrypt:    true,
				Files:      containers,
			}

			if err := logic.Run(&decCfg); err != nil {
				t.Fatalf("decrypt Run error: %v", err)
			}

			for i, path := range pgmPaths {
				img, err := raster.ReadPGM(path)
				if err != nil {
					t.Fatalf("ReadPGM error: %v", err)
				}

				if !bytes.Equal(img.Pix, pix[i]) {
					t.Errorf("recovered %q differs from original", path)
				}
			}
		})
	}
}

func TestRunReportsPerFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, publicPath, pgmPaths, _ := writeFixtures(t, dir, 1)

	missing := filepath.Join(dir, "missing.pgm")

	cfg := config.Config{
		Parallel:  1,
		Quiet:     true,
		Suffix:    ".enc",
		Mode:      "CBC",
		PublicKey: publicPath,
		Files:     []string{pgmPaths[0], missing},
	}

	if err := logic.Run(&cfg); err == nil {
		t.Fatal("Run succeeded despite a missing input file")
	}

	// The good file is still processed.
	if _, err := os.Stat(pgmPaths[0] + ".enc"); err != nil {
		t.Errorf("valid input was not processed: %v", err)
	}
}

func TestRunRejectsWrongPrivateKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, publicPath, pgmPaths, _ := writeFixtures(t, dir, 1)

	encCfg := config.Config{
		Parallel:  1,
		Quiet:     true,
		Suffix:    ".enc",
		Mode:      "OCB",
		PublicKey: publicPath,
		Files:     pgmPaths,
	}

	if err := logic.Run(&encCfg); err != nil {
		t.Fatalf("encrypt Run error: %v", err)
	}

	otherDir := t.TempDir()
	otherPrivate, _, _, _ := writeFixtures(t, otherDir, 1)

	decCfg := config.Config{
		Parallel:   1,
		Quiet:      true,
		Suffix:     ".enc",
		PrivateKey: otherPrivate,
		Decrypt:    true,
		Files:      []string{pgmPaths[0] + ".enc"},
	}

	if err := logic.Run(&decCfg); err == nil {
		t.Error("decrypt Run succeeded with the wrong private key")
	}
}
