// Package raster carries single-channel image buffers between the file
// system and the encryption core, using binary PGM (P5) as the on-disk form.
// Richer image formats are out of scope; converting to PGM is the caller's
// job.
package raster

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Image is a grayscale raster: Pix holds Width*Height 8-bit samples in
// row-major order.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Validate checks the raster invariant len(Pix) == Width*Height.
func (img Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", img.Width, img.Height)
	}

	if len(img.Pix) != img.Width*img.Height {
		return fmt.Errorf("%d pixel bytes for a %dx%d raster", len(img.Pix), img.Width, img.Height)
	}

	return nil
}

const pgmMagic = "P5"

// ReadPGM loads a binary PGM (P5, maxval 255) file.
func ReadPGM(path string) (Image, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Image{}, fmt.Errorf("opening %q: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	magic, err := nextToken(reader)
	if err != nil {
		return Image{}, fmt.Errorf("reading %q: %w", path, err)
	}

	if magic != pgmMagic {
		return Image{}, fmt.Errorf("%q: not a binary PGM file (magic %q)", path, magic)
	}

	var header [3]int // width, height, maxval

	for i := range header {
		token, err := nextToken(reader)
		if err != nil {
			return Image{}, fmt.Errorf("reading %q header: %w", path, err)
		}

		header[i], err = strconv.Atoi(token)
		if err != nil {
			return Image{}, fmt.Errorf("%q: malformed PGM header field %q", path, token)
		}
	}

	width, height, maxval := header[0], header[1], header[2]
	if maxval != 255 {
		return Image{}, fmt.Errorf("%q: unsupported maxval %d, only 8-bit PGM is handled", path, maxval)
	}

	if width <= 0 || height <= 0 {
		return Image{}, fmt.Errorf("%q: invalid dimensions %dx%d", path, width, height)
	}

	img := Image{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height),
	}

	if _, err := io.ReadFull(reader, img.Pix); err != nil {
		return Image{}, fmt.Errorf("reading %q pixels: %w", path, err)
	}

	return img, nil
}

// WritePGM stores the raster as a binary PGM (P5) file.
func WritePGM(path string, img Image) error {
	if err := img.Validate(); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n%d %d\n255\n", pgmMagic, img.Width, img.Height)
	buf.Write(img.Pix)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	return nil
}

// nextToken reads the next whitespace-delimited header token, skipping
// PGM '#' comment lines.
func nextToken(reader *bufio.Reader) (string, error) {
	var token []byte

	for {
		b, err := reader.ReadByte()
		if err != nil {
			if len(token) > 0 && err == io.EOF {
				return string(token), nil
			}

			return "", err
		}

		switch {
		case b == '#' && len(token) == 0:
			if _, err := reader.ReadString('\n'); err != nil {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, b)
		}
	}
}
