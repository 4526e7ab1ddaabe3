package encryption

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Cipher composes key generation, the mode engine, key wrapping, and the
// container codec into the end-to-end image pipeline. It holds no state
// across calls; concurrent use is safe.
type Cipher struct {
	engine *Engine
	rand   io.Reader
}

// NewCipher creates a Cipher drawing symmetric keys and IVs from source.
// A nil source selects crypto/rand.
func NewCipher(source io.Reader) *Cipher {
	if source == nil {
		source = rand.Reader
	}

	return &Cipher{
		engine: NewEngine(source),
		rand:   source,
	}
}

// EncryptImage encrypts a width×height grayscale raster under a fresh
// AES-128 key and the given mode, wraps the key for the recipient, and
// returns the encoded container together with the wrapped-key blob.
// The raster length must equal width*height.
func (c *Cipher) EncryptImage(pix []byte, width, height int, wrapper KeyWrapper, mode Mode) (container, wrappedKey []byte, err error) {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		return nil, nil, fmt.Errorf("%w: %d bytes for a %dx%d raster",
			ErrDimensionMismatch, len(pix), width, height)
	}

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(c.rand, key); err != nil {
		return nil, nil, fmt.Errorf("generating symmetric key: %w", err)
	}

	ciphertext, iv, tag, err := c.engine.Encrypt(mode, key, pix)
	if err != nil {
		return nil, nil, err
	}

	wrappedKey, err = wrapper.Wrap(key)
	if err != nil {
		return nil, nil, err
	}

	container, err = Container{
		Width:      uint32(width),
		Height:     uint32(height),
		Mode:       mode,
		IV:         iv,
		Ciphertext: ciphertext,
		Tag:        tag,
	}.Encode()
	if err != nil {
		return nil, nil, err
	}

	return container, wrappedKey, nil
}

// DecryptImage decodes a container, unwraps its symmetric key, decrypts the
// payload, and validates the recovered raster against the declared
// dimensions. A mismatch returns ErrDimensionMismatch.
func (c *Cipher) DecryptImage(container, wrappedKey []byte, unwrapper KeyUnwrapper) (pix []byte, width, height int, err error) {
	decoded, err := DecodeContainer(container)
	if err != nil {
		return nil, 0, 0, err
	}

	key, err := unwrapper.Unwrap(wrappedKey)
	if err != nil {
		return nil, 0, 0, err
	}

	pix, err = c.engine.Decrypt(decoded.Mode, key, decoded.IV, decoded.Ciphertext, decoded.Tag)
	if err != nil {
		return nil, 0, 0, err
	}

	width = int(decoded.Width)
	height = int(decoded.Height)

	if len(pix) != width*height {
		return nil, 0, 0, fmt.Errorf("%w: decrypted %d bytes for a %dx%d raster",
			ErrDimensionMismatch, len(pix), width, height)
	}

	return pix, width, height, nil
}
