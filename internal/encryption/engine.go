package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// Engine performs the raw per-mode cipher transforms. IVs and nonces are
// drawn from the injected randomness source, which defaults to the
// cryptographically secure system source.
type Engine struct {
	rand io.Reader
}

// NewEngine creates an Engine drawing IV/nonce material from source.
// A nil source selects crypto/rand.
func NewEngine(source io.Reader) *Engine {
	if source == nil {
		source = rand.Reader
	}

	return &Engine{rand: source}
}

// Encrypt encrypts plaintext with the given AES-128 key under mode.
// It returns the ciphertext, the freshly generated IV/nonce (empty for ECB),
// and, for the authenticated mode, a 16-byte tag.
func (e *Engine) Encrypt(mode Mode, key, plaintext []byte) (ciphertext, iv, tag []byte, err error) {
	spec, ok := modeSpecs[mode]
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, byte(mode))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating cipher: %w", err)
	}

	if spec.ivLen > 0 {
		iv = make([]byte, spec.ivLen)
		if _, err := io.ReadFull(e.rand, iv); err != nil {
			return nil, nil, nil, fmt.Errorf("generating IV: %w", err)
		}
	}

	data := plaintext
	if spec.padded {
		data = pkcs7Pad(plaintext, aes.BlockSize)
	}

	ciphertext, tag, err = backends[mode].encrypt(block, iv, data)
	if err != nil {
		return nil, nil, nil, err
	}

	return ciphertext, iv, tag, nil
}

// Decrypt reverses Encrypt. For the authenticated mode the tag is verified
// before any plaintext is released; verification failure returns
// ErrAuthenticationFailed and no data.
func (e *Engine) Decrypt(mode Mode, key, iv, ciphertext, tag []byte) ([]byte, error) {
	spec, ok := modeSpecs[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, byte(mode))
	}

	if len(iv) != spec.ivLen {
		return nil, fmt.Errorf("%w: %s expects %d-byte IV, got %d",
			ErrMalformedContainer, spec.name, spec.ivLen, len(iv))
	}

	if spec.padded && len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not block aligned", ErrMalformedContainer)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	plaintext, err := backends[mode].decrypt(block, iv, ciphertext, tag)
	if err != nil {
		return nil, err
	}

	if spec.padded {
		return pkcs7Unpad(plaintext)
	}

	return plaintext, nil
}

// modeCipher is the capability a mode backend provides: a raw transform of an
// in-memory buffer, with the tag produced/consumed only by the authenticated
// mode. Two implementations exist, one over crypto/cipher and one over the
// OCB AEAD; callers never depend on which library services a given mode.
type modeCipher interface {
	encrypt(block cipher.Block, iv, plaintext []byte) (ciphertext, tag []byte, err error)
	decrypt(block cipher.Block, iv, ciphertext, tag []byte) ([]byte, error)
}

// backends maps every supported mode to its transform.
var backends = map[Mode]modeCipher{
	ModeECB: blockCipher{mode: ModeECB},
	ModeCBC: blockCipher{mode: ModeCBC},
	ModeCTR: blockCipher{mode: ModeCTR},
	ModeCFB: blockCipher{mode: ModeCFB},
	ModeOCB: ocbCipher{},
}
