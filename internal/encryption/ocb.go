package encryption

import (
	"crypto/cipher"
	"fmt"

	"github.com/ProtonMail/go-crypto/ocb"
)

// ocbCipher services the authenticated mode through the OCB AEAD. The AEAD
// appends the tag to its output; this backend splits it off so the container
// can frame ciphertext and tag separately.
type ocbCipher struct{}

func (ocbCipher) encrypt(block cipher.Block, nonce, plaintext []byte) ([]byte, []byte, error) {
	aead, err := ocb.NewOCBWithNonceAndTagSize(block, ocbNonceSize, TagSize)
	if err != nil {
		return nil, nil, fmt.Errorf("creating OCB: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize

	return sealed[:split], sealed[split:], nil
}

func (ocbCipher) decrypt(block cipher.Block, nonce, ciphertext, tag []byte) ([]byte, error) {
	aead, err := ocb.NewOCBWithNonceAndTagSize(block, ocbNonceSize, TagSize)
	if err != nil {
		return nil, fmt.Errorf("creating OCB: %w", err)
	}

	if len(tag) != TagSize {
		return nil, fmt.Errorf("%w: tag is %d bytes", ErrAuthenticationFailed, len(tag))
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	return plaintext, nil
}
