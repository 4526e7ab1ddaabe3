package encryption

import (
	"crypto/cipher"
	"fmt"
)

// blockCipher services the four non-authenticated modes through the standard
// library's block and stream constructions. Padding policy is applied by the
// engine; this backend only transforms.
type blockCipher struct {
	mode Mode
}

func (b blockCipher) encrypt(block cipher.Block, iv, plaintext []byte) ([]byte, []byte, error) {
	ciphertext := make([]byte, len(plaintext))

	switch b.mode {
	case ModeECB:
		ecbCrypt(block.Encrypt, block.BlockSize(), ciphertext, plaintext)
	case ModeCBC:
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)
	case ModeCTR:
		cipher.NewCTR(block, iv).XORKeyStream(ciphertext, plaintext)
	case ModeCFB:
		cipher.NewCFBEncrypter(block, iv).XORKeyStream(ciphertext, plaintext)
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, byte(b.mode))
	}

	return ciphertext, nil, nil
}

func (b blockCipher) decrypt(block cipher.Block, iv, ciphertext, _ []byte) ([]byte, error) {
	plaintext := make([]byte, len(ciphertext))

	switch b.mode {
	case ModeECB:
		ecbCrypt(block.Decrypt, block.BlockSize(), plaintext, ciphertext)
	case ModeCBC:
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	case ModeCTR:
		cipher.NewCTR(block, iv).XORKeyStream(plaintext, ciphertext)
	case ModeCFB:
		cipher.NewCFBDecrypter(block, iv).XORKeyStream(plaintext, ciphertext)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, byte(b.mode))
	}

	return plaintext, nil
}

// ecbCrypt applies the block primitive to each block independently.
// src must be block aligned.
func ecbCrypt(crypt func(dst, src []byte), size int, dst, src []byte) {
	for i := 0; i < len(src); i += size {
		crypt(dst[i:i+size], src[i:i+size])
	}
}
