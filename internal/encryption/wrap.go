package encryption

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"io"
)

// KeyWrapper seals a symmetric key so only the matching private key can
// recover it. It is the only capability the encrypt side needs from the
// asymmetric key pair.
type KeyWrapper interface {
	Wrap(key []byte) ([]byte, error)
}

// KeyUnwrapper recovers a symmetric key sealed by the matching KeyWrapper.
type KeyUnwrapper interface {
	Unwrap(wrapped []byte) ([]byte, error)
}

// OAEPWrapper wraps keys with RSA-OAEP, using SHA-256 for both the padding
// mask and the digest, with an empty label. The wrapped blob length equals
// the modulus size.
type OAEPWrapper struct {
	// Public is the recipient's RSA public key.
	Public *rsa.PublicKey

	// Rand is the entropy source for OAEP; nil selects crypto/rand.
	Rand io.Reader
}

// Wrap encrypts the symmetric key under the public key.
func (w OAEPWrapper) Wrap(key []byte) ([]byte, error) {
	source := w.Rand
	if source == nil {
		source = rand.Reader
	}

	wrapped, err := rsa.EncryptOAEP(sha256.New(), source, w.Public, key, nil)
	if err != nil {
		return nil, fmt.Errorf("wrapping key: %w", err)
	}

	return wrapped, nil
}

// OAEPUnwrapper recovers keys wrapped by OAEPWrapper.
type OAEPUnwrapper struct {
	// Private is the RSA private key matching the wrapping public key.
	Private *rsa.PrivateKey
}

// Unwrap decrypts the wrapped symmetric key. It fails with ErrKeyUnwrapFailed
// if the blob length does not match the modulus size, if the OAEP padding or
// digest checks fail, or if the recovered key is not exactly KeySize bytes.
func (u OAEPUnwrapper) Unwrap(wrapped []byte) ([]byte, error) {
	if len(wrapped) != u.Private.Size() {
		return nil, fmt.Errorf("%w: wrapped key is %d bytes, modulus is %d",
			ErrKeyUnwrapFailed, len(wrapped), u.Private.Size())
	}

	key, err := rsa.DecryptOAEP(sha256.New(), nil, u.Private, wrapped, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnwrapFailed, err)
	}

	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: recovered key is %d bytes, expected %d",
			ErrKeyUnwrapFailed, len(key), KeySize)
	}

	return key, nil
}
