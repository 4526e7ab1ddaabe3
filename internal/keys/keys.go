// Package keys manages the RSA key pair used to wrap symmetric image keys.
// Keys are persisted as PEM files: PKCS#8 for the private key, PKIX for the
// public key.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultBits matches the reference key pair, giving 128-byte wrapped keys.
const DefaultBits = 1024

const (
	privatePEMType = "PRIVATE KEY"
	publicPEMType  = "PUBLIC KEY"
)

// ErrNotRSA is returned when a loaded PEM file holds a non-RSA key.
var ErrNotRSA = errors.New("not an RSA key")

// Generate creates a fresh RSA key pair. The modulus must be large enough to
// OAEP-wrap a 16-byte key under SHA-256, which any modulus of 512 bits or
// more satisfies.
func Generate(bits int) (*rsa.PrivateKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generating RSA key pair: %w", err)
	}

	return key, nil
}

// Save writes the key pair as PEM files, creating parent directories as
// needed. The private key file is owner-readable only.
func Save(key *rsa.PrivateKey, privatePath, publicPath string) error {
	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("marshaling private key: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return fmt.Errorf("marshaling public key: %w", err)
	}

	if err := writePEM(privatePath, privatePEMType, privateDER, 0o600); err != nil {
		return err
	}

	return writePEM(publicPath, publicPEMType, publicDER, 0o644)
}

// LoadPrivate reads an RSA private key from a PKCS#8 PEM file.
func LoadPrivate(path string) (*rsa.PrivateKey, error) {
	block, err := readPEM(path, privatePEMType)
	if err != nil {
		return nil, err
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing private key %q: %w", path, err)
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRSA, path)
	}

	return key, nil
}

// LoadPublic reads an RSA public key from a PKIX PEM file.
func LoadPublic(path string) (*rsa.PublicKey, error) {
	block, err := readPEM(path, publicPEMType)
	if err != nil {
		return nil, err
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing public key %q: %w", path, err)
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRSA, path)
	}

	return key, nil
}

func writePEM(path, pemType string, der []byte, perm os.FileMode) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating key directory: %w", err)
		}
	}

	data := pem.EncodeToMemory(&pem.Block{Type: pemType, Bytes: der})

	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	return nil
}

func readPEM(path, pemType string) (*pem.Block, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %q", path)
	}

	if block.Type != pemType {
		return nil, fmt.Errorf("%q: expected %q PEM block, found %q", path, pemType, block.Type)
	}

	return block, nil
}
