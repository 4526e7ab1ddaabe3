package encryption_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"

	"github.com/imgseal/imgseal/internal/encryption"
)

func testKeyPair(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("generating RSA key: %v", err)
	}

	return key
}

func TestOAEPWrapRoundTrip(t *testing.T) {
	t.Parallel()

	private := testKeyPair(t)
	wrapper := encryption.OAEPWrapper{Public: &private.PublicKey}
	unwrapper := encryption.OAEPUnwrapper{Private: private}

	key := randomBytes(t, encryption.KeySize)

	wrapped, err := wrapper.Wrap(key)
	if err != nil {
		t.Fatalf("Wrap error: %v", err)
	}

	if len(wrapped) != private.Size() {
		t.Errorf("wrapped length = %d, want modulus size %d", len(wrapped), private.Size())
	}

	recovered, err := unwrapper.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap error: %v", err)
	}

	if !bytes.Equal(recovered, key) {
		t.Error("recovered key differs from original")
	}
}

// Wrapping is randomized: the same key wraps to different blobs.
func TestOAEPWrapIsRandomized(t *testing.T) {
	t.Parallel()

	private := testKeyPair(t)
	wrapper := encryption.OAEPWrapper{Public: &private.PublicKey}

	key := randomBytes(t, encryption.KeySize)

	first, err := wrapper.Wrap(key)
	if err != nil {
		t.Fatalf("Wrap error: %v", err)
	}

	second, err := wrapper.Wrap(key)
	if err != nil {
		t.Fatalf("Wrap error: %v", err)
	}

	if bytes.Equal(first, second) {
		t.Error("two wraps of the same key produced identical blobs")
	}
}

func TestOAEPUnwrapFailures(t *testing.T) {
	t.Parallel()

	private := testKeyPair(t)
	wrapper := encryption.OAEPWrapper{Public: &private.PublicKey}
	unwrapper := encryption.OAEPUnwrapper{Private: private}

	wrapped, err := wrapper.Wrap(randomBytes(t, encryption.KeySize))
	if err != nil {
		t.Fatalf("Wrap error: %v", err)
	}

	t.Run("length mismatch", func(t *testing.T) {
		t.Parallel()

		if _, err := unwrapper.Unwrap(wrapped[:len(wrapped)-1]); !errors.Is(err, encryption.ErrKeyUnwrapFailed) {
			t.Errorf("error = %v, want ErrKeyUnwrapFailed", err)
		}
	})

	t.Run("corrupted blob", func(t *testing.T) {
		t.Parallel()

		corrupt := append([]byte(nil), wrapped...)
		corrupt[0] ^= 0xFF
		corrupt[len(corrupt)-1] ^= 0xFF

		if _, err := unwrapper.Unwrap(corrupt); !errors.Is(err, encryption.ErrKeyUnwrapFailed) {
			t.Errorf("error = %v, want ErrKeyUnwrapFailed", err)
		}
	})

	t.Run("wrong private key", func(t *testing.T) {
		t.Parallel()

		other := encryption.OAEPUnwrapper{Private: testKeyPair(t)}

		if _, err := other.Unwrap(wrapped); !errors.Is(err, encryption.ErrKeyUnwrapFailed) {
			t.Errorf("error = %v, want ErrKeyUnwrapFailed", err)
		}
	})

	t.Run("wrong payload size", func(t *testing.T) {
		t.Parallel()

		// A wrapped blob holding 8 bytes instead of a 16-byte key.
		short, err := wrapper.Wrap(randomBytes(t, 8))
		if err != nil {
			t.Fatalf("Wrap error: %v", err)
		}

		if _, err := unwrapper.Unwrap(short); !errors.Is(err, encryption.ErrKeyUnwrapFailed) {
			t.Errorf("error = %v, want ErrKeyUnwrapFailed", err)
		}
	})
}
