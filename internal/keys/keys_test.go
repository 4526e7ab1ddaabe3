package keys_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/imgseal/imgseal/internal/keys"
)

func TestGenerateSaveLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "nested", "private_key.pem")
	publicPath := filepath.Join(dir, "nested", "public_key.pem")

	key, err := keys.Generate(keys.DefaultBits)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if got := key.Size(); got != keys.DefaultBits/8 {
		t.Errorf("modulus size = %d bytes, want %d", got, keys.DefaultBits/8)
	}

	if err := keys.Save(key, privatePath, publicPath); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	private, err := keys.LoadPrivate(privatePath)
	if err != nil {
		t.Fatalf("LoadPrivate error: %v", err)
	}

	if private.D.Cmp(key.D) != 0 {
		t.Error("loaded private key differs from generated key")
	}

	public, err := keys.LoadPublic(publicPath)
	if err != nil {
		t.Fatalf("LoadPublic error: %v", err)
	}

	if public.N.Cmp(key.N) != 0 || public.E != key.E {
		t.Error("loaded public key differs from generated key")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	notPEM := filepath.Join(dir, "garbage.pem")
	if err := os.WriteFile(notPEM, []byte("not a pem file"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := keys.LoadPrivate(notPEM); err == nil {
		t.Error("LoadPrivate accepted a non-PEM file")
	}

	if _, err := keys.LoadPublic(notPEM); err == nil {
		t.Error("LoadPublic accepted a non-PEM file")
	}

	if _, err := keys.LoadPrivate(filepath.Join(dir, "missing.pem")); err == nil {
		t.Error("LoadPrivate accepted a missing file")
	}
}

// Loading a public PEM through LoadPrivate fails on the block type check.
func TestLoadWrongBlockType(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private_key.pem")
	publicPath := filepath.Join(dir, "public_key.pem")

	key, err := keys.Generate(keys.DefaultBits)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if err := keys.Save(key, privatePath, publicPath); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if _, err := keys.LoadPrivate(publicPath); err == nil {
		t.Error("LoadPrivate accepted a public key file")
	}

	if _, err := keys.LoadPublic(privatePath); err == nil {
		t.Error("LoadPublic accepted a private key file")
	}
}
