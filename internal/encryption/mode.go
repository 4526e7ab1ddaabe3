package encryption

import (
	"crypto/aes"
	"fmt"
	"strings"
)

// Mode identifies the AES mode of operation applied to the image payload.
type Mode byte

const (
	// ModeECB encrypts blocks independently. No IV, PKCS#7 padded.
	ModeECB Mode = iota
	// ModeCBC chains blocks under a random 16-byte IV. PKCS#7 padded.
	ModeCBC
	// ModeCTR is a stream mode seeded by a random 16-byte nonce+counter value.
	ModeCTR
	// ModeCFB is a stream mode under a random 16-byte IV.
	ModeCFB
	// ModeOCB is the authenticated mode: 15-byte nonce, 16-byte trailing tag.
	ModeOCB
)

const (
	// KeySize is the AES-128 key length in bytes.
	KeySize = 16

	// TagSize is the OCB authentication tag length in bytes.
	TagSize = 16

	// ocbNonceSize sits at the high end of OCB's allowed 1-15 byte range to
	// minimize nonce-reuse risk.
	ocbNonceSize = 15
)

// modeSpec captures the framing a mode imposes on the container: the IV/nonce
// length, whether the payload is block padded, and whether a trailing
// authentication tag is present.
type modeSpec struct {
	name   string
	ivLen  int
	padded bool
	tagged bool
}

// modeSpecs is the single source of truth for per-mode framing, consulted by
// both the engine and the container codec so the two can never disagree.
var modeSpecs = map[Mode]modeSpec{
	ModeECB: {name: "ECB", ivLen: 0, padded: true},
	ModeCBC: {name: "CBC", ivLen: aes.BlockSize, padded: true},
	ModeCTR: {name: "CTR", ivLen: aes.BlockSize},
	ModeCFB: {name: "CFB", ivLen: aes.BlockSize},
	ModeOCB: {name: "OCB", ivLen: ocbNonceSize, tagged: true},
}

// ParseMode resolves a case-insensitive mode identifier.
func ParseMode(name string) (Mode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))

	for mode, spec := range modeSpecs {
		if spec.name == normalized {
			return mode, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, name)
}

// ModeNames lists the supported mode identifiers.
func ModeNames() []string {
	return []string{"ECB", "CBC", "CTR", "CFB", "OCB"}
}

// String returns the canonical upper-case mode name.
func (m Mode) String() string {
	if spec, ok := modeSpecs[m]; ok {
		return spec.name
	}

	return fmt.Sprintf("Mode(%d)", byte(m))
}

// IVLen returns the IV/nonce length the mode requires.
func (m Mode) IVLen() int {
	return modeSpecs[m].ivLen
}

// Padded reports whether the mode requires PKCS#7 block padding.
func (m Mode) Padded() bool {
	return modeSpecs[m].padded
}

// Authenticated reports whether the mode produces an authentication tag.
func (m Mode) Authenticated() bool {
	return modeSpecs[m].tagged
}
