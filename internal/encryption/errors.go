package encryption

import "errors"

var (
	// ErrUnsupportedMode is returned when a mode identifier does not name one
	// of the five supported cipher modes.
	ErrUnsupportedMode = errors.New("unsupported cipher mode")
	// ErrInvalidPadding is returned when PKCS#7 unpadding finds inconsistent
	// pad bytes.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrAuthenticationFailed is returned when OCB tag verification fails.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrKeyUnwrapFailed is returned when the wrapped symmetric key cannot be
	// recovered with the private key.
	ErrKeyUnwrapFailed = errors.New("key unwrap failed")
	// ErrMalformedContainer is returned when a container buffer cannot be
	// decoded: short header, IV length inconsistent with the mode, or unknown
	// mode bytes.
	ErrMalformedContainer = errors.New("malformed container")
	// ErrDimensionMismatch is returned when a raster's byte length does not
	// equal its declared width*height.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
