package encryption

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	modeFieldSize = 3

	// headerBaseSize is the fixed header portion before the variable IV:
	// width(4) + height(4) + mode(3) + iv length(2).
	headerBaseSize = 4 + 4 + modeFieldSize + 2
)

// Container is the decoded form of an encrypted image file: a fixed header,
// the ciphertext, and a trailing tag for the authenticated mode.
// All multi-byte integers are big-endian.
type Container struct {
	Width      uint32
	Height     uint32
	Mode       Mode
	IV         []byte
	Ciphertext []byte
	Tag        []byte
}

// Encode serializes the container. The IV and tag lengths must match the
// mode's framing.
func (c Container) Encode() ([]byte, error) {
	spec, ok := modeSpecs[c.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, byte(c.Mode))
	}

	if len(c.IV) != spec.ivLen {
		return nil, fmt.Errorf("encoding container: %s expects %d-byte IV, got %d",
			spec.name, spec.ivLen, len(c.IV))
	}

	wantTag := 0
	if spec.tagged {
		wantTag = TagSize
	}

	if len(c.Tag) != wantTag {
		return nil, fmt.Errorf("encoding container: %s expects %d-byte tag, got %d",
			spec.name, wantTag, len(c.Tag))
	}

	out := make([]byte, headerBaseSize, headerBaseSize+len(c.IV)+len(c.Ciphertext)+len(c.Tag))
	binary.BigEndian.PutUint32(out[0:4], c.Width)
	binary.BigEndian.PutUint32(out[4:8], c.Height)
	copy(out[8:8+modeFieldSize], spec.name) // NUL padded on the right
	binary.BigEndian.PutUint16(out[11:headerBaseSize], uint16(spec.ivLen))

	out = append(out, c.IV...)
	out = append(out, c.Ciphertext...)
	out = append(out, c.Tag...)

	return out, nil
}

// DecodeContainer parses a container buffer. The mode field is matched after
// trimming trailing NULs; the declared IV length must equal the mode's fixed
// expectation; the tag split is taken from the tail only for the
// authenticated mode. Any inconsistency returns ErrMalformedContainer.
func DecodeContainer(data []byte) (Container, error) {
	if len(data) < headerBaseSize {
		return Container{}, fmt.Errorf("%w: %d bytes is shorter than the %d-byte header",
			ErrMalformedContainer, len(data), headerBaseSize)
	}

	modeBytes := bytes.TrimRight(data[8:8+modeFieldSize], "\x00")

	mode, err := ParseMode(string(modeBytes))
	if err != nil {
		return Container{}, fmt.Errorf("%w: unknown mode %q", ErrMalformedContainer, modeBytes)
	}

	spec := modeSpecs[mode]

	ivLen := int(binary.BigEndian.Uint16(data[11:headerBaseSize]))
	if ivLen != spec.ivLen {
		return Container{}, fmt.Errorf("%w: %s declares %d-byte IV, expected %d",
			ErrMalformedContainer, spec.name, ivLen, spec.ivLen)
	}

	rest := data[headerBaseSize:]
	if len(rest) < ivLen {
		return Container{}, fmt.Errorf("%w: truncated IV", ErrMalformedContainer)
	}

	container := Container{
		Width:  binary.BigEndian.Uint32(data[0:4]),
		Height: binary.BigEndian.Uint32(data[4:8]),
		Mode:   mode,
		IV:     append([]byte(nil), rest[:ivLen]...),
	}

	body := rest[ivLen:]

	if spec.tagged {
		if len(body) < TagSize {
			return Container{}, fmt.Errorf("%w: missing authentication tag", ErrMalformedContainer)
		}

		split := len(body) - TagSize
		container.Tag = append([]byte(nil), body[split:]...)
		body = body[:split]
	}

	container.Ciphertext = append([]byte(nil), body...)

	return container, nil
}
