// Package config holds the runtime configuration shared by the commands.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/imgseal/imgseal/internal/encryption"
)

// Config captures flags and positional arguments for a single run.
type Config struct {
	// Common flags
	Parallel int `validate:"min=1"`
	Quiet    bool
	Stats    bool
	Suffix   string `validate:"required"`

	// Command-specific flags
	Mode       string
	PublicKey  string `mapstructure:"public-key"`
	PrivateKey string `mapstructure:"private-key"`
	Decrypt    bool

	// Positional arguments
	Files []string `validate:"min=1"`
}

// Validate validates the configuration against the struct tags and the
// command-specific key/mode requirements.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Decrypt {
		if c.PrivateKey == "" {
			return errors.New("decrypt: a private key file is required")
		}

		return nil
	}

	if c.PublicKey == "" {
		return errors.New("encrypt: a public key file is required")
	}

	if _, err := encryption.ParseMode(c.Mode); err != nil {
		return err
	}

	return nil
}
