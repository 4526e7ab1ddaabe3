// Package commands provides the command-line interface for the imgseal tool.
//
// It implements commands for:
//   - key pair generation
//   - image encryption
//   - image decryption
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imgseal/imgseal/internal/config"
	"github.com/imgseal/imgseal/internal/logic"
)

// bindFlags wires the command's local and inherited flags into viper.
func bindFlags(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
		return fmt.Errorf("binding inherited flags: %w", err)
	}

	return nil
}

// runWith unmarshals the bound configuration, applies the command-specific
// overrides, validates, and runs the batch logic.
func runWith(args []string, decrypt bool) error {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	cfg.Files = args
	cfg.Decrypt = decrypt

	if err := cfg.Validate(); err != nil {
		return err
	}

	return logic.Run(&cfg)
}
