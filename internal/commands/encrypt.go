package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/imgseal/imgseal/internal/encryption"
)

// NewEncryptCommand creates the cobra command for the encrypt subcommand.
func NewEncryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "encrypt [flags] files...",
		Aliases:           []string{"enc"},
		Short:             "Encrypt PGM images into containers",
		Args:              cobra.MinimumNArgs(1),
		PersistentPreRunE: bindFlags,
		RunE: func(_ *cobra.Command, args []string) error {
			return runWith(args, false)
		},
	}

	cmd.Flags().StringP("public-key", "p", "keys/public_key.pem", "Path to the RSA public key (PEM)")
	cmd.Flags().StringP("mode", "m", "CBC",
		"Cipher mode: "+strings.Join(encryption.ModeNames(), ", "))

	return cmd
}
