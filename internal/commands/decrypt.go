package commands

import (
	"github.com/spf13/cobra"
)

// NewDecryptCommand creates the cobra command for the decrypt subcommand.
func NewDecryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "decrypt [flags] files...",
		Aliases:           []string{"dec"},
		Short:             "Decrypt containers back into PGM images",
		Args:              cobra.MinimumNArgs(1),
		PersistentPreRunE: bindFlags,
		RunE: func(_ *cobra.Command, args []string) error {
			return runWith(args, true)
		},
	}

	cmd.Flags().StringP("private-key", "k", "keys/private_key.pem", "Path to the RSA private key (PEM)")

	return cmd
}
