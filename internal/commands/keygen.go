package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imgseal/imgseal/internal/keys"
)

// NewKeygenCommand creates the cobra command for the keygen subcommand.
func NewKeygenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "keygen [flags]",
		Aliases:           []string{"gen"},
		Short:             "Generate a new RSA key pair",
		Args:              cobra.NoArgs,
		PersistentPreRunE: bindFlags,
		RunE: func(_ *cobra.Command, _ []string) error {
			bits := viper.GetInt("bits")
			privatePath := viper.GetString("private-key")
			publicPath := viper.GetString("public-key")

			key, err := keys.Generate(bits)
			if err != nil {
				return err
			}

			if err := keys.Save(key, privatePath, publicPath); err != nil {
				return err
			}

			if !viper.GetBool("quiet") {
				fmt.Printf("Wrote %q and %q (%d-bit modulus)\n", privatePath, publicPath, bits)
			}

			return nil
		},
	}

	cmd.Flags().Int("bits", keys.DefaultBits, "RSA modulus size in bits")
	cmd.Flags().String("private-key", "keys/private_key.pem", "Output path for the private key (PEM)")
	cmd.Flags().String("public-key", "keys/public_key.pem", "Output path for the public key (PEM)")

	return cmd
}
