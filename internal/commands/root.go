package commands

import (
	"runtime"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command with the flags shared by all
// subcommands.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "imgseal [flags] command [flags]",
		Short: "Hybrid encryption for grayscale images",
		Long: `Encrypts grayscale images into self-describing containers using AES-128
in a selectable mode (ECB, CBC, CTR, CFB, OCB), wrapping the per-image key
with RSA-OAEP so only the private key holder can recover it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("stats", false, "Print run statistics")
	root.PersistentFlags().String("suffix", ".enc", "Suffix appended to encrypted containers")

	root.AddCommand(NewEncryptCommand(), NewDecryptCommand(), NewKeygenCommand())

	return root
}
