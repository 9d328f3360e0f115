package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/stegecrypt/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:   "stegecrypt [flags] command [flags]",
		Short: "Encrypt files and hide them in images",
		Long: `Encrypts files with authenticated encryption derived from a key file and
hides arbitrary payloads in the least significant bits of lossless images.

Every flag can also be set through a STEGECRYPT_<FLAG> environment variable
or a JSONC file passed with --config.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to a JSONC configuration file")
	root.PersistentFlags().BoolP("show", "s", false, "Show the configuration and exit")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("stats", false, "Print statistics after processing")

	root.AddCommand(
		NewEncryptCommand(v),
		NewDecryptCommand(v),
		NewEmbedCommand(v),
		NewExtractCommand(v),
		NewHideCommand(v),
		NewRevealCommand(v),
		NewCapacityCommand(v),
		NewInspectCommand(v),
	)

	return root
}
