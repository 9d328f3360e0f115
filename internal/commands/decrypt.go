package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/stegecrypt/internal/config"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(v *viper.Viper) *cobra.Command {
	cmd := newCommand(v, config.OpDecrypt, &cobra.Command{
		Use:     "decrypt -i input.stegecrypt -k keyfile [-o output]",
		Aliases: []string{"dec"},
		Short:   "Decrypt .stegecrypt containers",
		Long: `Decrypts containers produced by encrypt. Without --output, each result is
written next to its input with the .stegecrypt extension removed.`,
		Args: cobra.ArbitraryArgs,
	})

	cryptFlags(cmd)

	return cmd
}
