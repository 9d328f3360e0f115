package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/stegecrypt/internal/config"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(v *viper.Viper) *cobra.Command {
	cmd := newCommand(v, config.OpEncrypt, &cobra.Command{
		Use:     "encrypt -i input -k keyfile [-o output]",
		Aliases: []string{"enc"},
		Short:   "Encrypt files into .stegecrypt containers",
		Example: `  stegecrypt encrypt -i notes.txt -k key.txt -o notes.stegecrypt
  stegecrypt encrypt -k key.txt a.txt b.txt --suite chacha20-poly1305`,
		Args: cobra.ArbitraryArgs,
	})

	cryptFlags(cmd)
	cmd.Flags().String("suite", "aes-gcm", "Cipher suite: aes-gcm or chacha20-poly1305")

	return cmd
}

// cryptFlags registers the flags shared by encrypt and decrypt.
func cryptFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("input", "i", nil, "Input file, repeatable; positional arguments are added")
	cmd.Flags().StringP("key", "k", "", "Key file (.txt, .png, .jpg, .jpeg)")
	cmd.Flags().StringP("output", "o", "", "Output file, only valid with a single input")
	cmd.Flags().Bool("delete", false, "Delete the input file after successful processing")
	cmd.Flags().Bool("preserve-timestamps", false, "Copy the input modification time to the output")
}
