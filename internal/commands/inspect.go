package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/stegecrypt/internal/config"
)

// NewCapacityCommand creates a new cobra command for the capacity subcommand.
func NewCapacityCommand(v *viper.Viper) *cobra.Command {
	cmd := newCommand(v, config.OpCapacity, &cobra.Command{
		Use:     "capacity -im image.png [-d data]",
		Aliases: []string{"cap"},
		Short:   "Report how much data an image can hold",
	})

	cmd.Flags().StringP("image", "m", "", "Carrier image; -im is accepted")
	cmd.Flags().StringP("data", "d", "", "Optional file to check against the capacity")

	return cmd
}

// NewInspectCommand creates a new cobra command for the inspect subcommand.
func NewInspectCommand(v *viper.Viper) *cobra.Command {
	cmd := newCommand(v, config.OpInspect, &cobra.Command{
		Use:   "inspect [-i container]... [-im image.png]",
		Short: "Print container headers without decrypting",
		Args:  cobra.ArbitraryArgs,
	})

	cmd.Flags().StringSliceP("input", "i", nil, "Container file, repeatable; positional arguments are added")
	cmd.Flags().StringP("image", "m", "", "Stego image holding a container; -im is accepted")

	return cmd
}
