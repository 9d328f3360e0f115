package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/stegecrypt/internal/config"
)

// NewEmbedCommand creates a new cobra command for the embed subcommand.
func NewEmbedCommand(v *viper.Viper) *cobra.Command {
	cmd := newCommand(v, config.OpEmbed, &cobra.Command{
		Use:   "embed -im carrier.png -d data -o output.png",
		Short: "Hide a file in the least significant bits of an image",
		Long: `Hides the data file in a copy of the carrier image. The carrier may be PNG,
BMP or TIFF; the output is always PNG.`,
	})

	cmd.Flags().StringP("image", "m", "", "Carrier image (.png, .bmp, .tif, .tiff); -im is accepted")
	cmd.Flags().StringP("data", "d", "", "File to hide")
	cmd.Flags().StringP("output", "o", "", "Output image (.png)")

	return cmd
}

// NewExtractCommand creates a new cobra command for the extract subcommand.
func NewExtractCommand(v *viper.Viper) *cobra.Command {
	cmd := newCommand(v, config.OpExtract, &cobra.Command{
		Use:   "extract -im image.png -o output",
		Short: "Recover a file hidden with embed",
	})

	cmd.Flags().StringP("image", "m", "", "Image holding the payload; -im is accepted")
	cmd.Flags().StringP("output", "o", "", "Output file")

	return cmd
}

// NewHideCommand creates a new cobra command for the hide subcommand.
func NewHideCommand(v *viper.Viper) *cobra.Command {
	cmd := newCommand(v, config.OpHide, &cobra.Command{
		Use:   "hide -im carrier.png -d data -k keyfile -o output.png",
		Short: "Encrypt a file and hide the container in an image",
	})

	cmd.Flags().StringP("image", "m", "", "Carrier image (.png, .bmp, .tif, .tiff); -im is accepted")
	cmd.Flags().StringP("data", "d", "", "File to encrypt and hide")
	cmd.Flags().StringP("key", "k", "", "Key file (.txt, .png, .jpg, .jpeg)")
	cmd.Flags().StringP("output", "o", "", "Output image (.png)")
	cmd.Flags().String("suite", "aes-gcm", "Cipher suite: aes-gcm or chacha20-poly1305")

	return cmd
}

// NewRevealCommand creates a new cobra command for the reveal subcommand.
func NewRevealCommand(v *viper.Viper) *cobra.Command {
	cmd := newCommand(v, config.OpReveal, &cobra.Command{
		Use:   "reveal -im image.png -k keyfile -o output",
		Short: "Extract and decrypt a file hidden with hide",
	})

	cmd.Flags().StringP("image", "m", "", "Image holding the container; -im is accepted")
	cmd.Flags().StringP("key", "k", "", "Key file (.txt, .png, .jpg, .jpeg)")
	cmd.Flags().StringP("output", "o", "", "Output file")

	return cmd
}
