// Package commands provides the command-line interface for the stegecrypt tool.
//
// It implements commands for:
//   - encryption and decryption of files
//   - embedding and extracting payloads in images
//   - hiding and revealing encrypted files in images
//   - inspecting containers and carrier capacity
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/stegecrypt/internal/config"
	"github.com/idelchi/stegecrypt/internal/logic"
)

// newCommand attaches config loading and execution for op to cmd.
// Config is loaded and validated in PreRunE, so usage errors surface
// before any file is touched.
func newCommand(v *viper.Viper, op config.Operation, cmd *cobra.Command) *cobra.Command {
	var cfg *config.Config

	if cmd.Args == nil {
		cmd.Args = cobra.NoArgs
	}

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}

		loaded, err := config.Load(v, op, args...)
		if err != nil {
			return err
		}

		cfg = loaded

		return nil
	}

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if cfg.Show {
			return show(cmd.OutOrStdout(), cfg)
		}

		return logic.Run(cfg, logic.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Quiet))
	}

	return cmd
}

// show prints the resolved configuration as YAML.
func show(w io.Writer, cfg *config.Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}

	_, err = w.Write(out)

	return err
}
