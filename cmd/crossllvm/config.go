// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exein-io/cross-llvm/internal/config"
)

const (
	formatCUE  = "cue"
	formatTOML = "toml"
)

// newConfigCommand creates the `cross-llvm config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cross-llvm configuration",
		Long: `Manage cross-llvm configuration.

Configuration is read from the --config file when given, otherwise from
$XDG_CONFIG_HOME/cross-llvm/config.cue, falling back to ./cross-llvm.cue.
CROSS_LLVM_* environment variables override file values, e.g.
CROSS_LLVM_CONTAINER_ENGINE=podman or CROSS_LLVM_IMAGE_REGISTRY=...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", formatCUE, "output format (cue|toml)")
	_ = showCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatCUE, formatTOML}, cobra.ShellCompDirectiveNoFileComp,
	))

	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfgPath == "" {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(using defaults)"))
				return nil
			}
			fmt.Fprintln(app.stdout, app.cfgPath)
			return nil
		},
	})

	return cfgCmd
}

func (a *App) showConfig(format string) error {
	switch format {
	case formatCUE:
		fmt.Fprint(a.stdout, config.GenerateCUE(a.cfg))
	case formatTOML:
		out, err := config.GenerateTOML(a.cfg)
		if err != nil {
			return err
		}
		_, _ = a.stdout.Write(out)
	default:
		return fmt.Errorf("unknown format %q (valid: %s, %s)", format, formatCUE, formatTOML)
	}
	return nil
}
