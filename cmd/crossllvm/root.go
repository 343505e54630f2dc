// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/exein-io/cross-llvm/internal/config"
	"github.com/exein-io/cross-llvm/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the full command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cross-llvm",
		Short: "Containerized LLVM toolchains for every supported target",
		Long: TitleStyle.Render("cross-llvm") + SubtitleStyle.Render(" - Containerized LLVM toolchains for every supported target") + `

cross-llvm runs commands inside, and builds, container images that carry
a complete toolchain for a target triple. The working directory is mounted
at /src, so builds behave the same on every developer machine and in CI.

` + SubtitleStyle.Render("Examples:") + `
  cross-llvm run -- make                                Build for the host
  cross-llvm run --target aarch64-unknown-linux-gnu -- cargo build
  cross-llvm build-container-image --target x86_64-unknown-linux-musl
  cross-llvm targets                                    List supported targets`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initRootConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/cross-llvm/config.cue)")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newBuildImageCommand(app))
	rootCmd.AddCommand(newTargetsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// errorHandler prints errors the commands have not already reported.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// initRootConfig loads the configuration and sets up logging. The --verbose
// flag wins over ui.verbose from config or environment.
func (a *App) initRootConfig(cmd *cobra.Command) error {
	loaded, err := a.loadConfig(cmd.Context(), config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil {
		return a.fail(cmd, err)
	}
	a.cfg = loaded.Config
	a.cfgPath = loaded.Path

	if !cmd.Flags().Changed("verbose") {
		a.verbose = a.cfg.UI.Verbose
	}
	a.logger = newLogger(a.stderr, a.verbose)
	if a.cfgPath != "" {
		a.logger.Debug("loaded configuration", "path", a.cfgPath)
	}
	return nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
