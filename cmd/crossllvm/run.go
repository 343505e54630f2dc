// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	apprun "github.com/exein-io/cross-llvm/internal/app/run"
	"github.com/exein-io/cross-llvm/internal/container"
	"github.com/exein-io/cross-llvm/internal/target"
)

// newRunCommand creates the `cross-llvm run` command.
func newRunCommand(app *App) *cobra.Command {
	var (
		engine   container.EngineType
		imageRef string
		triple   target.SupportedTriple
	)

	runCmd := &cobra.Command{
		Use:   "run [flags] -- <command>...",
		Short: "Run a command inside the toolchain container",
		Long: `Run a command inside the toolchain container for a target.

The current directory is mounted at /src, which is also the working directory
inside the container. Standard input, output and error are connected to the
container, and the command's exit status becomes cross-llvm's exit status.`,
		Example: `  cross-llvm run -- make -j8
  cross-llvm run --target aarch64-unknown-linux-gnu -- cargo build --release
  cross-llvm run --container-image localhost/my-toolchain:dev -- bash`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("container-engine") {
				engine = app.configuredEngine()
			}

			orch := apprun.New(app.resolver(),
				apprun.WithSelector(app.selector()),
				apprun.WithEngineFactory(app.newEngine),
				apprun.WithWorkDir(app.getwd),
				apprun.WithLogger(app.logger),
				apprun.WithStdio(app.stdin, app.stdout, app.stderr),
			)

			code, err := orch.Run(cmd.Context(), apprun.Request{
				Engine:  engine,
				Image:   imageRef,
				Target:  triple,
				Command: args,
			})
			if err != nil {
				return app.fail(cmd, err)
			}

			if !code.IsSuccess() {
				app.logger.Debug("container exited", "code", code)
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
				return &ExitError{Code: int(code)}
			}
			return nil
		},
	}

	// Everything after the first positional argument belongs to the command.
	runCmd.Flags().SetInterspersed(false)
	addEngineFlag(runCmd, &engine)
	addTargetFlag(runCmd, &triple)
	runCmd.Flags().StringVar(&imageRef, "container-image", "", "image to run instead of the one derived from the target")

	return runCmd
}

func addEngineFlag(cmd *cobra.Command, engine *container.EngineType) {
	cmd.Flags().Var(engine, "container-engine", "container engine to use (autodetected when omitted)")
	_ = cmd.RegisterFlagCompletionFunc("container-engine", cobra.FixedCompletions(
		[]string{string(container.EngineTypeDocker), string(container.EngineTypePodman)},
		cobra.ShellCompDirectiveNoFileComp,
	))
}

func addTargetFlag(cmd *cobra.Command, triple *target.SupportedTriple) {
	cmd.Flags().Var(triple, "target", "target triple (default: host)")
	_ = cmd.RegisterFlagCompletionFunc("target", cobra.FixedCompletions(
		target.SupportedNames(),
		cobra.ShellCompDirectiveNoFileComp,
	))
}
