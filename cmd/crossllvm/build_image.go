// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exein-io/cross-llvm/internal/app/build"
	"github.com/exein-io/cross-llvm/internal/container"
	"github.com/exein-io/cross-llvm/internal/target"
)

// newBuildImageCommand creates the `cross-llvm build-container-image` command.
func newBuildImageCommand(app *App) *cobra.Command {
	var (
		engine  container.EngineType
		triple  target.SupportedTriple
		tags    []string
		noCache bool
		push    bool
	)

	buildCmd := &cobra.Command{
		Use:   "build-container-image",
		Short: "Build (and optionally push) the toolchain image for a target",
		Long: `Build the toolchain image for a target from its recipe.

The recipe is read from <recipes_dir>/Dockerfile.{native|cross}-<triple>, where
"native" is used when the target has the host's architecture. Without --tag the
image is tagged <registry>/{native|cross}-<triple>. With --push every tag is
pushed in order, stopping at the first failure.`,
		Example: `  cross-llvm build-container-image
  cross-llvm build-container-image --target aarch64-unknown-linux-musl --no-cache
  cross-llvm build-container-image -t registry.example.com/tc:1 -t registry.example.com/tc:latest --push`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("container-engine") {
				engine = app.configuredEngine()
			}

			orch := build.New(app.resolver(),
				build.WithSelector(app.selector()),
				build.WithEngineFactory(app.newEngine),
				build.WithLogger(app.logger),
				build.WithOutput(app.stdout, app.stderr),
			)

			req := build.Request{
				Engine:  engine,
				Target:  triple,
				Tags:    tags,
				NoCache: noCache,
				Push:    push,
			}
			if _, err := orch.Build(cmd.Context(), req); err != nil {
				return app.fail(cmd, err)
			}

			verb := "built"
			if push {
				verb = "built and pushed"
			}
			for _, tag := range orch.Tags(req) {
				fmt.Fprintf(app.stderr, "%s %s %s\n", SuccessStyle.Render("✓"), verb, CmdStyle.Render(tag))
			}
			return nil
		},
	}

	addEngineFlag(buildCmd, &engine)
	addTargetFlag(buildCmd, &triple)
	buildCmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "image tag (repeatable; default: derived from the target)")
	buildCmd.Flags().BoolVar(&noCache, "no-cache", false, "do not use the layer cache")
	buildCmd.Flags().BoolVar(&push, "push", false, "push every tag after a successful build")

	return buildCmd
}
