// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exein-io/cross-llvm/internal/target"
)

// newTargetsCommand creates the `cross-llvm targets` command.
func newTargetsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List supported target triples",
		Long: `List supported target triples with the image each one maps to on this host
and whether a recipe for building it exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := app.resolver()

			fmt.Fprintf(app.stdout, "%s %s\n\n", SubtitleStyle.Render("host:"), resolver.Host())
			for _, s := range target.Supported() {
				t := s.Triple()

				recipe := SubtitleStyle.Render("no recipe")
				if _, ok := resolver.RecipePath(t); ok {
					recipe = SuccessStyle.Render("recipe")
				}
				fmt.Fprintf(app.stdout, "%-28s %-6s %s  %s\n",
					s, resolver.Variant(t), CmdStyle.Render(resolver.Tag(t)), recipe)
			}
			return nil
		},
	}
}
