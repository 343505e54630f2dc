// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/exein-io/cross-llvm/internal/app/build"
	"github.com/exein-io/cross-llvm/internal/config"
	"github.com/exein-io/cross-llvm/internal/container"
	"github.com/exein-io/cross-llvm/internal/image"
	"github.com/exein-io/cross-llvm/internal/issue"
	"github.com/exein-io/cross-llvm/internal/target"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. Always create via newServiceError to enforce the
// Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a failure to an issue catalog ID and attaches
// suggestions when the error does not carry its own.
func classifyError(err error) (issue.Id, error) {
	var ae *issue.ActionableError
	hasContext := errors.As(err, &ae)

	annotate := func(id issue.Id, op string, suggestions ...string) (issue.Id, error) {
		if hasContext {
			return id, err
		}
		ec := issue.NewErrorContext().WithOperation(op)
		for _, s := range suggestions {
			ec = ec.WithSuggestion(s)
		}
		return id, ec.Wrap(err).BuildError()
	}

	switch {
	case errors.Is(err, container.ErrEngineNotFound):
		return annotate(issue.ContainerEngineNotFoundId, "select a container engine",
			"Install Docker or Podman and make sure it is on your PATH",
			"Or pass --container-engine explicitly")
	case errors.Is(err, build.ErrUnsupportedTarget):
		var unsupported *build.UnsupportedTargetError
		suggestion := "Add a recipe for this target under the recipes directory"
		if errors.As(err, &unsupported) {
			suggestion = "Add the recipe " + unsupported.Recipe
		}
		return annotate(issue.DockerfileNotFoundId, "resolve the container recipe",
			suggestion,
			"Run 'cross-llvm targets' to see which targets have recipes")
	case errors.Is(err, build.ErrContainerImageBuild):
		return annotate(issue.ImageBuildFailedId, "build the container image",
			"Check the build output above for the failing step")
	case errors.Is(err, build.ErrContainerImagePush):
		return annotate(issue.ImagePushFailedId, "push the container image",
			"Log in to the registry before pushing")
	case errors.Is(err, config.ErrInvalidConfig),
		hasContext && (ae.Operation == "load configuration" || ae.Operation == "validate configuration"):
		return issue.ConfigLoadFailedId, err
	case errors.Is(err, target.ErrUnsupportedTriple):
		return annotate(issue.InvalidTargetId, "resolve the target",
			"Run 'cross-llvm targets' to list supported targets")
	case errors.Is(err, image.ErrInvalidReference):
		return annotate(0, "parse the image reference",
			"Image references look like registry.example.com/name:tag")
	case errors.Is(err, os.ErrPermission):
		return annotate(issue.PermissionDeniedId, "start the container engine",
			"Check that your user may talk to the container engine")
	default:
		return 0, err
	}
}

// renderServiceError prints the styled message and, in verbose mode, the
// troubleshooting guide for the issue.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, verbose bool, style string) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if !verbose || svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			fmt.Fprintf(stderr, "%s failed to render troubleshooting guide: %v\n", WarningStyle.Render("!"), renderErr)
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}

// fail renders err for the user and turns it into exit status 1.
func (a *App) fail(cmd *cobra.Command, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	id, annotated := classifyError(err)
	msg := fmt.Sprintf("%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(annotated, a.verbose))
	svcErr := newServiceError(annotated, id, msg)
	renderServiceError(a.stderr, svcErr, a.verbose, a.issueStyle)

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: 1, Err: svcErr}
}
