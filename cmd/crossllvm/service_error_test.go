// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/exein-io/cross-llvm/internal/app/build"
	"github.com/exein-io/cross-llvm/internal/config"
	"github.com/exein-io/cross-llvm/internal/container"
	"github.com/exein-io/cross-llvm/internal/image"
	"github.com/exein-io/cross-llvm/internal/issue"
	"github.com/exein-io/cross-llvm/internal/target"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		if msg, ok := r.(string); !ok || msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()

	newServiceError(nil, 0, "")
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, issue.ImageBuildFailedId, "styled")

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q", svcErr.Error())
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantID  issue.Id
		wantMsg string
	}{
		{
			name:    "engine not found",
			err:     container.ErrEngineNotFound,
			wantID:  issue.ContainerEngineNotFoundId,
			wantMsg: "failed to select a container engine: no supported container engine (docker, podman) was found",
		},
		{
			name:    "unsupported target",
			err:     &build.UnsupportedTargetError{Triple: target.Aarch64AppleDarwin.Triple(), Recipe: "containers/Dockerfile.cross-aarch64-apple-darwin"},
			wantID:  issue.DockerfileNotFoundId,
			wantMsg: "containerized builds are not supported for target aarch64-apple-darwin",
		},
		{
			name:    "build failure",
			err:     fmt.Errorf("%w: %w", build.ErrContainerImageBuild, errors.New("exit status 1")),
			wantID:  issue.ImageBuildFailedId,
			wantMsg: "failed to build a container image",
		},
		{
			name:    "push failure",
			err:     &build.PushError{Tag: "example.com/tc:1", Cause: errors.New("exit status 1")},
			wantID:  issue.ImagePushFailedId,
			wantMsg: "failed to push a container image: example.com/tc:1",
		},
		{
			name:    "invalid config",
			err:     &config.InvalidConfigError{FieldErrors: []error{errors.New("image.registry must not be empty")}},
			wantID:  issue.ConfigLoadFailedId,
			wantMsg: "image.registry must not be empty",
		},
		{
			name:    "unsupported triple",
			err:     &target.UnsupportedTripleError{Value: "sparc-sun-solaris"},
			wantID:  issue.InvalidTargetId,
			wantMsg: "sparc-sun-solaris",
		},
		{
			name:    "invalid reference",
			err:     &image.InvalidReferenceError{Value: "Bad Ref", Cause: errors.New("invalid reference format")},
			wantID:  0,
			wantMsg: "Bad Ref",
		},
		{
			name:    "permission denied",
			err:     fmt.Errorf("spawn docker: %w", os.ErrPermission),
			wantID:  issue.PermissionDeniedId,
			wantMsg: "permission denied",
		},
		{
			name:    "unclassified",
			err:     errors.New("boom"),
			wantID:  0,
			wantMsg: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, annotated := classifyError(tt.err)
			if id != tt.wantID {
				t.Errorf("issue id = %d, want %d", id, tt.wantID)
			}
			if !errors.Is(annotated, tt.err) {
				t.Errorf("annotated error must wrap the original")
			}
			if !strings.Contains(annotated.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want it to contain %q", annotated.Error(), tt.wantMsg)
			}
		})
	}
}

func TestClassifyError_KeepsExistingContext(t *testing.T) {
	t.Parallel()

	original := issue.NewErrorContext().
		WithOperation("probe engines").
		Wrap(container.ErrEngineNotFound).
		BuildError()

	id, annotated := classifyError(original)
	if id != issue.ContainerEngineNotFoundId {
		t.Errorf("issue id = %d", id)
	}
	if annotated != original {
		t.Error("errors that already carry context must not be wrapped again")
	}
}

func TestRenderServiceError(t *testing.T) {
	t.Parallel()

	svcErr := newServiceError(container.ErrEngineNotFound, issue.ContainerEngineNotFoundId, "Error: styled\n")

	var quiet bytes.Buffer
	renderServiceError(&quiet, svcErr, false, "notty")
	if quiet.String() != "Error: styled\n" {
		t.Errorf("non-verbose output = %q", quiet.String())
	}

	var verbose bytes.Buffer
	renderServiceError(&verbose, svcErr, true, "notty")
	if !strings.Contains(verbose.String(), "No container engine found") {
		t.Errorf("verbose output should include the guide, got:\n%s", verbose.String())
	}
}
