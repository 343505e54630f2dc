// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// ErrCommandFailed is the sentinel error wrapped by CommandFailedError.
var ErrCommandFailed = errors.New("container engine command failed")

// ErrInvalidVolumeMount is returned when a VolumeMount has an empty side.
var ErrInvalidVolumeMount = errors.New("invalid volume mount")

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// EngineOption configures an Engine.
	EngineOption func(*Engine)

	// Engine composes and spawns container engine invocations.
	// Every method spawns at most one child process and blocks until it exits.
	Engine struct {
		kind        EngineType
		execCommand ExecCommandFunc
		logger      *log.Logger
	}

	// ExitCode is the exit status of a child process.
	ExitCode int

	// CommandFailedError is returned when the engine exited with a non-zero status.
	CommandFailedError struct {
		Engine   EngineType
		Args     []string
		ExitCode ExitCode
	}

	// VolumeMount is a bind mount in "host:container" form.
	VolumeMount struct {
		HostPath      string
		ContainerPath string
	}

	// BuildOptions contains options for `buildx build`.
	BuildOptions struct {
		// Dockerfile is passed to -f as-is, relative to the working directory.
		Dockerfile string
		// ContextDir is the build context; "." when empty.
		ContextDir string
		// Tags are applied in order, one -t flag each.
		Tags []string
		// NoCache disables the layer cache.
		NoCache bool
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// RunOptions contains options for `run`.
	RunOptions struct {
		Image       string
		Command     []string
		Volumes     []VolumeMount
		WorkDir     string
		Remove      bool
		Interactive bool
		TTY         bool
		Stdin       io.Reader
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// PushOptions contains options for `push`.
	PushOptions struct {
		Stdout io.Writer
		Stderr io.Writer
	}

	// RunResult is the outcome of a container run whose child was spawned.
	RunResult struct {
		ExitCode ExitCode
	}
)

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// Error implements the error interface.
func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("%s %s exited with status %d", e.Engine, strings.Join(e.Args, " "), e.ExitCode)
}

// Unwrap returns ErrCommandFailed for errors.Is() compatibility.
func (e *CommandFailedError) Unwrap() error { return ErrCommandFailed }

// Validate returns an error if either side of the mount is blank.
func (v VolumeMount) Validate() error {
	if strings.TrimSpace(v.HostPath) == "" || strings.TrimSpace(v.ContainerPath) == "" {
		return fmt.Errorf("%w %q", ErrInvalidVolumeMount, v.String())
	}
	return nil
}

// String returns the mount in "host:container" format.
func (v VolumeMount) String() string {
	return v.HostPath + ":" + v.ContainerPath
}

// --- Option Functions ---

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) EngineOption {
	return func(e *Engine) {
		e.execCommand = fn
	}
}

// WithLogger sets the logger used to announce spawned command lines.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// --- Constructor ---

// NewEngine creates an engine for kind. The binary is resolved through the
// search path when a command is spawned.
func NewEngine(kind EngineType, opts ...EngineOption) *Engine {
	e := &Engine{
		kind:        kind,
		execCommand: exec.CommandContext,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the engine binary name.
func (e *Engine) Name() string {
	return string(e.kind)
}

// Kind returns the engine type.
func (e *Engine) Kind() EngineType {
	return e.kind
}

// --- Argument Builders ---

// BuildArgs constructs arguments for an image build.
//
// Generated command: <binary> buildx build [-t <tag>]... -f <dockerfile> <context> [--no-cache]
func (e *Engine) BuildArgs(opts BuildOptions) []string {
	args := []string{"buildx", "build"}

	for _, tag := range opts.Tags {
		args = append(args, "-t", tag)
	}

	if opts.Dockerfile != "" {
		args = append(args, "-f", opts.Dockerfile)
	}

	contextDir := opts.ContextDir
	if contextDir == "" {
		contextDir = "."
	}
	args = append(args, contextDir)

	if opts.NoCache {
		args = append(args, "--no-cache")
	}

	return args
}

// RunArgs constructs arguments for a container run.
//
// Generated command: <binary> run [--rm] [-it] [-v <mount>]... [-w <dir>] <image> [command...]
func (e *Engine) RunArgs(opts RunOptions) []string {
	args := []string{"run"}

	if opts.Remove {
		args = append(args, "--rm")
	}

	switch {
	case opts.Interactive && opts.TTY:
		args = append(args, "-it")
	case opts.Interactive:
		args = append(args, "-i")
	case opts.TTY:
		args = append(args, "-t")
	}

	for _, v := range opts.Volumes {
		args = append(args, "-v", v.String())
	}

	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}

	args = append(args, opts.Image)
	args = append(args, opts.Command...)

	return args
}

// PushArgs constructs arguments for pushing one tag.
func (e *Engine) PushArgs(tag string) []string {
	return []string{"push", tag}
}

// CommandLine renders the full invocation as a shell-quoted line.
func (e *Engine) CommandLine(args []string) string {
	return CommandLine(e.Name(), args)
}

// --- Command Execution ---

// Build runs an image build. A non-zero exit status is reported as a
// *CommandFailedError; a failure to spawn the engine is returned wrapped.
func (e *Engine) Build(ctx context.Context, opts BuildOptions) error {
	args := e.BuildArgs(opts)
	cmd := e.createCommand(ctx, args)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	return e.runStatus(cmd, args)
}

// Push pushes a single tag. Errors follow the same contract as Build.
func (e *Engine) Push(ctx context.Context, tag string, opts PushOptions) error {
	args := e.PushArgs(tag)
	cmd := e.createCommand(ctx, args)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	return e.runStatus(cmd, args)
}

// Run runs a command in a container and returns the child's exit status.
// A non-zero exit code is captured in RunResult.ExitCode, not returned as error;
// only infrastructure failures (binary not found, permission denied) are errors.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	for _, v := range opts.Volumes {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	cmd := e.createCommand(ctx, e.RunArgs(opts))
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	code, err := e.wait(cmd)
	if err != nil {
		return nil, err
	}
	return &RunResult{ExitCode: code}, nil
}

// createCommand creates an exec.Cmd and announces it.
func (e *Engine) createCommand(ctx context.Context, args []string) *exec.Cmd {
	e.logger.Info("spawning", "cmd", e.CommandLine(args))
	return e.execCommand(ctx, e.Name(), args...)
}

// runStatus spawns cmd and converts a non-zero exit status into a CommandFailedError.
func (e *Engine) runStatus(cmd *exec.Cmd, args []string) error {
	code, err := e.wait(cmd)
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		return &CommandFailedError{Engine: e.kind, Args: args, ExitCode: code}
	}
	return nil
}

// wait spawns cmd and blocks until it exits.
func (e *Engine) wait(cmd *exec.Cmd) (ExitCode, error) {
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitCode(exitErr.ExitCode()), nil
	}
	return 0, fmt.Errorf("spawn %s: %w", e.Name(), err)
}

// CommandLine renders name and args as a single shell-quoted line.
// Arguments that cannot be quoted for bash are rendered with %q.
func CommandLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{name}, args...) {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			q = strconv.Quote(a)
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, " ")
}
