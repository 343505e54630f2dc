// SPDX-License-Identifier: MPL-2.0

package run

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/exein-io/cross-llvm/internal/container"
	"github.com/exein-io/cross-llvm/internal/image"
	"github.com/exein-io/cross-llvm/internal/target"
)

// SourceDir is where the working directory is mounted inside the container.
const SourceDir = "/src"

type (
	// EngineFactory builds an Engine for a selected engine kind.
	EngineFactory func(kind container.EngineType) *container.Engine

	// Option configures an Orchestrator.
	Option func(*Orchestrator)

	// Request describes a single run invocation.
	Request struct {
		// Engine is the explicit engine; empty autodetects.
		Engine container.EngineType
		// Image overrides the derived image tag when set.
		Image string
		// Target is the platform; empty means the host.
		Target target.SupportedTriple
		// Command is appended after the image. It may be empty.
		Command []string
	}

	// Orchestrator resolves a Request into one `run` invocation.
	Orchestrator struct {
		resolver  *image.Resolver
		selector  *container.Selector
		newEngine EngineFactory
		getwd     func() (string, error)
		logger    *log.Logger
		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer
	}
)

// WithSelector overrides the engine selector.
func WithSelector(s *container.Selector) Option {
	return func(o *Orchestrator) { o.selector = s }
}

// WithEngineFactory overrides how engines are constructed.
func WithEngineFactory(f EngineFactory) Option {
	return func(o *Orchestrator) { o.newEngine = f }
}

// WithWorkDir overrides the working directory lookup.
func WithWorkDir(getwd func() (string, error)) Option {
	return func(o *Orchestrator) { o.getwd = getwd }
}

// WithLogger sets the logger handed to engines built by the default factory.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithStdio overrides the streams connected to the container.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(o *Orchestrator) {
		o.stdin = stdin
		o.stdout = stdout
		o.stderr = stderr
	}
}

// New creates an Orchestrator bound to the process stdio and working directory.
func New(resolver *image.Resolver, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		resolver: resolver,
		getwd:    os.Getwd,
		logger:   log.Default(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.selector == nil {
		o.selector = container.NewSelector(nil)
	}
	if o.newEngine == nil {
		logger := o.logger
		o.newEngine = func(kind container.EngineType) *container.Engine {
			return container.NewEngine(kind, container.WithLogger(logger))
		}
	}
	return o
}

// Image returns the image a request would run: the override when set,
// otherwise the tag derived for the resolved platform.
func (o *Orchestrator) Image(req Request) string {
	if req.Image != "" {
		return req.Image
	}
	return o.resolver.Tag(target.Resolve(req.Target, o.resolver.Host()))
}

// Run spawns the container and returns the child's exit code unchanged.
// A non-zero code is not an error; errors mean nothing was run.
func (o *Orchestrator) Run(ctx context.Context, req Request) (container.ExitCode, error) {
	if err := req.Target.Validate(); err != nil {
		return 0, err
	}

	ref := o.Image(req)
	if req.Image != "" {
		if err := image.ValidateReference(ref); err != nil {
			return 0, err
		}
	}

	kind, err := o.selector.Select(req.Engine)
	if err != nil {
		return 0, err
	}

	cwd, err := o.getwd()
	if err != nil {
		return 0, fmt.Errorf("resolve working directory: %w", err)
	}

	result, err := o.newEngine(kind).Run(ctx, container.RunOptions{
		Image:       ref,
		Command:     req.Command,
		Volumes:     []container.VolumeMount{{HostPath: cwd, ContainerPath: SourceDir}},
		WorkDir:     SourceDir,
		Remove:      true,
		Interactive: true,
		TTY:         true,
		Stdin:       o.stdin,
		Stdout:      o.stdout,
		Stderr:      o.stderr,
	})
	if err != nil {
		return 0, err
	}
	return result.ExitCode, nil
}
