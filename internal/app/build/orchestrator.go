// SPDX-License-Identifier: MPL-2.0

package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/exein-io/cross-llvm/internal/container"
	"github.com/exein-io/cross-llvm/internal/image"
	"github.com/exein-io/cross-llvm/internal/target"
)

// ContextDir is the build context passed to the engine.
const ContextDir = "."

type (
	// EngineFactory builds an Engine for a selected engine kind.
	EngineFactory func(kind container.EngineType) *container.Engine

	// Option configures an Orchestrator.
	Option func(*Orchestrator)

	// Request describes a build and the optional push that follows it.
	Request struct {
		// Engine is the explicit engine; empty autodetects.
		Engine container.EngineType
		// Target is the platform; empty means the host.
		Target target.SupportedTriple
		// Tags defaults to the derived image tag when empty.
		Tags    []string
		NoCache bool
		Push    bool
	}

	// Orchestrator drives one build, and optionally the pushes, to a terminal state.
	Orchestrator struct {
		resolver  *image.Resolver
		selector  *container.Selector
		newEngine EngineFactory
		logger    *log.Logger
		stdout    io.Writer
		stderr    io.Writer
	}

	// run tracks the state of a single Build call.
	run struct {
		logger *log.Logger
		state  State
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

// WithLogger sets the logger used for state transitions and by default engines.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithOutput overrides where engine output goes.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *Orchestrator) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// New creates an Orchestrator writing engine output to the process stdio.
func New(resolver *image.Resolver, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		resolver: resolver,
		logger:   log.Default(),
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

// Tags returns the tags a request would apply.
func (o *Orchestrator) Tags(req Request) []string {
	if len(req.Tags) > 0 {
		return req.Tags
	}
	return []string{o.resolver.Tag(target.Resolve(req.Target, o.resolver.Host()))}
}

// Build builds the image for req.Target and pushes its tags when req.Push is
// set. It returns the state the build stopped in; the error is non-nil
// whenever that state is a failure, or when the request was rejected during
// resolution.
func (o *Orchestrator) Build(ctx context.Context, req Request) (State, error) {
	r := &run{logger: o.logger, state: StateIdle}

	r.to(StateResolving)
	if err := req.Target.Validate(); err != nil {
		return r.state, err
	}
	platform := target.Resolve(req.Target, o.resolver.Host())

	recipe, ok := o.resolver.RecipePath(platform)
	if !ok {
		r.to(StateUnsupported)
		return r.state, &UnsupportedTargetError{
			Triple: platform,
			Recipe: o.resolver.RecipeFile(platform),
		}
	}

	tags := o.Tags(req)
	for _, tag := range tags {
		if err := image.ValidateReference(tag); err != nil {
			return r.state, err
		}
	}

	kind, err := o.selector.Select(req.Engine)
	if err != nil {
		return r.state, err
	}
	engine := o.newEngine(kind)

	r.to(StateBuilding, "recipe", recipe, "tags", tags)
	err = engine.Build(ctx, container.BuildOptions{
		Dockerfile: recipe,
		ContextDir: ContextDir,
		Tags:       tags,
		NoCache:    req.NoCache,
		Stdout:     o.stdout,
		Stderr:     o.stderr,
	})
	if err != nil {
		r.to(StateBuildFailed)
		if isCommandFailed(err) {
			return r.state, fmt.Errorf("%w: %w", ErrContainerImageBuild, err)
		}
		return r.state, err
	}
	r.to(StateBuilt)

	if !req.Push {
		r.to(StateDone)
		return r.state, nil
	}

	r.to(StatePushing)
	for _, tag := range tags {
		if err := engine.Push(ctx, tag, container.PushOptions{Stdout: o.stdout, Stderr: o.stderr}); err != nil {
			r.to(StatePushFailed, "tag", tag)
			if isCommandFailed(err) {
				return r.state, &PushError{Tag: tag, Cause: err}
			}
			return r.state, fmt.Errorf("push %s: %w", tag, err)
		}
	}

	r.to(StateDone)
	return r.state, nil
}

func isCommandFailed(err error) bool {
	var failed *container.CommandFailedError
	return errors.As(err, &failed)
}

func (r *run) to(next State, keyvals ...any) {
	r.logger.Debug("build state", append([]any{"from", r.state, "to", next}, keyvals...)...)
	r.state = next
}
