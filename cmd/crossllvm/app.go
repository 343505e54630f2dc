// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/exein-io/cross-llvm/internal/config"
	"github.com/exein-io/cross-llvm/internal/container"
	"github.com/exein-io/cross-llvm/internal/image"
	"github.com/exein-io/cross-llvm/internal/target"
)

type (
	// ConfigLoader loads configuration and reports the file it came from.
	ConfigLoader func(ctx context.Context, opts config.LoadOptions) (*config.Loaded, error)

	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer; every command handler receives an App reference.
	App struct {
		loadConfig  ConfigLoader
		lookPath    container.LookPathFunc
		execCommand container.ExecCommandFunc
		stat        image.StatFunc
		getwd       func() (string, error)
		host        target.Triple
		issueStyle  string
		stdin       io.Reader
		stdout      io.Writer
		stderr      io.Writer

		// Set by the root command before any subcommand runs.
		verbose bool
		cfgFile string
		cfg     *config.Config
		cfgPath string
		logger  *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		LoadConfig  ConfigLoader
		LookPath    container.LookPathFunc
		ExecCommand container.ExecCommandFunc
		Stat        image.StatFunc
		Getwd       func() (string, error)
		// Host is the platform the tool runs on; zero means target.Host().
		Host target.Triple
		// IssueStyle is the glamour style used for troubleshooting guides.
		IssueStyle string
		Stdin      io.Reader
		Stdout     io.Writer
		Stderr     io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.LoadConfig == nil {
		deps.LoadConfig = config.LoadWithSource
	}
	if deps.Stat == nil {
		deps.Stat = os.Stat
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.Host == (target.Triple{}) {
		deps.Host = target.Host()
	}
	if deps.IssueStyle == "" {
		deps.IssueStyle = "dark"
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	return &App{
		loadConfig:  deps.LoadConfig,
		lookPath:    deps.LookPath,
		execCommand: deps.ExecCommand,
		stat:        deps.Stat,
		getwd:       deps.Getwd,
		host:        deps.Host,
		issueStyle:  deps.IssueStyle,
		stdin:       deps.Stdin,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		cfg:         config.DefaultConfig(),
		logger:      newLogger(deps.Stderr, false),
	}
}

// newLogger creates the CLI logger. Spawned command lines are logged at
// info level, so they are visible by default.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "cross-llvm",
		Level:  level,
	})
}

// resolver builds an image resolver from the effective configuration.
func (a *App) resolver() *image.Resolver {
	return image.NewResolver(a.host,
		image.WithRegistry(a.cfg.Image.Registry),
		image.WithRecipesDir(a.cfg.Image.RecipesDir),
		image.WithStat(a.stat),
	)
}

func (a *App) selector() *container.Selector {
	return container.NewSelector(a.lookPath)
}

func (a *App) newEngine(kind container.EngineType) *container.Engine {
	opts := []container.EngineOption{container.WithLogger(a.logger)}
	if a.execCommand != nil {
		opts = append(opts, container.WithExecCommand(a.execCommand))
	}
	return container.NewEngine(kind, opts...)
}

// configuredEngine is the engine from config and environment; empty autodetects.
func (a *App) configuredEngine() container.EngineType {
	return container.EngineType(a.cfg.ContainerEngine)
}
