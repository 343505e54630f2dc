// SPDX-License-Identifier: MPL-2.0

// Package image derives container image references and Dockerfile recipe paths
// from target triples.
package image

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/exein-io/cross-llvm/internal/target"
)

const (
	// DefaultRegistry is the repository prefix of published toolchain images.
	DefaultRegistry = "ghcr.io/exein-io/cross-llvm"
	// DefaultRecipesDir holds the Dockerfiles, relative to the working directory.
	DefaultRecipesDir = "containers"

	// VariantNative marks an image whose architecture matches the host.
	VariantNative Variant = "native"
	// VariantCross marks an image for a foreign architecture.
	VariantCross Variant = "cross"
)

type (
	// Variant classifies an image as native or cross relative to the host.
	Variant string

	// StatFunc reports file information; os.Stat is the production implementation.
	StatFunc func(name string) (fs.FileInfo, error)

	// Option configures a Resolver.
	Option func(*Resolver)

	// Resolver maps triples to image tags and recipe paths for a given host.
	Resolver struct {
		host       target.Triple
		registry   string
		recipesDir string
		stat       StatFunc
	}
)

// WithRegistry overrides DefaultRegistry. Trailing slashes are dropped.
func WithRegistry(registry string) Option {
	return func(r *Resolver) {
		if registry != "" {
			r.registry = strings.TrimRight(registry, "/")
		}
	}
}

// WithRecipesDir overrides DefaultRecipesDir.
func WithRecipesDir(dir string) Option {
	return func(r *Resolver) {
		if dir != "" {
			r.recipesDir = dir
		}
	}
}

// WithStat replaces the filesystem existence check.
func WithStat(fn StatFunc) Option {
	return func(r *Resolver) {
		r.stat = fn
	}
}

// NewResolver creates a Resolver classifying targets against host.
func NewResolver(host target.Triple, opts ...Option) *Resolver {
	r := &Resolver{
		host:       host,
		registry:   DefaultRegistry,
		recipesDir: DefaultRecipesDir,
		stat:       os.Stat,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Host returns the host descriptor used for classification.
func (r *Resolver) Host() target.Triple {
	return r.host
}

// Variant returns VariantCross when t's architecture differs from the host's.
func (r *Resolver) Variant(t target.Triple) Variant {
	if t.IsCross(r.host) {
		return VariantCross
	}
	return VariantNative
}

// Name returns the "{native|cross}-{triple}" component shared by tags and recipes.
func (r *Resolver) Name(t target.Triple) string {
	return string(r.Variant(t)) + "-" + t.String()
}

// Tag returns the default image reference for t.
func (r *Resolver) Tag(t target.Triple) string {
	return path.Join(r.registry, r.Name(t))
}

// RecipeFile returns where t's Dockerfile is expected, without checking for it.
func (r *Resolver) RecipeFile(t target.Triple) string {
	return filepath.Join(r.recipesDir, "Dockerfile."+r.Name(t))
}

// RecipePath returns the path of t's Dockerfile relative to the working
// directory. The second result is false when the file does not exist, which
// means t has no build definition.
func (r *Resolver) RecipePath(t target.Triple) (string, bool) {
	p := r.RecipeFile(t)
	info, err := r.stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}
