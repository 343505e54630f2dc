// SPDX-License-Identifier: MPL-2.0

package image

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/exein-io/cross-llvm/internal/target"
)

var x86Host = target.X86_64UnknownLinuxGnu.Triple()

func TestResolver_Tag(t *testing.T) {
	t.Parallel()

	r := NewResolver(x86Host)

	tests := []struct {
		triple target.SupportedTriple
		want   string
	}{
		{target.Aarch64UnknownLinuxGnu, "ghcr.io/exein-io/cross-llvm/cross-aarch64-unknown-linux-gnu"},
		{target.Aarch64AppleDarwin, "ghcr.io/exein-io/cross-llvm/cross-aarch64-apple-darwin"},
		{target.Riscv64GcUnknownLinuxGnu, "ghcr.io/exein-io/cross-llvm/cross-riscv64gc-unknown-linux-gnu"},
		{target.X86_64UnknownLinuxGnu, "ghcr.io/exein-io/cross-llvm/native-x86_64-unknown-linux-gnu"},
		// Only the architecture decides native vs cross.
		{target.X86_64UnknownLinuxMusl, "ghcr.io/exein-io/cross-llvm/native-x86_64-unknown-linux-musl"},
		{target.X86_64AppleDarwin, "ghcr.io/exein-io/cross-llvm/native-x86_64-apple-darwin"},
	}
	for _, tt := range tests {
		if got := r.Tag(tt.triple.Triple()); got != tt.want {
			t.Errorf("Tag(%s) = %q, want %q", tt.triple, got, tt.want)
		}
		if again := r.Tag(tt.triple.Triple()); again != r.Tag(tt.triple.Triple()) {
			t.Errorf("Tag(%s) is not deterministic", tt.triple)
		}
	}
}

func TestResolver_TagOnArmHost(t *testing.T) {
	t.Parallel()

	r := NewResolver(target.Aarch64AppleDarwin.Triple())
	got := r.Tag(target.Aarch64UnknownLinuxMusl.Triple())
	want := "ghcr.io/exein-io/cross-llvm/native-aarch64-unknown-linux-musl"
	if got != want {
		t.Errorf("Tag() = %q, want %q", got, want)
	}
	if v := r.Variant(target.X86_64UnknownLinuxGnu.Triple()); v != VariantCross {
		t.Errorf("Variant(x86_64) on aarch64 host = %q, want cross", v)
	}
}

func TestResolver_WithRegistry(t *testing.T) {
	t.Parallel()

	r := NewResolver(x86Host, WithRegistry("registry.example.com/toolchains/"))
	got := r.Tag(target.X86_64UnknownLinuxGnu.Triple())
	if got != "registry.example.com/toolchains/native-x86_64-unknown-linux-gnu" {
		t.Errorf("Tag() = %q", got)
	}

	// Empty overrides keep the defaults.
	r = NewResolver(x86Host, WithRegistry(""), WithRecipesDir(""))
	if got := r.Tag(target.X86_64UnknownLinuxGnu.Triple()); got != "ghcr.io/exein-io/cross-llvm/native-x86_64-unknown-linux-gnu" {
		t.Errorf("Tag() with empty registry override = %q", got)
	}
}

func TestResolver_RecipePath(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"containers/Dockerfile.native-x86_64-unknown-linux-gnu":  {Data: []byte("FROM debian\n")},
		"containers/Dockerfile.cross-aarch64-unknown-linux-gnu":  {Data: []byte("FROM debian\n")},
		"containers/Dockerfile.cross-riscv64gc-unknown-linux-gnu": {Mode: fs.ModeDir},
	}
	r := NewResolver(x86Host, WithStat(func(name string) (fs.FileInfo, error) {
		return fs.Stat(fsys, filepath.ToSlash(name))
	}))

	tests := []struct {
		triple target.SupportedTriple
		want   string
		ok     bool
	}{
		{target.X86_64UnknownLinuxGnu, filepath.Join("containers", "Dockerfile.native-x86_64-unknown-linux-gnu"), true},
		{target.Aarch64UnknownLinuxGnu, filepath.Join("containers", "Dockerfile.cross-aarch64-unknown-linux-gnu"), true},
		{target.Aarch64UnknownLinuxMusl, "", false},
		{target.Riscv64GcUnknownLinuxGnu, "", false},
	}
	for _, tt := range tests {
		got, ok := r.RecipePath(tt.triple.Triple())
		if ok != tt.ok || got != tt.want {
			t.Errorf("RecipePath(%s) = (%q, %v), want (%q, %v)", tt.triple, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolver_RecipePathOnDisk(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll(filepath.Join(dir, "containers"), 0o755); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(x86Host)

	if _, ok := r.RecipePath(target.X86_64UnknownLinuxMusl.Triple()); ok {
		t.Fatal("expected no recipe before the file exists")
	}

	recipe := filepath.Join(dir, "containers", "Dockerfile.native-x86_64-unknown-linux-musl")
	if err := os.WriteFile(recipe, []byte("FROM alpine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, ok := r.RecipePath(target.X86_64UnknownLinuxMusl.Triple())
	if !ok {
		t.Fatal("expected recipe once the file exists")
	}
	if got != filepath.Join("containers", "Dockerfile.native-x86_64-unknown-linux-musl") {
		t.Errorf("RecipePath() = %q, expected a path relative to the working directory", got)
	}
}

func TestValidateReference(t *testing.T) {
	t.Parallel()

	imageID := strings.Repeat("0123456789abcdef", 4)
	for _, ok := range []string{"ubuntu", "ghcr.io/exein-io/cross-llvm/native-x86_64-unknown-linux-gnu", "localhost:5000/img:v1", imageID} {
		if err := ValidateReference(ok); err != nil {
			t.Errorf("ValidateReference(%q): unexpected error %v", ok, err)
		}
	}
	for _, bad := range []string{"", "UPPER/case", "img:bad tag", "-leading", strings.ToUpper(imageID)} {
		if err := ValidateReference(bad); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("ValidateReference(%q): expected ErrInvalidReference, got %v", bad, err)
		}
	}
}
