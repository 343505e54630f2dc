// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"strings"
	"testing"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

func TestSupportedTriple_TripleRoundTrip(t *testing.T) {
	t.Parallel()

	for _, st := range Supported() {
		t.Run(st.String(), func(t *testing.T) {
			t.Parallel()

			got := st.Triple()
			if got.String() != st.String() {
				t.Errorf("Triple().String() = %q, want %q", got.String(), st.String())
			}
			if again := st.Triple(); again != got {
				t.Errorf("Triple() not deterministic: %+v vs %+v", got, again)
			}
		})
	}
}

func TestSupportedTriple_Descriptors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		triple SupportedTriple
		want   Triple
	}{
		{Aarch64AppleDarwin, Triple{ArchAarch64, VendorApple, OSDarwin, EnvUnknown, FormatMacho}},
		{Aarch64UnknownLinuxGnu, Triple{ArchAarch64, VendorUnknown, OSLinux, EnvGnu, FormatElf}},
		{Aarch64UnknownLinuxMusl, Triple{ArchAarch64, VendorUnknown, OSLinux, EnvMusl, FormatElf}},
		{Riscv64GcUnknownLinuxGnu, Triple{ArchRiscv64gc, VendorUnknown, OSLinux, EnvGnu, FormatElf}},
		{X86_64AppleDarwin, Triple{ArchX86_64, VendorApple, OSDarwin, EnvUnknown, FormatMacho}},
		{X86_64UnknownLinuxGnu, Triple{ArchX86_64, VendorUnknown, OSLinux, EnvGnu, FormatElf}},
		{X86_64UnknownLinuxMusl, Triple{ArchX86_64, VendorUnknown, OSLinux, EnvMusl, FormatElf}},
	}

	if len(tests) != len(Supported()) {
		t.Fatalf("descriptor table covers %d triples, supported set has %d", len(tests), len(Supported()))
	}

	seen := make(map[Triple]SupportedTriple)
	for _, tt := range tests {
		got := tt.triple.Triple()
		if got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.triple, got, tt.want)
		}
		if prev, dup := seen[got]; dup {
			t.Errorf("%s and %s map to the same descriptor", prev, tt.triple)
		}
		seen[got] = tt.triple
	}
}

func TestParseSupportedTriple(t *testing.T) {
	t.Parallel()

	got, err := ParseSupportedTriple("riscv64gc-unknown-linux-gnu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Riscv64GcUnknownLinuxGnu {
		t.Errorf("got %q, want %q", got, Riscv64GcUnknownLinuxGnu)
	}

	for _, bad := range []string{"", "x86_64-pc-windows-msvc", "aarch64-unknown-linux", "X86_64-UNKNOWN-LINUX-GNU"} {
		_, err := ParseSupportedTriple(bad)
		if err == nil {
			t.Errorf("ParseSupportedTriple(%q): expected error", bad)
			continue
		}
		if !errors.Is(err, ErrUnsupportedTriple) {
			t.Errorf("ParseSupportedTriple(%q): error %v does not wrap ErrUnsupportedTriple", bad, err)
		}
		if !strings.Contains(err.Error(), "aarch64-apple-darwin") {
			t.Errorf("error should list valid values, got: %v", err)
		}
	}
}

func TestSupportedTriple_PflagValue(t *testing.T) {
	t.Parallel()

	var st SupportedTriple
	if err := st.Set("aarch64-unknown-linux-musl"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if st != Aarch64UnknownLinuxMusl {
		t.Errorf("Set stored %q", st)
	}
	if err := st.Set("mips-unknown-linux-gnu"); err == nil {
		t.Error("expected Set to reject unknown triple")
	}
	if st != Aarch64UnknownLinuxMusl {
		t.Errorf("failed Set must not modify value, got %q", st)
	}
	if st.Type() != "triple" {
		t.Errorf("Type() = %q", st.Type())
	}
}

func TestSupportedTriple_Validate(t *testing.T) {
	t.Parallel()

	if err := SupportedTriple("").Validate(); err != nil {
		t.Errorf("empty triple should be valid, got %v", err)
	}
	if err := X86_64AppleDarwin.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := SupportedTriple("sparc-sun-solaris").Validate(); !errors.Is(err, ErrUnsupportedTriple) {
		t.Errorf("expected ErrUnsupportedTriple, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	host := Triple{ArchX86_64, VendorUnknown, OSLinux, EnvGnu, FormatElf}
	if got := Resolve("", host); got != host {
		t.Errorf("Resolve(\"\") = %+v, want host %+v", got, host)
	}
	if got := Resolve(Aarch64AppleDarwin, host); got != Aarch64AppleDarwin.Triple() {
		t.Errorf("Resolve(aarch64-apple-darwin) = %+v", got)
	}
}

// TestTriple_IsCross covers the architecture-only comparison. Vendor, OS and ABI
// differences are intentionally ignored: x86_64-unknown-linux-musl is native on
// an x86_64-unknown-linux-gnu host, and so is x86_64-apple-darwin.
func TestTriple_IsCross(t *testing.T) {
	t.Parallel()

	host := X86_64UnknownLinuxGnu.Triple()

	tests := []struct {
		triple SupportedTriple
		cross  bool
	}{
		{X86_64UnknownLinuxGnu, false},
		{X86_64UnknownLinuxMusl, false},
		{X86_64AppleDarwin, false},
		{Aarch64UnknownLinuxGnu, true},
		{Aarch64UnknownLinuxMusl, true},
		{Aarch64AppleDarwin, true},
		{Riscv64GcUnknownLinuxGnu, true},
	}
	for _, tt := range tests {
		if got := tt.triple.Triple().IsCross(host); got != tt.cross {
			t.Errorf("%s.IsCross(x86_64 host) = %v, want %v", tt.triple, got, tt.cross)
		}
	}
}

func TestFromPlatform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   ocispec.Platform
		want string
	}{
		{"linux amd64", ocispec.Platform{OS: "linux", Architecture: "amd64"}, "x86_64-unknown-linux-gnu"},
		{"linux arm64", ocispec.Platform{OS: "linux", Architecture: "arm64"}, "aarch64-unknown-linux-gnu"},
		{"linux aarch64 alias", ocispec.Platform{OS: "linux", Architecture: "aarch64"}, "aarch64-unknown-linux-gnu"},
		{"linux riscv64", ocispec.Platform{OS: "linux", Architecture: "riscv64"}, "riscv64gc-unknown-linux-gnu"},
		{"darwin arm64", ocispec.Platform{OS: "darwin", Architecture: "arm64"}, "aarch64-apple-darwin"},
		{"darwin amd64", ocispec.Platform{OS: "darwin", Architecture: "amd64"}, "x86_64-apple-darwin"},
		{"windows amd64", ocispec.Platform{OS: "windows", Architecture: "amd64"}, "x86_64-pc-windows-msvc"},
		{"freebsd amd64", ocispec.Platform{OS: "freebsd", Architecture: "amd64"}, "x86_64-unknown-freebsd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FromPlatform(tt.in).String(); got != tt.want {
				t.Errorf("FromPlatform(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHost_Stable(t *testing.T) {
	t.Parallel()

	if Host() != Host() {
		t.Error("Host() must return the same descriptor on every call")
	}
	if Host().Architecture == "" {
		t.Error("Host() architecture must not be empty")
	}
}
