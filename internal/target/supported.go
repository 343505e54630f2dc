// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"fmt"
	"strings"
)

// Supported target triples.
const (
	Aarch64AppleDarwin       SupportedTriple = "aarch64-apple-darwin"
	Aarch64UnknownLinuxGnu   SupportedTriple = "aarch64-unknown-linux-gnu"
	Aarch64UnknownLinuxMusl  SupportedTriple = "aarch64-unknown-linux-musl"
	Riscv64GcUnknownLinuxGnu SupportedTriple = "riscv64gc-unknown-linux-gnu"
	X86_64AppleDarwin        SupportedTriple = "x86_64-apple-darwin"
	X86_64UnknownLinuxGnu    SupportedTriple = "x86_64-unknown-linux-gnu"
	X86_64UnknownLinuxMusl   SupportedTriple = "x86_64-unknown-linux-musl"
)

// ErrUnsupportedTriple is the sentinel error wrapped by UnsupportedTripleError.
var ErrUnsupportedTriple = errors.New("unsupported target triple")

var (
	supportedOrder = []SupportedTriple{
		Aarch64AppleDarwin,
		Aarch64UnknownLinuxGnu,
		Aarch64UnknownLinuxMusl,
		Riscv64GcUnknownLinuxGnu,
		X86_64AppleDarwin,
		X86_64UnknownLinuxGnu,
		X86_64UnknownLinuxMusl,
	}

	descriptors = map[SupportedTriple]Triple{
		Aarch64AppleDarwin: {
			Architecture:    ArchAarch64,
			Vendor:          VendorApple,
			OperatingSystem: OSDarwin,
			Environment:     EnvUnknown,
			BinaryFormat:    FormatMacho,
		},
		Aarch64UnknownLinuxGnu: {
			Architecture:    ArchAarch64,
			Vendor:          VendorUnknown,
			OperatingSystem: OSLinux,
			Environment:     EnvGnu,
			BinaryFormat:    FormatElf,
		},
		Aarch64UnknownLinuxMusl: {
			Architecture:    ArchAarch64,
			Vendor:          VendorUnknown,
			OperatingSystem: OSLinux,
			Environment:     EnvMusl,
			BinaryFormat:    FormatElf,
		},
		Riscv64GcUnknownLinuxGnu: {
			Architecture:    ArchRiscv64gc,
			Vendor:          VendorUnknown,
			OperatingSystem: OSLinux,
			Environment:     EnvGnu,
			BinaryFormat:    FormatElf,
		},
		X86_64AppleDarwin: {
			Architecture:    ArchX86_64,
			Vendor:          VendorApple,
			OperatingSystem: OSDarwin,
			Environment:     EnvUnknown,
			BinaryFormat:    FormatMacho,
		},
		X86_64UnknownLinuxGnu: {
			Architecture:    ArchX86_64,
			Vendor:          VendorUnknown,
			OperatingSystem: OSLinux,
			Environment:     EnvGnu,
			BinaryFormat:    FormatElf,
		},
		X86_64UnknownLinuxMusl: {
			Architecture:    ArchX86_64,
			Vendor:          VendorUnknown,
			OperatingSystem: OSLinux,
			Environment:     EnvMusl,
			BinaryFormat:    FormatElf,
		},
	}
)

type (
	// SupportedTriple is one of the target identifiers accepted on the command line.
	// The zero value means "not set" and resolves to the host platform.
	SupportedTriple string

	// UnsupportedTripleError is returned when a string is not a supported triple.
	UnsupportedTripleError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *UnsupportedTripleError) Error() string {
	return fmt.Sprintf("unsupported target %q (valid: %s)", e.Value, strings.Join(SupportedNames(), ", "))
}

// Unwrap returns ErrUnsupportedTriple for errors.Is() compatibility.
func (e *UnsupportedTripleError) Unwrap() error { return ErrUnsupportedTriple }

// Supported returns every supported triple in a stable order.
func Supported() []SupportedTriple {
	out := make([]SupportedTriple, len(supportedOrder))
	copy(out, supportedOrder)
	return out
}

// SupportedNames returns the string form of every supported triple.
func SupportedNames() []string {
	names := make([]string, 0, len(supportedOrder))
	for _, s := range supportedOrder {
		names = append(names, string(s))
	}
	return names
}

// ParseSupportedTriple validates s against the closed set of supported triples.
func ParseSupportedTriple(s string) (SupportedTriple, error) {
	st := SupportedTriple(strings.TrimSpace(s))
	if _, ok := descriptors[st]; !ok {
		return "", &UnsupportedTripleError{Value: s}
	}
	return st, nil
}

// Triple returns the descriptor for s. It panics if s is not part of the
// supported set; values obtained from ParseSupportedTriple or the exported
// constants never do.
func (s SupportedTriple) Triple() Triple {
	t, ok := descriptors[s]
	if !ok {
		panic(fmt.Sprintf("target: no descriptor for %q", string(s)))
	}
	return t
}

// Validate returns an error if s is neither empty nor a supported triple.
func (s SupportedTriple) Validate() error {
	if s == "" {
		return nil
	}
	if _, ok := descriptors[s]; !ok {
		return &UnsupportedTripleError{Value: string(s)}
	}
	return nil
}

// String returns the triple string.
func (s SupportedTriple) String() string { return string(s) }

// Set implements pflag.Value.
func (s *SupportedTriple) Set(v string) error {
	parsed, err := ParseSupportedTriple(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *SupportedTriple) Type() string { return "triple" }

// Resolve returns the descriptor for s, or host when s is unset.
func Resolve(s SupportedTriple, host Triple) Triple {
	if s == "" {
		return host
	}
	return s.Triple()
}
