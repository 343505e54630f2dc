// SPDX-License-Identifier: MPL-2.0

package target

import "strings"

const (
	// ArchX86_64 is the 64-bit x86 architecture.
	ArchX86_64 Architecture = "x86_64"
	// ArchAarch64 is the 64-bit ARM architecture.
	ArchAarch64 Architecture = "aarch64"
	// ArchRiscv64gc is the 64-bit RISC-V architecture with the G and C extensions.
	ArchRiscv64gc Architecture = "riscv64gc"

	// VendorUnknown is the generic vendor.
	VendorUnknown Vendor = "unknown"
	// VendorApple is Apple.
	VendorApple Vendor = "apple"
	// VendorPC is the vendor used by Windows triples.
	VendorPC Vendor = "pc"

	// OSLinux is Linux.
	OSLinux OperatingSystem = "linux"
	// OSDarwin is macOS.
	OSDarwin OperatingSystem = "darwin"
	// OSWindows is Windows.
	OSWindows OperatingSystem = "windows"

	// EnvUnknown means no ABI component; it is omitted from the triple string.
	EnvUnknown Environment = "unknown"
	// EnvGnu is the glibc ABI.
	EnvGnu Environment = "gnu"
	// EnvMusl is the musl libc ABI.
	EnvMusl Environment = "musl"
	// EnvMsvc is the Microsoft C runtime ABI.
	EnvMsvc Environment = "msvc"

	// FormatElf is the ELF object format.
	FormatElf BinaryFormat = "elf"
	// FormatMacho is the Mach-O object format.
	FormatMacho BinaryFormat = "macho"
	// FormatCoff is the COFF/PE object format.
	FormatCoff BinaryFormat = "coff"
)

type (
	// Architecture is the CPU architecture component of a triple.
	Architecture string

	// Vendor is the vendor component of a triple.
	Vendor string

	// OperatingSystem is the operating system component of a triple.
	OperatingSystem string

	// Environment is the ABI component of a triple.
	Environment string

	// BinaryFormat is the object file format produced for a triple.
	// It is not part of the triple string.
	BinaryFormat string

	// Triple is the structured descriptor of a target platform.
	Triple struct {
		Architecture    Architecture
		Vendor          Vendor
		OperatingSystem OperatingSystem
		Environment     Environment
		BinaryFormat    BinaryFormat
	}
)

// String renders the triple in its canonical "arch-vendor-os[-env]" form.
func (t Triple) String() string {
	parts := []string{string(t.Architecture), string(t.Vendor), string(t.OperatingSystem)}
	if t.Environment != "" && t.Environment != EnvUnknown {
		parts = append(parts, string(t.Environment))
	}
	return strings.Join(parts, "-")
}

// IsCross reports whether t targets a different architecture than host.
//
// Only the architecture is compared. A musl target on a gnu host, or a darwin
// target on a linux host, is native as long as the CPU architecture matches.
func (t Triple) IsCross(host Triple) bool {
	return t.Architecture != host.Architecture
}

// String returns the architecture name.
func (a Architecture) String() string { return string(a) }
