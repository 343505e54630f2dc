// SPDX-License-Identifier: MPL-2.0

package target

import (
	"sync"

	"github.com/containerd/platforms"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

var hostOnce = sync.OnceValue(func() Triple {
	return FromPlatform(platforms.DefaultSpec())
})

// Host returns the descriptor of the machine running this process.
func Host() Triple {
	return hostOnce()
}

// FromPlatform converts an OCI platform (GOOS/GOARCH naming) to a Triple.
func FromPlatform(p ocispec.Platform) Triple {
	p = platforms.Normalize(p)

	t := Triple{Architecture: architectureFor(p.Architecture)}
	switch p.OS {
	case "darwin":
		t.Vendor, t.OperatingSystem, t.Environment, t.BinaryFormat = VendorApple, OSDarwin, EnvUnknown, FormatMacho
	case "linux":
		t.Vendor, t.OperatingSystem, t.Environment, t.BinaryFormat = VendorUnknown, OSLinux, EnvGnu, FormatElf
	case "windows":
		t.Vendor, t.OperatingSystem, t.Environment, t.BinaryFormat = VendorPC, OSWindows, EnvMsvc, FormatCoff
	default:
		t.Vendor, t.OperatingSystem, t.Environment, t.BinaryFormat = VendorUnknown, OperatingSystem(p.OS), EnvUnknown, FormatElf
	}
	return t
}

func architectureFor(goarch string) Architecture {
	switch goarch {
	case "amd64":
		return ArchX86_64
	case "arm64":
		return ArchAarch64
	case "riscv64":
		return ArchRiscv64gc
	default:
		return Architecture(goarch)
	}
}
