// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestFormatCUEError_NonCUEError(t *testing.T) {
	t.Parallel()

	if formatCUEError(nil, "config.cue") != nil {
		t.Error("nil error must stay nil")
	}

	err := formatCUEError(errors.New("some error"), "config.cue")
	if err == nil || err.Error() != "config.cue: some error" {
		t.Errorf("got %v", err)
	}
}

func TestLoadCUEIntoViper_ReportsKeyPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.cue")
	if err := os.WriteFile(path, []byte(`image: recipes_dir: ""`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := loadCUEIntoViper(viper.New(), path)
	if err == nil {
		t.Fatal("expected schema violation")
	}
	if !strings.HasPrefix(err.Error(), path+": ") {
		t.Errorf("error should start with the file path, got %v", err)
	}
	if !strings.Contains(err.Error(), "image.recipes_dir") {
		t.Errorf("error should name the offending key, got %v", err)
	}
}

func TestLoadCUEIntoViper_FileTooLarge(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.cue")
	big := "// " + strings.Repeat("x", maxConfigFileSize) + "\n"
	if err := os.WriteFile(path, []byte(big), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := loadCUEIntoViper(viper.New(), path); err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("expected size error, got %v", err)
	}
}
