package appdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_XDG(t *testing.T) {
	dataHome := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)

	d, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if d.DataPath != filepath.Join(dataHome, "emobridge") {
		t.Errorf("unexpected DataPath %q", d.DataPath)
	}
	if d.ConfigPath != filepath.Join(configHome, "emobridge", "config.yaml") {
		t.Errorf("unexpected ConfigPath %q", d.ConfigPath)
	}
	if d.ModelsPath != filepath.Join(d.DataPath, "models") {
		t.Errorf("unexpected ModelsPath %q", d.ModelsPath)
	}
}

func TestDirs_GetModelPath(t *testing.T) {
	d := &Dirs{
		ModelsPath: "/test/data/models",
	}

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"cascade", "facefinder", "/test/data/models/facefinder"},
		{"nested", "pigo/facefinder", "/test/data/models/pigo/facefinder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.GetModelPath(tt.filename)
			if result != tt.expected {
				t.Errorf("GetModelPath(%q) = %q, want %q", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestDirs_EnsureLogs(t *testing.T) {
	d := &Dirs{LogsPath: filepath.Join(t.TempDir(), "a", "logs")}

	if err := d.EnsureLogs(); err != nil {
		t.Fatalf("EnsureLogs() failed: %v", err)
	}

	info, err := os.Stat(d.LogsPath)
	if err != nil {
		t.Fatalf("logs directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("logs path is not a directory")
	}
}

func TestResolve(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name     string
		path     string
		base     string
		expected string
	}{
		{"empty", "", "/base", ""},
		{"absolute", "/abs/file", "/base", "/abs/file"},
		{"relative", "models/facefinder", "/base", "/base/models/facefinder"},
		{"home", "~/cascade", "/base", filepath.Join(home, "cascade")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.path, tt.base); got != tt.expected {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.path, tt.base, got, tt.expected)
			}
		})
	}
}
