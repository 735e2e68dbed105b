package config_test

import (
	"os"
	"testing"

	"github.com/qrcodegen/qrcodegen/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	f, _ := os.CreateTemp("", "*.yaml")
	f.Close()
	defer os.Remove(f.Name())

	cfg, err := config.Load(f.Name())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Encode.ErrorCorrectionLevel != "medium" {
		t.Errorf("default ErrorCorrectionLevel = %q, want %q", cfg.Encode.ErrorCorrectionLevel, "medium")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Encode.Scale != 8 {
		t.Errorf("Scale = %d, want %d", cfg.Encode.Scale, 8)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	f, _ := os.CreateTemp("", "*.yaml")
	f.WriteString("encode:\n  error_correction_level: high\n  scale: 12\nserver:\n  addr: 127.0.0.1:9090\n")
	f.Close()
	defer os.Remove(f.Name())

	cfg, err := config.Load(f.Name())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Encode.ErrorCorrectionLevel != "high" {
		t.Errorf("ErrorCorrectionLevel = %q, want %q", cfg.Encode.ErrorCorrectionLevel, "high")
	}
	if cfg.Encode.Scale != 12 {
		t.Errorf("Scale = %d, want %d", cfg.Encode.Scale, 12)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:9090")
	}
	// Border wasn't in the file, so it keeps its default.
	if cfg.Encode.Border != 4 {
		t.Errorf("Border = %d, want %d", cfg.Encode.Border, 4)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/nested/config.yaml"

	cfg := config.Defaults()
	cfg.Server.Addr = ":9999"
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Server.Addr != ":9999" {
		t.Errorf("Addr = %q, want %q", loaded.Server.Addr, ":9999")
	}
}
