package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeFile(t, "tuning.yaml", "order: score\nrefine:\n  add: false\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Order != OrderScore {
		t.Errorf("order = %q, want score", cfg.Order)
	}
	if cfg.Refine.Add || !cfg.Refine.Remove {
		t.Errorf("refine = %+v, want remove only", cfg.Refine)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want default info", cfg.LogLevel)
	}
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown order": "order: random\n",
		"unknown key":   "orderr: score\n",
		"bad level":     "log_level: loud\n",
		"bad yaml":      "order: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeFile(t, "c.yaml", content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
