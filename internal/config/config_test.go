package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Scan.FollowSymlinks || !cfg.Scan.ShowHidden || !cfg.Scan.DetectHardlinks {
		t.Fatalf("unexpected defaults: %+v", cfg.Scan)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default level info, got %s", cfg.Logging.Level)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
scan:
  follow_symlinks: false
  exclude:
    - "**/*.log"
    - "node_modules"
  max_depth: 4
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scan.FollowSymlinks {
		t.Fatal("follow_symlinks should be overridden to false")
	}
	if !cfg.Scan.ShowHidden {
		t.Fatal("show_hidden should keep its default")
	}
	if len(cfg.Scan.Exclude) != 2 || cfg.Scan.Exclude[0] != "**/*.log" {
		t.Fatalf("unexpected excludes: %v", cfg.Scan.Exclude)
	}
	if cfg.Scan.MaxDepth != 4 {
		t.Fatalf("unexpected max_depth: %d", cfg.Scan.MaxDepth)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level: %s", cfg.Logging.Level)
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("an explicitly given missing config file must be an error")
	}
}

func TestLoad_RejectsBadLevel(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}

func TestLoad_RejectsNegativeDepth(t *testing.T) {
	path := writeConfig(t, "scan:\n  max_depth: -1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a negative max_depth")
	}
}

func TestLoad_RejectsGarbage(t *testing.T) {
	path := writeConfig(t, "scan: [not a map\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
