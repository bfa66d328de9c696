package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mycofab/imprint/pkg/imposition"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imprint.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Defaults.Paper != "letter" {
		t.Errorf("default paper = %q, want letter", cfg.Defaults.Paper)
	}
	if cfg.Defaults.ContrastBoost != 1.0 {
		t.Errorf("default contrast boost = %g, want 1.0", cfg.Defaults.ContrastBoost)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.Paper != Default().Defaults.Paper {
		t.Error("missing file did not fall back to defaults")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[defaults]
paper = "a4"
radius = 80.0
contrast_boost = 1.21
margin_in = 0.5

[paper.badge]
width_in = 4.0
height_in = 6.0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.Paper != "a4" {
		t.Errorf("paper = %q, want a4", cfg.Defaults.Paper)
	}
	if cfg.Defaults.Radius != 80.0 {
		t.Errorf("radius = %g, want 80", cfg.Defaults.Radius)
	}
	if _, ok := cfg.Paper["badge"]; !ok {
		t.Error("badge profile not loaded")
	}
}

func TestLoadRejectsIncompleteProfile(t *testing.T) {
	path := writeConfig(t, `
[paper.broken]
width_in = 4.0
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load succeeded with profile missing height_in, want error")
	}
}

func TestResolvePaper(t *testing.T) {
	cfg := Default()
	cfg.Paper = map[string]PaperProfile{
		"badge": {WidthIn: 4, HeightIn: 6},
	}

	t.Run("builtin", func(t *testing.T) {
		p, err := cfg.ResolvePaper("letter")
		if err != nil {
			t.Fatalf("ResolvePaper: %v", err)
		}
		if p != imposition.Letter {
			t.Errorf("paper = %+v, want Letter", p)
		}
	})

	t.Run("profile", func(t *testing.T) {
		p, err := cfg.ResolvePaper("badge")
		if err != nil {
			t.Fatalf("ResolvePaper: %v", err)
		}
		if p.WidthIn != 4 || p.HeightIn != 6 || p.Name != "badge" {
			t.Errorf("paper = %+v", p)
		}
	})

	t.Run("empty name uses default", func(t *testing.T) {
		p, err := cfg.ResolvePaper("")
		if err != nil {
			t.Fatalf("ResolvePaper: %v", err)
		}
		if p.Name != "letter" {
			t.Errorf("paper = %+v, want default letter", p)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := cfg.ResolvePaper("tabloid"); err == nil {
			t.Error("ResolvePaper(tabloid) succeeded, want error")
		}
	})
}
