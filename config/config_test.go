package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "battle.yaml")
	data := []byte(`
shield:
  protection_radius: 200
  cone_degrees: 120
combat:
  cone_degrees: 45
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Shield.ProtectionRadius != 200 {
		t.Errorf("protection radius = %v, want 200", cfg.Shield.ProtectionRadius)
	}
	if math.Abs(cfg.BlockHalfCone()-math.Pi/3) > 1e-12 {
		t.Errorf("block half cone = %v, want pi/3", cfg.BlockHalfCone())
	}
	if math.Abs(cfg.AttackHalfCone()-math.Pi/8) > 1e-12 {
		t.Errorf("attack half cone = %v, want pi/8", cfg.AttackHalfCone())
	}
	// untouched sections keep defaults
	if cfg.Arena.Width != Default().Arena.Width {
		t.Errorf("arena width changed to %v", cfg.Arena.Width)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("ai:\n  block_chance: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Combat.FPS != Default().Combat.FPS {
		t.Fatalf("unexpected fps %d", cfg.Combat.FPS)
	}
}

func TestArenaBoundsUseHalfSizeAndTopMargin(t *testing.T) {
	cfg := Default()
	b := cfg.ArenaBounds()
	if b.Min.X != cfg.Knight.Size/2 || b.Min.Y != cfg.Knight.Size/2+cfg.Arena.TopMargin {
		t.Fatalf("unexpected min bound %v", b.Min)
	}
	if b.Max.X != cfg.Arena.Width-cfg.Knight.Size/2 {
		t.Fatalf("unexpected max bound %v", b.Max)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		apply func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Arena.Width = 0 }},
		{"knight wider than arena", func(c *Config) { c.Knight.Size = c.Arena.Width }},
		{"arena too short for margin", func(c *Config) { c.Arena.Height = c.Arena.TopMargin + c.Knight.Size - 1 }},
		{"negative speed", func(c *Config) { c.Knight.Speed = -1 }},
		{"negative end delay", func(c *Config) { c.Combat.EndDelayMs = -1 }},
		{"cooldown shorter than swing", func(c *Config) { c.Combat.CooldownFrames = c.Combat.SwingFrames - 1 }},
		{"zero turn rate", func(c *Config) { c.AI.TurnRateDegrees = 0 }},
		{"negative turn rate", func(c *Config) { c.AI.TurnRateDegrees = -5 }},
		{"block chance above one", func(c *Config) { c.AI.BlockChance = 1.5 }},
	}
	for _, tt := range tests {
		c := Default()
		tt.apply(c)
		if err := c.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: got %v, want ErrInvalid", tt.name, err)
		}
	}

	// exact fit collapses the vertical range to a single row
	c := Default()
	c.Arena.Height = c.Arena.TopMargin + c.Knight.Size
	if err := c.Validate(); err != nil {
		t.Errorf("exact fit rejected: %v", err)
	}
	if b := c.ArenaBounds(); b.Min.Y != b.Max.Y {
		t.Errorf("bounds %+v, want a single row", b)
	}
}
