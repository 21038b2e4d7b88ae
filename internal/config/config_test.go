package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Render.FPS != 65.0 {
		t.Fatalf("render.fps default = %v, want 65", cfg.Render.FPS)
	}
	if cfg.Render.Batch != 10 {
		t.Fatalf("render.batch default = %v, want 10", cfg.Render.Batch)
	}
	if cfg.Render.Scale != "log" {
		t.Fatalf("render.scale default = %q, want log", cfg.Render.Scale)
	}
	if cfg.Inputs.Log != "log.txt" {
		t.Fatalf("inputs.log default = %q", cfg.Inputs.Log)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("render:\n  fps: 2\n  batch: 5\n  scale: linear\ninputs:\n  trades: /tmp/trades.csv\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.FPS != 2 || cfg.Render.Batch != 5 || cfg.Render.Scale != "linear" {
		t.Fatalf("file values not applied: %+v", cfg.Render)
	}
	if cfg.Inputs.Trades != "/tmp/trades.csv" {
		t.Fatalf("inputs.trades = %q", cfg.Inputs.Trades)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	cfg := base()
	cfg.Render.FPS = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("fps 0 must fail validation")
	}

	cfg = base()
	cfg.Render.Batch = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("batch 0 must fail validation")
	}

	cfg = base()
	cfg.Render.Scale = "cubic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown scale must fail validation")
	}
}

func TestResolveOverrides(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if got := cfg.ResolveBatch(3); got != 3 {
		t.Fatalf("ResolveBatch(3) = %d", got)
	}
	if got := cfg.ResolveBatch(0); got != cfg.Render.Batch {
		t.Fatalf("ResolveBatch(0) = %d, want config default", got)
	}
	if got := cfg.ResolveFPS(12); got != 12 {
		t.Fatalf("ResolveFPS(12) = %v", got)
	}
	if got := cfg.ResolveFPS(0); got != cfg.Render.FPS {
		t.Fatalf("ResolveFPS(0) = %v, want config default", got)
	}
}
