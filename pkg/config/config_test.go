package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DefaultRowHeight != 20 {
		t.Errorf("DefaultRowHeight = %v, want 20", cfg.DefaultRowHeight)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.Theme)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load of missing file = %+v, want defaults", cfg)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spanview.yaml")
	cfg := Default()
	cfg.DefaultRowHeight = 32
	cfg.Capabilities.TracyPlots = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestCapabilityProjection(t *testing.T) {
	cfg := Default()
	cfg.Capabilities.PIXFrameMarkers = true
	cfg.Capabilities.TracyLocks = true

	if !cfg.PIXCapabilities().FrameMarkers {
		t.Error("PIXCapabilities().FrameMarkers = false, want true")
	}
	tc := cfg.TracyCapabilities()
	if !tc.Locks || tc.Plots {
		t.Errorf("TracyCapabilities() = %+v, want Locks=true Plots=false", tc)
	}
}
