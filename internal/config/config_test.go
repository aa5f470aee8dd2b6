package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte(`
listen_addr: ":9999"
world:
  base_url: "http://world:9000"
  timeout_ms: 2500
  batch_size: 64
limits:
  max_region_volume: 4096
  max_structure_span: 32
store:
  build_log_path: "/tmp/builds.db"
  record_dir: "/tmp/records"
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ListenAddr != ":9999" {
		t.Fatalf("listen_addr %q", c.ListenAddr)
	}
	if c.World.BaseURL != "http://world:9000" || c.World.BatchSize != 64 {
		t.Fatalf("world %+v", c.World)
	}
	if c.World.Timeout().Milliseconds() != 2500 {
		t.Fatalf("timeout %v", c.World.Timeout())
	}
	if c.Limits.MaxRegionVolume != 4096 || c.Limits.MaxStructureSpan != 32 {
		t.Fatalf("limits %+v", c.Limits)
	}
	if c.Store.BuildLogPath != "/tmp/builds.db" {
		t.Fatalf("store %+v", c.Store)
	}
	// Fields absent from the file keep their defaults.
	if c.ProtocolVersion != "1.0" {
		t.Fatalf("protocol_version %q", c.ProtocolVersion)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefault_TimeoutFallback(t *testing.T) {
	w := World{}
	if w.Timeout().Seconds() != 10 {
		t.Fatalf("fallback timeout %v", w.Timeout())
	}
}
