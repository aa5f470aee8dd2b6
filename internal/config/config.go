package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ProtocolVersion string `yaml:"protocol_version"`

	// ListenAddr is the websocket gateway bind address.
	ListenAddr string `yaml:"listen_addr"`

	World  World  `yaml:"world"`
	Limits Limits `yaml:"limits"`
	Store  Store  `yaml:"store"`
}

// World locates the HTTP world interface the gateway forwards placements
// to and fetches region slices from.
type World struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
	// BatchSize caps blocks per placement request; 0 uses the client
	// default of 512.
	BatchSize int `yaml:"batch_size"`
}

func (w World) Timeout() time.Duration {
	if w.TimeoutMs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(w.TimeoutMs) * time.Millisecond
}

type Limits struct {
	MaxRegionVolume  int `yaml:"max_region_volume"`
	MaxStructureSpan int `yaml:"max_structure_span"`
}

// Store configures the build log database and the record archive dir.
type Store struct {
	BuildLogPath string `yaml:"build_log_path"`
	RecordDir    string `yaml:"record_dir"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ProtocolVersion: "1.0",
		ListenAddr:      ":8765",
		World: World{
			BaseURL:   "http://127.0.0.1:9000",
			TimeoutMs: 10000,
			BatchSize: 512,
		},
		Limits: Limits{
			MaxRegionVolume:  1 << 20,
			MaxStructureSpan: 128,
		},
		Store: Store{
			BuildLogPath: "buildlog.db",
			RecordDir:    "records",
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
