package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the config file loaded when neither --config nor
// PIKAV_CONFIG points elsewhere.
const DefaultPath = "pikav.toml"

// Node declares one cluster peer.
type Node struct {
	URL       string `toml:"url"`
	Namespace string `toml:"namespace,omitempty"`
}

type Config struct {
	Listen      string `toml:"listen"`       // PIKAV_LISTEN (default ":6750")
	ClusterAddr string `toml:"cluster_addr"` // PIKAV_CLUSTER_ADDR (default ":6751")
	JwksURL     string `toml:"jwks_url"`     // PIKAV_JWKS_URL (required for serve)
	NATSURL     string `toml:"nats_url"`     // PIKAV_NATS_URL (optional, empty = no bridge)
	NATSSubject string `toml:"nats_subject"` // PIKAV_NATS_SUBJECT (default "pikav.events")
	Nodes       []Node `toml:"nodes"`
}

// Load reads the TOML file at path (PIKAV_CONFIG or DefaultPath when empty),
// merges an optional `<path>.local` override on top, then applies PIKAV_*
// environment overrides for scalar fields. A missing base file is not an
// error; the environment alone can configure a node.
func Load(path string) (*Config, error) {
	if path == "" {
		path = envOrDefault("PIKAV_CONFIG", DefaultPath)
	}

	cfg := &Config{
		Listen:      ":6750",
		ClusterAddr: ":6751",
		NATSSubject: "pikav.events",
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	local := path + ".local"
	if _, err := toml.DecodeFile(local, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", local, err)
	}

	cfg.Listen = envOrDefault("PIKAV_LISTEN", cfg.Listen)
	cfg.ClusterAddr = envOrDefault("PIKAV_CLUSTER_ADDR", cfg.ClusterAddr)
	cfg.JwksURL = envOrDefault("PIKAV_JWKS_URL", cfg.JwksURL)
	cfg.NATSURL = envOrDefault("PIKAV_NATS_URL", cfg.NATSURL)
	cfg.NATSSubject = envOrDefault("PIKAV_NATS_SUBJECT", cfg.NATSSubject)

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
