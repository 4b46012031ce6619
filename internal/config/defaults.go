package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the default application configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Path: "~/.cybercop/cybercop.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleMinutes: 30,
		},
	}
}
