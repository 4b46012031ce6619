// Package config provides YAML-based application configuration loading for
// the training platform.
package config

// Config contains all application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// StorageConfig defines where durable state lives.
type StorageConfig struct {
	// Path is the sqlite database file. A leading ~ expands to the home
	// directory.
	Path string `yaml:"path"`
}

// CatalogConfig defines where mission content comes from.
type CatalogConfig struct {
	// Pack is an optional external mission pack file. Empty means the
	// embedded default pack.
	Pack string `yaml:"pack"`
}

// SSHConfig defines the remote-access server parameters.
type SSHConfig struct {
	Address     string `yaml:"address"`
	HostKeyPath string `yaml:"host_key_path"`
	IdleMinutes int    `yaml:"idle_minutes"`
}
