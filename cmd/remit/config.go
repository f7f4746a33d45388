// Config loading for the remit CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyListenAddr   = "listen_addr"
	cfgKeyAuthSecret   = "auth_secret"
	cfgKeyRateLimitRPS = "rate_limit_rps"

	// Defaults.
	defaultBackend      = "sqlite"
	defaultListenAddr   = ":8787"
	defaultRateLimitRPS = 50
)

// appConfig is the loaded configuration, set by PersistentPreRunE.
var appConfig *viper.Viper

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Remit CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Address the serve command listens on
listen_addr: ":8787"

# Secret used to sign and verify API bearer tokens.
# Change this before exposing the API.
auth_secret: "change-me"

# Requests per second allowed by the API
rate_limit_rps: 50
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetDefault(cfgKeyRateLimitRPS, defaultRateLimitRPS)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config.yaml is not an error.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
