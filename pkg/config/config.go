/*
Package config manages TOML config for GeoServe services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/geoserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	HTTP   HTTPConfig   `toml:"http"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has request validation options shared by the IPC and HTTP fronts.
type ServerConfig struct {
	MaxLimit   int  `toml:"max_limit"`
	MinPrefix  int  `toml:"min_prefix"`
	MaxPrefix  int  `toml:"max_prefix"`
	Capitalize bool `toml:"capitalize"`
}

// DataConfig points at the GeoNames dump and tunes how it is read.
type DataConfig struct {
	Path       string `toml:"path"`
	SkipHeader bool   `toml:"skip_header"`
	// Regions overrides or extends the admin1 code table.
	Regions map[string]string `toml:"regions"`
}

// HTTPConfig holds the HTTP API listener options.
type HTTPConfig struct {
	Addr string `toml:"addr"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/geoserve
// 2. ~/Library/Application Support/geoserve (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "geoserve")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "geoserve")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/geoserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:   50,
			MinPrefix:  1,
			MaxPrefix:  100,
			Capitalize: true,
		},
		Data: DataConfig{
			Path:       utils.DefaultDataFile,
			SkipHeader: true,
		},
		HTTP: HTTPConfig{
			Addr: ":2345",
		},
		CLI: CliConfig{
			DefaultLimit: 10,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Values missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse keeps every well typed value of a file the typed decode rejected
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "data"); ok {
		extractDataConfig(section, &config.Data)
	}
	if section, ok := utils.ExtractSection(raw, "http"); ok {
		if val, ok := utils.ExtractString(section, "addr"); ok {
			config.HTTP.Addr = val
		}
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		if val, ok := utils.ExtractInt64(section, "default_limit"); ok {
			config.CLI.DefaultLimit = val
		}
	}
	config.sanitize()
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractBool(data, "capitalize"); ok {
		server.Capitalize = val
	}
}

func extractDataConfig(data map[string]any, dc *DataConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dc.Path = val
	}
	if val, ok := utils.ExtractBool(data, "skip_header"); ok {
		dc.SkipHeader = val
	}
	if val, ok := utils.ExtractStringMap(data, "regions"); ok {
		dc.Regions = val
	}
}

// sanitize replaces nonsensical values with defaults.
func (c *Config) sanitize() {
	defaults := DefaultConfig()
	if c.Server.MaxLimit <= 0 {
		log.Warnf("Invalid max_limit %d, using %d", c.Server.MaxLimit, defaults.Server.MaxLimit)
		c.Server.MaxLimit = defaults.Server.MaxLimit
	}
	if c.Server.MinPrefix < 0 {
		c.Server.MinPrefix = defaults.Server.MinPrefix
	}
	if c.Server.MaxPrefix <= 0 || c.Server.MaxPrefix < c.Server.MinPrefix {
		log.Warnf("Invalid max_prefix %d, using %d", c.Server.MaxPrefix, defaults.Server.MaxPrefix)
		c.Server.MaxPrefix = defaults.Server.MaxPrefix
	}
	if c.CLI.DefaultLimit <= 0 {
		c.CLI.DefaultLimit = defaults.CLI.DefaultLimit
	}
	if c.Data.Path == "" {
		c.Data.Path = defaults.Data.Path
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = defaults.HTTP.Addr
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
