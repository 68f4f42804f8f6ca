package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// BaseSettingsDir returns the directory relative paths resolve against:
// the directory of the config file in use, or an explicit override.
func BaseSettingsDir() string {
	// Explicit override, mainly for tests.
	if configPath := viper.GetString("config.path"); configPath != "" {
		return configPath
	}

	currentConfig := viper.ConfigFileUsed()
	if currentConfig == "" {
		return ".weft"
	}
	return filepath.Dir(currentConfig)
}

// BuildSettingsPath joins target onto the settings directory. Absolute
// targets are returned unchanged.
func BuildSettingsPath(target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(BaseSettingsDir(), target)
}
