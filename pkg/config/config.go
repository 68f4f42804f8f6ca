package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Settings holds all configuration values
type Settings struct {
	// Server configuration
	Server struct {
		URL     string
		Timeout time.Duration
	}

	// Streaming toggles incremental output; when false the CLI prints
	// only the resolved reply.
	Streaming bool

	// Workflow configuration
	Workflow struct {
		Default string
		Path    string
	}

	// History configuration
	History struct {
		Path string
	}

	// Logging configuration
	Logging struct {
		LogFile string
		Persist bool
		Level   string
	}

	// ConfigFile stores the path to the config file used
	ConfigFile string
}

// Global settings instance
var Global *Settings

// Init initializes the configuration system
func Init(cfgFile string) error {
	Global = &Settings{}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		Global.ConfigFile = cfgFile
	} else {
		viper.AddConfigPath("./.weft")
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
		Global.ConfigFile = ".weft/settings.yaml"
	}

	setDefaults()

	viper.AutomaticEnv()
	viper.BindEnv("server.url", "WEFT_SERVER_URL")
	viper.BindEnv("workflow.default", "WEFT_WORKFLOW")

	// Missing config file is fine, defaults apply.
	if err := viper.ReadInConfig(); err == nil {
		Global.ConfigFile = viper.ConfigFileUsed()
	}

	return Load()
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("server.url", "http://localhost:8420")
	viper.SetDefault("server.timeout", 90)

	viper.SetDefault("streaming", true)

	viper.SetDefault("workflow.default", "")
	viper.SetDefault("workflow.path", "workflow.json")

	viper.SetDefault("history.path", "chat_history.json")

	viper.SetDefault("logging.log_file", "weft.log")
	viper.SetDefault("logging.persist", false)
	viper.SetDefault("logging.level", "info")
}

// Load reads the current viper state into the global settings struct
func Load() error {
	if Global == nil {
		return fmt.Errorf("config not initialized")
	}

	Global.Server.URL = viper.GetString("server.url")
	Global.Server.Timeout = time.Duration(viper.GetInt("server.timeout")) * time.Second

	Global.Streaming = viper.GetBool("streaming")

	Global.Workflow.Default = viper.GetString("workflow.default")
	Global.Workflow.Path = viper.GetString("workflow.path")

	Global.History.Path = viper.GetString("history.path")

	Global.Logging.LogFile = viper.GetString("logging.log_file")
	Global.Logging.Persist = viper.GetBool("logging.persist")
	Global.Logging.Level = viper.GetString("logging.level")

	return nil
}

// Get returns the global settings, loading them on first use so tests
// and library consumers don't have to call Init explicitly.
func Get() *Settings {
	if Global == nil {
		Global = &Settings{}
		setDefaults()
		Load()
	}
	return Global
}
