package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Ledger LedgerConfig `mapstructure:"ledger"`
	Trace  TraceConfig  `mapstructure:"trace"`
}

// AppConfig represents application-specific configuration
type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	HTTPPort int    `mapstructure:"http_port"`
}

// LedgerConfig locates the collaborator-owned tabular snapshots
type LedgerConfig struct {
	TransfersFile   string `mapstructure:"transfers_file"`
	MappingsFile    string `mapstructure:"mappings_file"`
	TimestampFormat string `mapstructure:"timestamp_format"`
}

// TraceConfig bounds the traversal queries served over HTTP
type TraceConfig struct {
	DefaultMaxDepth int `mapstructure:"default_max_depth"`
	MaxDepthLimit   int `mapstructure:"max_depth_limit"`
}

// Load loads configuration from environment variables and files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/crypto-fund-tracer")

	// Environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.http_port", 8080)

	viper.SetDefault("ledger.transfers_file", "mock_chain/tx.csv")
	viper.SetDefault("ledger.mappings_file", "entities/xref_wallets.csv")
	viper.SetDefault("ledger.timestamp_format", time.RFC3339)

	viper.SetDefault("trace.default_max_depth", 3)
	viper.SetDefault("trace.max_depth_limit", 10)

	viper.BindEnv("ledger.transfers_file", "TRANSFERS_FILE")
	viper.BindEnv("ledger.mappings_file", "MAPPINGS_FILE")
}
