package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Environment string         `mapstructure:"environment"`
	Database    DatabaseConfig `mapstructure:"database"`
	Backup      BackupConfig   `mapstructure:"backup"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type BackupConfig struct {
	Dir       string `mapstructure:"dir"`
	Retention int    `mapstructure:"retention"`
}

// Load reads the YAML config at path. Every key can be overridden with a
// VENUEDESK_* environment variable, e.g. VENUEDESK_DATABASE_PATH.
func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	viper.SetDefault("environment", "development")
	viper.SetDefault("database.path", "events.db")
	viper.SetDefault("backup.dir", "backups")
	viper.SetDefault("backup.retention", 7)

	viper.SetEnvPrefix("VENUEDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	var conf AppConfig
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return &conf, nil
}
