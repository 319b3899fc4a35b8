// Package config loads service settings from defaults, an optional config file
// and INVENTORY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Server struct {
	Addr string `mapstructure:"addr"`
}

type Storage struct {
	Driver      string `mapstructure:"driver"`
	BoltPath    string `mapstructure:"bolt_path"`
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisPrefix string `mapstructure:"redis_prefix"`
	PostgresURL string `mapstructure:"postgres_url"`
}

type Log struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Backup struct {
	Schedule string `mapstructure:"schedule"`
	Dir      string `mapstructure:"dir"`
}

type RateLimit struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type Inventory struct {
	NodeID int64 `mapstructure:"node_id"`
}

// Config is the full service configuration.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Storage   Storage   `mapstructure:"storage"`
	Log       Log       `mapstructure:"log"`
	Backup    Backup    `mapstructure:"backup"`
	RateLimit RateLimit `mapstructure:"ratelimit"`
	Inventory Inventory `mapstructure:"inventory"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.driver", "bolt")
	v.SetDefault("storage.bolt_path", "inventory.db")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_prefix", "inventory:")
	v.SetDefault("storage.postgres_url", "")
	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("backup.schedule", "")
	v.SetDefault("backup.dir", "backups")
	v.SetDefault("ratelimit.rps", 10)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("inventory.node_id", 1)
}

// Load reads the configuration. path names a config file; when empty,
// config.yaml is looked up in the working directory and ignored if absent.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if cfg.Storage.PostgresURL == "" {
		cfg.Storage.PostgresURL = os.Getenv("DATABASE_URL")
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	return cfg, nil
}
