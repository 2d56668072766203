package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string `mapstructure:"mode"`
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
	ReadLimit  int64  `mapstructure:"read_limit"`
	Secret     string `mapstructure:"secret"`

	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	MaxInactivity     time.Duration `mapstructure:"max_inactivity"`

	// RelayRateLimit caps relayed messages per session per window.
	// Zero disables the cap.
	RelayRateLimit  int           `mapstructure:"relay_rate_limit"`
	RelayRateWindow time.Duration `mapstructure:"relay_rate_window"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("secret", "change-me")
	// The inactivity threshold must exceed the sweep interval, with
	// margin, or scheduling jitter can evict healthy peers.
	v.SetDefault("heartbeat_interval", "30s")
	v.SetDefault("max_inactivity", "60s")
	v.SetDefault("relay_rate_limit", 0)
	v.SetDefault("relay_rate_window", "1s")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MaxInactivity <= cfg.HeartbeatInterval {
		return nil, fmt.Errorf("max_inactivity (%s) must exceed heartbeat_interval (%s)", cfg.MaxInactivity, cfg.HeartbeatInterval)
	}
	return &cfg, nil
}
