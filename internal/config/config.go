package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DefaultDatasetURL is the published locations CSV. It is the default,
// not a requirement; FASTFOOD_DATASET_URL points the server elsewhere.
const DefaultDatasetURL = "https://raw.githubusercontent.com/nyamux/fastfood/main/fastfoodus.csv"

type Config struct {
	DatasetURL   string `mapstructure:"dataset_url"`
	ListenAddr   string `mapstructure:"listen_addr"`
	FetchTimeout time.Duration
	MapMaxPoints int `mapstructure:"map_max_points"`
}

// Load reads configuration from env and an optional YAML file.
// Precedence: env > config file > defaults. The defaults make the
// binary runnable with no configuration at all.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FASTFOOD")
	v.AutomaticEnv()

	v.SetDefault("dataset_url", DefaultDatasetURL)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("fetch_timeout_sec", 30)
	v.SetDefault("map_max_points", 1000)

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		DatasetURL:   v.GetString("dataset_url"),
		ListenAddr:   v.GetString("listen_addr"),
		FetchTimeout: time.Duration(v.GetInt("fetch_timeout_sec")) * time.Second,
		MapMaxPoints: v.GetInt("map_max_points"),
	}
	if cfg.DatasetURL == "" {
		return nil, fmt.Errorf("dataset_url must not be empty")
	}
	return cfg, nil
}
