package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/taiwoajasa245/quran-verse-api/internal/session"
)

type clientConfig struct {
	APIURL    string        `mapstructure:"api_url"`
	StorePath string        `mapstructure:"store_path"`
	Reciter   string        `mapstructure:"reciter"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// loadConfig reads versectl.yaml from path, or from ./ and
// $HOME/.config/versectl when path is empty. VERSECTL_* variables override.
func loadConfig(path string) (*clientConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("versectl")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "versectl"))
		}
	}

	v.SetDefault("api_url", "http://localhost:5000")
	v.SetDefault("store_path", defaultStorePath())
	v.SetDefault("reciter", session.DefaultReciter)
	v.SetDefault("timeout", "15s")

	v.SetEnvPrefix("versectl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg clientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if cfg.APIURL == "" {
		return nil, errors.New("api_url must not be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &cfg, nil
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "versectl.db"
	}
	return filepath.Join(dir, "versectl", "versectl.db")
}
