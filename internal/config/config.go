package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the ClubSocial card-room server
type Config struct {
	loaded         bool
	Listen         string `yaml:"listen" envconfig:"listen"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Sweep struct {
		IntervalSeconds int `yaml:"intervalSeconds" envconfig:"interval_seconds"`
		TimeoutSeconds  int `yaml:"timeoutSeconds" envconfig:"timeout_seconds"`
	}
}

var config Config

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	var c Config
	c.Listen = ":5000"
	c.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	c.MigrationsPath = "./sql"
	c.JWT.PublicKey = "jwt/public.pem"
	c.JWT.PrivateKey = "jwt/private.key"
	c.Sweep.IntervalSeconds = 60
	c.Sweep.TimeoutSeconds = 20

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	config = DefaultConfig()

	configFile := os.Getenv("CLUB_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	if file, err := os.Open(configFile); err == nil {
		err = yaml.NewDecoder(file).Decode(&config)
		_ = file.Close()
		if err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("club", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
