package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"blackjack-server/internal/util"
)

// Config provides configuration for the blackjack server
type Config struct {
	loaded bool

	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`

	// Table configures how new tables play by default
	Table struct {
		Shoe           string `yaml:"shoe" envconfig:"shoe"`
		BotRight       string `yaml:"botRight" envconfig:"bot_right"`
		BotLeft        string `yaml:"botLeft" envconfig:"bot_left"`
		SideBet        string `yaml:"sideBet" envconfig:"side_bet"`
		DealDelayMS    int    `yaml:"dealDelayMs" envconfig:"deal_delay_ms"`
		ShuffleDelayMS int    `yaml:"shuffleDelayMs" envconfig:"shuffle_delay_ms"`
	}
}

// DealDelay returns the table's dealing delay as a duration
func (c Config) DealDelay() time.Duration {
	return time.Duration(c.Table.DealDelayMS) * time.Millisecond
}

// ShuffleDelay returns the table's shuffling delay as a duration
func (c Config) ShuffleDelay() time.Duration {
	return time.Duration(c.Table.ShuffleDelayMS) * time.Millisecond
}

var config Config

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

// Load will load the configuration. A missing config file is not an
// error; the defaults and the environment still apply.
func Load() error {
	config = defaults()

	configFile := util.Getenv("BJ_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("bj", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}

func defaults() Config {
	var c Config
	c.Log.Level = "info"
	c.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	c.MigrationsPath = "./sql"
	c.Table.Shoe = "standard"
	c.Table.DealDelayMS = 250
	c.Table.ShuffleDelayMS = 1500
	return c
}
