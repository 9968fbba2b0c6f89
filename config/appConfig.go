package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"swipemarket_api/config/values"
)

type RakutenConfig struct {
	ApplicationID string               `yaml:"application_id"`
	Values        values.RakutenValues `yaml:"default_values"`
}

type AppConfig struct {
	Rakuten  RakutenConfig     `yaml:"rakuten"`
	Postgres PostgresConfig    `yaml:"postgres"`
	Feed     values.FeedValues `yaml:"feed"`
	Addr     string            `yaml:"addr"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	config.applyDefaults()
	return config, nil
}

// DefaultConfig is used when no config.yaml is present: Postgres comes from
// the environment, everything else from the built-in values.
func DefaultConfig() *AppConfig {
	config := &AppConfig{
		Postgres: GetPostgresConfig(),
	}
	config.applyDefaults()
	return config
}

func (c *AppConfig) applyDefaults() {
	if c.Addr == "" {
		c.Addr = getEnv("CATALOG_ADDR", ":8081")
	}
	if c.Rakuten.ApplicationID == "" {
		c.Rakuten.ApplicationID = os.Getenv("RAKUTEN_APP_ID")
	}
	if c.Postgres.Host == "" {
		c.Postgres = GetPostgresConfig()
	}
	c.Feed.Normalize()
	c.Rakuten.Values.Normalize()
}
