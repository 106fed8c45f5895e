package config

import "time"

// Config holds runtime settings for the PageKeeper CLI.
type Config struct {
	ServerEndpointAddr  string
	DataDir             string
	LocalDatabaseDSN    string
	RetryDelay          time.Duration
	UploadTimeout       time.Duration
	ViewerAddr          string
	OnlineCheckInterval time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DataDir = "data"
	c.LocalDatabaseDSN = "pages.db"
	c.RetryDelay = 2 * time.Second
	c.UploadTimeout = 10 * time.Second
	c.ViewerAddr = "127.0.0.1:8080"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
