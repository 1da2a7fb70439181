package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all tool configuration. The per-service sections are the
// knobs an operator fills in before exposing a tool to their LLM host; tools
// whose section is left empty are simply not registered.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Events EventsConfig `yaml:"events"`
	Cache  CacheConfig  `yaml:"cache"`
	Jira   JiraConfig   `yaml:"jira"`
	Tavily TavilyConfig `yaml:"tavily"`
	Places PlacesConfig `yaml:"places"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type EventsConfig struct {
	// Enabled controls whether tools emit status/citation/message events
	// back to the host while executing
	Enabled bool `yaml:"enabled" env:"EMIT_EVENTS" env-default:"false"`
}

type CacheConfig struct {
	Driver     string `yaml:"driver" env:"CACHE_DRIVER" env-default:"sqlite"`
	DSN        string `yaml:"dsn" env:"CACHE_DSN" env-default:"toolshed.db"`
	TTLSeconds int    `yaml:"ttl_seconds" env:"CACHE_TTL_SECONDS" env-default:"300"`
}

type JiraConfig struct {
	BaseURL  string `yaml:"base_url" env:"JIRA_BASE_URL"`
	Username string `yaml:"username" env:"JIRA_USERNAME"`
	APIToken string `yaml:"api_token" env:"JIRA_API_TOKEN"`
}

type TavilyConfig struct {
	APIKey  string `yaml:"api_key" env:"TAVILY_API_KEY"`
	Timeout int    `yaml:"timeout" env:"TAVILY_TIMEOUT" env-default:"30"`
}

type PlacesConfig struct {
	APIKey string `yaml:"api_key" env:"PLACES_API_KEY"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with envs
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		// If file doesn't exist, just read env vars
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}
