// Package config loads and validates the gateway configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the whitelist gateway configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Discord   DiscordConfig   `yaml:"discord"`
	Console   ConsoleConfig   `yaml:"console"`
	Xbox      XboxConfig      `yaml:"xbox"`
	Whitelist WhitelistConfig `yaml:"whitelist"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string `yaml:"host" default:"localhost" validate:"required"`
	Port         int    `yaml:"port" default:"5432"`
	User         string `yaml:"user" validate:"required"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database" default:"whitelist" validate:"required"`
	SSLMode      string `yaml:"ssl_mode" default:"disable"`
	MaxOpenConns int    `yaml:"max_open_conns" default:"5"`
}

// DiscordConfig contains the interaction endpoint credentials.
// PublicKey verifies inbound interaction signatures; ApplicationID and
// BotToken are only needed by the command registration CLI.
type DiscordConfig struct {
	PublicKey     string `yaml:"public_key"`
	ApplicationID string `yaml:"application_id"`
	BotToken      string `yaml:"bot_token"`
	GuildID       string `yaml:"guild_id"`
	HelpChannelID string `yaml:"help_channel_id"`
}

// ConsoleConfig contains the game server RCON settings.
// An empty password disables remote dispatch entirely.
type ConsoleConfig struct {
	Address  string        `yaml:"address" default:"localhost:25575"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout" default:"10s"`
}

// XboxConfig contains the Xbox profile lookup service settings
type XboxConfig struct {
	BaseURL string        `yaml:"base_url" default:"https://xapi.us/v2"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout" default:"10s"`
}

// WhitelistConfig contains eligibility policy settings
type WhitelistConfig struct {
	Cooldown time.Duration `yaml:"cooldown" default:"72h"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// Load reads configuration from a YAML file, applies defaults and
// environment fallbacks for secrets, then validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := defaults.Set(&config); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	config.applyEnvFallbacks()

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// applyEnvFallbacks fills secrets from the environment when the file leaves
// them empty, so credentials never have to live in the YAML.
func (c *Config) applyEnvFallbacks() {
	envFallback(&c.Discord.PublicKey, "DISCORD_PUBLIC_KEY")
	envFallback(&c.Discord.ApplicationID, "DISCORD_APPLICATION_ID")
	envFallback(&c.Discord.BotToken, "DISCORD_BOT_TOKEN")
	envFallback(&c.Console.Password, "RCON_PASSWORD")
	envFallback(&c.Xbox.APIKey, "XAPI_AUTH")
	envFallback(&c.Database.Password, "DATABASE_PASSWORD")
}

func envFallback(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

// ConsoleEnabled reports whether remote console dispatch is configured
func (c *Config) ConsoleEnabled() bool {
	return c.Console.Password != ""
}
