package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Groq      GroqConfig
	Mail      MailConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"5000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	FrontendURL     string        `envconfig:"FRONTEND_URL"`
	TrustProxy      bool          `envconfig:"TRUST_PROXY" default:"false"`
	BodyLimit       string        `envconfig:"BODY_LIMIT" default:"10M"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// GroqConfig holds completion API configuration
type GroqConfig struct {
	APIKey  string        `envconfig:"GROQ_API_KEY"`
	BaseURL string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Model   string        `envconfig:"GROQ_MODEL" default:"llama3-8b-8192"`
	Timeout time.Duration `envconfig:"GROQ_TIMEOUT" default:"0s"`
}

// MailConfig holds the mail account used to share summaries
type MailConfig struct {
	User     string `envconfig:"EMAIL_USER"`
	Password string `envconfig:"EMAIL_PASS"`
	Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
}

// RateLimitConfig holds fixed window limiter configuration
type RateLimitConfig struct {
	Window time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`
	Max    int64         `envconfig:"RATE_LIMIT_MAX" default:"100"`
	Store  string        `envconfig:"RATE_LIMIT_STORE" default:"memory"` // "memory" or "redis"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration.
// Missing credentials are not an error here; requests report them instead.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.RateLimit.Max <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}
	switch c.RateLimit.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("RATE_LIMIT_STORE must be memory or redis, got %q", c.RateLimit.Store)
	}
	return nil
}

// Origins returns the CORS allow-list: the configured origins plus FRONTEND_URL
func (c *Config) Origins() []string {
	origins := make([]string, 0, len(c.Server.AllowedOrigins)+1)
	for _, o := range c.Server.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if c.Server.FrontendURL != "" {
		origins = append(origins, c.Server.FrontendURL)
	}
	return origins
}

// GroqConfigured reports whether the completion credential is set
func (c *Config) GroqConfigured() bool {
	return c.Groq.APIKey != ""
}

// MailConfigured reports whether both mail credentials are set
func (c *Config) MailConfigured() bool {
	return c.Mail.User != "" && c.Mail.Password != ""
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
