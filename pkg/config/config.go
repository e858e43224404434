package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	OpenAI     OpenAIConfig
	Enrichment EnrichmentConfig
	Cache      CacheConfig
	Worker     WorkerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// OpenAIConfig holds LLM provider configuration
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// EnrichmentConfig holds lookup-provider configuration
type EnrichmentConfig struct {
	LogoBaseURL     string
	LogoTimeout     time.Duration
	HomepageTimeout time.Duration
	PromptsDir      string
}

// CacheConfig holds cache layer configuration
type CacheConfig struct {
	DefaultTTL time.Duration
}

// WorkerConfig holds worker pool and queue tunables, loaded via envconfig
// with the WORKER_ prefix (WORKER_CONCURRENCY, WORKER_MAX_STARTS_PER_MINUTE, ...)
type WorkerConfig struct {
	Concurrency        int           `envconfig:"CONCURRENCY" default:"5"`
	MaxStartsPerMinute int           `envconfig:"MAX_STARTS_PER_MINUTE" default:"10"`
	PollInterval       time.Duration `envconfig:"POLL_INTERVAL" default:"2s"`
	MaxAttempts        int           `envconfig:"MAX_ATTEMPTS" default:"5"`
	BackoffBase        time.Duration `envconfig:"BACKOFF_BASE" default:"2s"`
	JobTimeout         time.Duration `envconfig:"JOB_TIMEOUT" default:"5m"`
	PruneAge           time.Duration `envconfig:"PRUNE_AGE" default:"24h"`
	PruneKeep          int           `envconfig:"PRUNE_KEEP" default:"100"`
	PruneInterval      time.Duration `envconfig:"PRUNE_INTERVAL" default:"1h"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "briefing_assistant"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_API_URL", "https://api.openai.com"),
			Timeout: getEnvAsDuration("OPENAI_TIMEOUT", "30s"),
		},
		Enrichment: EnrichmentConfig{
			LogoBaseURL:     getEnv("LOGO_LOOKUP_URL", "https://logo.clearbit.com"),
			LogoTimeout:     getEnvAsDuration("LOGO_TIMEOUT", "5s"),
			HomepageTimeout: getEnvAsDuration("HOMEPAGE_TIMEOUT", "10s"),
			PromptsDir:      getEnv("PROMPTS_DIR", "prompts"),
		},
		Cache: CacheConfig{
			DefaultTTL: getEnvAsDuration("CACHE_DEFAULT_TTL", "900s"),
		},
	}

	if err := envconfig.Process("worker", &config.Worker); err != nil {
		return nil, fmt.Errorf("failed to load worker config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" && c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required in production")
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be at least 1")
	}
	if c.Worker.MaxAttempts < 1 {
		return fmt.Errorf("WORKER_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
