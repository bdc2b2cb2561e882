package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Assistant AssistantConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StorageConfig selects and configures the durable slot backend.
// Backend is one of: memory, redis, mongo.
type StorageConfig struct {
	Backend   string
	Namespace string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI      string
	MongoDatabase string
	MongoTimeout  time.Duration
}

// AssistantConfig configures the external writing-assistant channel.
// An empty APIKey leaves the feature unavailable; nothing else breaks.
type AssistantConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	SystemInstruction string
	Timeout           time.Duration
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5020")
	viper.SetDefault("SERVER_HOST", "127.0.0.1")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("STORAGE_BACKEND", "memory")
	viper.SetDefault("STORAGE_NAMESPACE", "inkweld")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("MONGODB_DATABASE", "inkweld")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("ASSISTANT_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("ASSISTANT_MODEL", "gemini-2.5-flash")
	viper.SetDefault("ASSISTANT_SYSTEM_INSTRUCTION", "You are a helpful writing assistant.")
	viper.SetDefault("ASSISTANT_TIMEOUT", 60)
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_RPS", 25.0)
	viper.SetDefault("RATE_LIMIT_BURST", 50)
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Backend:       viper.GetString("STORAGE_BACKEND"),
			Namespace:     viper.GetString("STORAGE_NAMESPACE"),
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			RedisDB:       viper.GetInt("REDIS_DB"),
			MongoURI:      viper.GetString("MONGODB_URI"),
			MongoDatabase: viper.GetString("MONGODB_DATABASE"),
			MongoTimeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Assistant: AssistantConfig{
			APIKey:            viper.GetString("ASSISTANT_API_KEY"),
			BaseURL:           viper.GetString("ASSISTANT_BASE_URL"),
			Model:             viper.GetString("ASSISTANT_MODEL"),
			SystemInstruction: viper.GetString("ASSISTANT_SYSTEM_INSTRUCTION"),
			Timeout:           time.Duration(viper.GetInt("ASSISTANT_TIMEOUT")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled: viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   viper.GetInt("RATE_LIMIT_BURST"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	return cfg, nil
}
