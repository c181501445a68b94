package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Shopify   ShopifyConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// ShopifyConfig holds the Storefront API credentials. Empty values are
// accepted; platform calls will then fail at request time.
type ShopifyConfig struct {
	StoreDomain     string
	StorefrontToken string
	APIVersion      string
	Timeout         time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

// Enabled reports whether the cart event journal has a database to write to
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func Load() *Config {
	// Populate the process environment first so that anything reading
	// os.Getenv sees the same values as viper.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env: %v", err)
	}

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("SHOPIFY_API_VERSION", "2023-01")
	viper.SetDefault("SHOPIFY_TIMEOUT_SECONDS", 30)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_SECONDS", 300)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Shopify: ShopifyConfig{
			StoreDomain:     strings.TrimSpace(viper.GetString("SHOPIFY_STORE_DOMAIN")),
			StorefrontToken: strings.TrimSpace(viper.GetString("SHOPIFY_STOREFRONT_TOKEN")),
			APIVersion:      viper.GetString("SHOPIFY_API_VERSION"),
			Timeout:         time.Duration(viper.GetInt("SHOPIFY_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			TTL: time.Duration(viper.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
