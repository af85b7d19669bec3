package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	Sales    SalesConfig
	LogLevel string
}

type ServerConfig struct {
	Port               string
	Host               string
	ReadTimeout        int
	WriteTimeout       int
	ShutdownTimeout    int
	CORSAllowedOrigins []string
}

// Credentials is a username/password pair parsed from "username:password"
type Credentials struct {
	Username string
	Password string
}

type AuthConfig struct {
	UserToken  string
	AdminToken string
	UserLogin  Credentials
	AdminLogin Credentials
	BcryptCost int

	// GeneratedTokens is set when a token was not configured and a random one was issued.
	GeneratedTokens bool
}

type CatalogConfig struct {
	SeedFile string // optional YAML catalog; the built-in one is used when empty
}

type SalesConfig struct {
	SeedCount        int
	SeedDays         int
	SeedMaxQuantity  int
	BurstCount       int
	BurstDays        int
	BurstMaxQuantity int
	RandomSeed       uint64
	DefaultPageSize  int
	MinPageSize      int
	MaxPageSize      int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			Host:               getEnv("HOST", "0.0.0.0"),
			ReadTimeout:        getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:       getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout:    getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Auth: AuthConfig{
			UserToken:  os.Getenv("AUTH_USER_TOKEN"),
			AdminToken: os.Getenv("AUTH_ADMIN_TOKEN"),
			UserLogin:  parseCredentials(getEnv("AUTH_USER_LOGIN", "Version1:Version1")),
			AdminLogin: parseCredentials(getEnv("AUTH_ADMIN_LOGIN", "admin:admin")),
			BcryptCost: getEnvAsInt("AUTH_BCRYPT_COST", bcrypt.DefaultCost),
		},
		Catalog: CatalogConfig{
			SeedFile: os.Getenv("CATALOG_SEED_FILE"),
		},
		Sales: SalesConfig{
			SeedCount:        getEnvAsInt("SALES_SEED_COUNT", 5000),
			SeedDays:         getEnvAsInt("SALES_SEED_DAYS", 360),
			SeedMaxQuantity:  getEnvAsInt("SALES_SEED_MAX_QUANTITY", 100),
			BurstCount:       getEnvAsInt("SALES_BURST_COUNT", 20),
			BurstDays:        getEnvAsInt("SALES_BURST_DAYS", 30),
			BurstMaxQuantity: getEnvAsInt("SALES_BURST_MAX_QUANTITY", 50),
			RandomSeed:       uint64(getEnvAsInt("SALES_RANDOM_SEED", 0)),
			DefaultPageSize:  getEnvAsInt("SALES_DEFAULT_PAGE_SIZE", 10),
			MinPageSize:      getEnvAsInt("SALES_MIN_PAGE_SIZE", 1),
			MaxPageSize:      getEnvAsInt("SALES_MAX_PAGE_SIZE", 1000),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.Auth.UserToken == "" {
		cfg.Auth.UserToken = uuid.NewString()
		cfg.Auth.GeneratedTokens = true
	}
	if cfg.Auth.AdminToken == "" {
		cfg.Auth.AdminToken = uuid.NewString()
		cfg.Auth.GeneratedTokens = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Auth.UserToken == "" || c.Auth.AdminToken == "" {
		return fmt.Errorf("user and admin tokens must be configured")
	}
	if c.Auth.UserToken == c.Auth.AdminToken {
		return fmt.Errorf("AUTH_USER_TOKEN and AUTH_ADMIN_TOKEN must differ")
	}
	if c.Auth.UserLogin.Username == "" || c.Auth.AdminLogin.Username == "" {
		return fmt.Errorf("logins must have the form username:password")
	}
	if c.Auth.UserLogin.Username == c.Auth.AdminLogin.Username {
		return fmt.Errorf("user and admin logins must use different usernames")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.Sales.SeedCount < 0 || c.Sales.BurstCount < 0 {
		return fmt.Errorf("sales seed and burst counts must not be negative")
	}
	if c.Sales.SeedMaxQuantity < 1 || c.Sales.BurstMaxQuantity < 1 {
		return fmt.Errorf("sales max quantities must be at least 1")
	}
	if c.Sales.SeedDays < 0 || c.Sales.BurstDays < 0 {
		return fmt.Errorf("sales day windows must not be negative")
	}
	if c.Sales.MinPageSize < 1 || c.Sales.MaxPageSize < c.Sales.MinPageSize {
		return fmt.Errorf("invalid page size bounds [%d, %d]", c.Sales.MinPageSize, c.Sales.MaxPageSize)
	}
	if c.Sales.DefaultPageSize < c.Sales.MinPageSize || c.Sales.DefaultPageSize > c.Sales.MaxPageSize {
		return fmt.Errorf("SALES_DEFAULT_PAGE_SIZE must lie in [%d, %d]", c.Sales.MinPageSize, c.Sales.MaxPageSize)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}

func parseCredentials(s string) Credentials {
	username, password, _ := strings.Cut(s, ":")
	return Credentials{Username: strings.TrimSpace(username), Password: password}
}
