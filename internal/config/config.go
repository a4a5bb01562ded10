package config

import (
	"fmt"
	"os"

	"github.com/yukikurage/request-board/internal/constants"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv        string `yaml:"app_env"`
	LogLevel      string `yaml:"log_level"`
	HTTPAddr      string `yaml:"http_addr"`
	DBDriver      string `yaml:"db_driver"`
	DBHost        string `yaml:"db_host"`
	DBPort        string `yaml:"db_port"`
	DBUser        string `yaml:"db_user"`
	DBPassword    string `yaml:"db_password"`
	DBName        string `yaml:"db_name"`
	SQLitePath    string `yaml:"sqlite_path"`
	SessionStore  string `yaml:"session_store"`
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	SessionSecret string `yaml:"session_secret"`
	GinMode       string `yaml:"gin_mode"`
	OpenAIAPIKey  string `yaml:"openai_api_key"`
	AdminSecret   string `yaml:"admin_secret"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		AppEnv:        "local",
		LogLevel:      "",
		HTTPAddr:      ":8080",
		DBDriver:      "sqlite",
		DBHost:        "localhost",
		DBPort:        "3306",
		DBUser:        "boarduser",
		DBPassword:    "boardpassword",
		DBName:        "request_board",
		SQLitePath:    "request_board.db",
		SessionStore:  "cookie",
		RedisHost:     "localhost",
		RedisPort:     "6379",
		SessionSecret: "default-secret-key-change-me",
		GinMode:       "debug",
		OpenAIAPIKey:  "",
		AdminSecret:   constants.DefaultAdminSecret,
	}
}

// Load reads configuration from the environment over the defaults.
func Load() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML file over the defaults, then applies environment
// overrides. An empty path behaves like Load.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql", "postgres", "memory":
	default:
		return fmt.Errorf("db_driver must be one of sqlite, mysql, postgres, memory (got %q)", c.DBDriver)
	}
	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("session_store must be cookie or redis (got %q)", c.SessionStore)
	}
	if c.AdminSecret == "" {
		return fmt.Errorf("admin_secret is required")
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.SessionStore = getEnv("SESSION_STORE", c.SessionStore)
	c.RedisHost = getEnv("REDIS_HOST", c.RedisHost)
	c.RedisPort = getEnv("REDIS_PORT", c.RedisPort)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.AdminSecret = getEnv("ADMIN_SECRET", c.AdminSecret)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
