package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendJSONFile = "jsonfile"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	DataFile    string
	DatabaseURL string
	AdminPath   string
	SiteTitle   string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "local"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DataFile:    getEnv("DATA_FILE", "data/resources.json"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		AdminPath:   strings.Trim(getEnv("ADMIN_PATH", "700370"), "/"),
		SiteTitle:   getEnv("SITE_TITLE", "资源导航"),
	}
}

// Backend reports which collection repository the config selects.
// A database URL wins over the JSON file.
func (c *Config) Backend() string {
	if c.DatabaseURL != "" {
		return BackendSQLite
	}
	return BackendJSONFile
}

// IsLocal reports whether the app runs in a developer environment.
func (c *Config) IsLocal() bool {
	return c.AppEnv == "local" || c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
