package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Addr        string
	LogLevel    string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "wattsplit"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		Addr:        getenv("HTTP_ADDR", ":8080"),
		LogLevel:    strings.TrimSpace(getenv("LOG_LEVEL", "info")),
	}
}

// Module wires application and display configuration.
var Module = fx.Module("config",
	fx.Provide(
		Load,
		NewDisplayConfigHolder,
	),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
