package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the service. All values
// come from the environment, with local-development defaults.
type Config struct {
	HTTPAddr string

	DBDriver string // "sqlite" or "mysql"
	DBPath   string // sqlite file
	DBHost   string
	DBPort   string
	DBUser   string
	DBPass   string
	DBName   string

	RedisAddr    string // empty disables redis
	KafkaBrokers string // empty disables kafka
	JWTSecret    string
}

// Load reads .env if present and builds the config from the
// environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		DBDriver:     getenv("DB_DRIVER", "sqlite"),
		DBPath:       getenv("DB_PATH", "canteen.db"),
		DBHost:       getenv("DB_HOST", "127.0.0.1"),
		DBPort:       getenv("DB_PORT", "3306"),
		DBUser:       getenv("DB_USER", "root"),
		DBPass:       os.Getenv("DB_PASS"),
		DBName:       getenv("DB_NAME", "canteen"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		JWTSecret:    getenv("JWT_SECRET", "secret"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
