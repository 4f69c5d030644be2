package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	StoreDriver string // memory, sqlite, postgres
	StorePath   string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	ServerPort  string
	LogFormat   string // console, json

	// Simulated network pause before a wizard submission completes
	SignupDelay      time.Duration
	ReservationDelay time.Duration
	// Idle time after which an unfinished wizard is dropped
	WizardTTL time.Duration
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		StoreDriver:      getEnv("STORE_DRIVER", "sqlite"),
		StorePath:        getEnv("STORE_PATH", "coursehub.db"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "coursehub"),
		JWTSecret:        getEnv("JWT_SECRET", "secret"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		SignupDelay:      getEnvDuration("SIGNUP_DELAY", time.Second),
		ReservationDelay: getEnvDuration("RESERVATION_DELAY", 1500*time.Millisecond),
		WizardTTL:        getEnvDuration("WIZARD_TTL", 30*time.Minute),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration in %s: %v, using %s", key, err, defaultValue)
		return defaultValue
	}
	return d
}
