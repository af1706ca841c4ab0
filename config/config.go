package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting the server needs.
type Config struct {
	AppPort string

	MongoURI string
	DBName   string

	EmailProvider string
	SenderName    string
	SenderEmail   string

	FirebaseProjectID   string
	FirebaseClientEmail string
	FirebasePrivateKey  string

	WatchInterval time.Duration

	SelfPingURL string
}

// LoadEnv loads environment variables from .env.<APP_ENV>, falling back to
// .env. Missing files are fine in production where the host injects the
// environment directly.
func LoadEnv() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	envFile := fmt.Sprintf(".env.%s", env)

	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("No %s or .env file found, using process environment", envFile)
		}
	}
}

// LoadConfig reads and validates the configuration from the environment.
func LoadConfig() Config {
	LoadEnv()

	config := Config{
		AppPort:             os.Getenv("APP_PORT"),
		MongoURI:            os.Getenv("MONGODB_URI"),
		DBName:              os.Getenv("DB_NAME"),
		EmailProvider:       os.Getenv("EMAIL_PROVIDER"),
		SenderName:          os.Getenv("SENDER_NAME"),
		SenderEmail:         os.Getenv("SENDER_EMAIL"),
		FirebaseProjectID:   os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseClientEmail: os.Getenv("FIREBASE_CLIENT_EMAIL"),
		FirebasePrivateKey:  os.Getenv("FIREBASE_PRIVATE_KEY"),
		SelfPingURL:         os.Getenv("SELF_PING_URL"),
	}

	if config.AppPort == "" {
		config.AppPort = "5000"
	}
	if config.MongoURI == "" {
		log.Fatal("Config error: MONGODB_URI must not be empty")
	}
	if config.DBName == "" {
		log.Fatal("Config error: DB_NAME must not be empty")
	}

	config.WatchInterval = 30 * time.Second
	if v := os.Getenv("ORDER_WATCH_INTERVAL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			log.Fatalf("Config error: invalid ORDER_WATCH_INTERVAL_SECONDS %q", v)
		}
		config.WatchInterval = time.Duration(secs) * time.Second
	}

	return config
}
