package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries everything the server needs at startup. Values come from
// the environment (optionally a .env file), with defaults good enough for
// local development.
type Config struct {
	Addr         string
	Database     string
	SecretKey    string
	Env          string
	UsersPerPage int
	PostsPerPage int
}

var cfg Config

func loadConfig() Config {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	return Config{
		Addr:         envString("SAMPLEAPP_ADDR", ":5000"),
		Database:     envString("SAMPLEAPP_DATABASE", "/tmp/sampleapp.db"),
		SecretKey:    envString("SAMPLEAPP_SECRET_KEY", "development-secret"),
		Env:          envString("SAMPLEAPP_ENV", "development"),
		UsersPerPage: envInt("SAMPLEAPP_USERS_PER_PAGE", 30),
		PostsPerPage: envInt("SAMPLEAPP_POSTS_PER_PAGE", 30),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func newLogger(env string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	if env == "development" {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetLevel(logrus.InfoLevel)
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}
