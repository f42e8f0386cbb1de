package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	JwtKey        []byte
	SessionSecret []byte
	SQLitePath    string
	DatabaseName  string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; variables may come from the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set; refusing to start without a signing key")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "taskboard"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", databaseName))
	}

	sessionSecret := []byte(os.Getenv("SESSION_SECRET"))
	if len(sessionSecret) == 0 {
		// Sessions won't survive a restart without a configured secret,
		// which is acceptable; the JWT secret is the one that must be set.
		sessionSecret = make([]byte, 32)
		if _, err := rand.Read(sessionSecret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}

	return &Config{
		Port:          port,
		JwtKey:        []byte(jwtSecret),
		SessionSecret: sessionSecret,
		SQLitePath:    sqlitePath,
		DatabaseName:  databaseName,
	}, nil
}
