package postgres_test

import (
	"os"
	"testing"

	"goldsite/config"
	"goldsite/pkg/storage/postgres"
)

// go test -v --run TestCreateDatabase
func TestCreateDatabase(t *testing.T) {
	if os.Getenv("POSTGRES_TEST_DSN") == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	cfg := config.PostgresConfig{
		Host:     envOr("POSTGRES_TEST_HOST", "localhost"),
		Port:     5432,
		User:     envOr("POSTGRES_TEST_USER", "postgres"),
		Password: os.Getenv("POSTGRES_TEST_PASSWORD"),
		DBName:   "goldsite_create_test",
		SSLMode:  "disable",
	}

	if err := postgres.CreateDatabase(cfg); err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	// second call finds it
	if err := postgres.CreateDatabase(cfg); err != nil {
		t.Fatalf("second create failed: %v", err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
