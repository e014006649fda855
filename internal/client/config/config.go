// Package config loads runtime settings for the coinkeeper CLI.
//
// Sources, in order of precedence (later wins):
//  1. Built-in defaults.
//  2. A .env file in the working directory, if present.
//  3. Process environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/coinkeeper/internal/filex"
)

const (
	defaultDatabaseFile       = "coinkeeper.db"
	dataDirName               = "data"
	defaultS3Region           = "us-east-1"
	defaultS3Bucket           = "coinkeeper"
	defaultRequestTimeout     = 10 * time.Second
	defaultNumistaMaxRequests = 100
)

// Config holds runtime settings for the coinkeeper CLI.
type Config struct {
	// DatabasePath is the SQLite database file; empty means in-memory.
	DatabasePath string

	// Object storage holding the per-user collection documents.
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration

	// Numista catalog import.
	NumistaAPIKey      string
	NumistaMaxRequests int
}

// LoadDefaults populates c with sensible defaults. The database lives in
// a data subdirectory of the user's coinkeeper config directory.
func (c *Config) LoadDefaults() {
	c.DatabasePath = defaultDatabaseFile
	if dir, err := filex.EnsureAppDir(); err == nil {
		if dataDir, err := filex.EnsureSubDir(dir, dataDirName); err == nil {
			c.DatabasePath = filepath.Join(dataDir, defaultDatabaseFile)
		}
	}
	c.S3Region = defaultS3Region
	c.S3Bucket = defaultS3Bucket
	c.RequestTimeout = defaultRequestTimeout
	c.NumistaMaxRequests = defaultNumistaMaxRequests
}

// LoadConfig constructs a Config from defaults, .env and the environment.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	overlayEnv(cfg)
	return cfg
}

func overlayEnv(cfg *Config) {
	setStr(&cfg.DatabasePath, "COINKEEPER_DB_PATH")
	setStr(&cfg.S3Endpoint, "COINKEEPER_S3_ENDPOINT")
	setStr(&cfg.S3Region, "COINKEEPER_S3_REGION")
	setStr(&cfg.S3Bucket, "COINKEEPER_S3_BUCKET")
	setStr(&cfg.S3AccessKey, "COINKEEPER_S3_ACCESS_KEY")
	setStr(&cfg.S3SecretKey, "COINKEEPER_S3_SECRET_KEY")
	setStr(&cfg.NumistaAPIKey, "NUMISTA_API_KEY")

	if v := os.Getenv("COINKEEPER_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("NUMISTA_MAX_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.NumistaMaxRequests = n
		}
	}
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
