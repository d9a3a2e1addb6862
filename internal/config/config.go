package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL  string
	Storage     string // memory | file | sqlite | postgres
	StoragePath string
	DatabaseURL string
	LogLevel    string
	Env         string

	ExportDir         string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Endpoint        string
	R2BucketName      string

	MockAddr      string
	MockJWTSecret string
	MockTokenTTL  time.Duration
	CORSOrigins   []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BRISA")
	v.AutomaticEnv()

	v.SetDefault("api_url", "http://localhost:5000/api")
	v.SetDefault("storage", "file")
	v.SetDefault("storage_path", defaultStoragePath())
	v.SetDefault("database_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("env", "production")
	v.SetDefault("export_dir", "./exports")
	v.SetDefault("mock_addr", ":5000")
	v.SetDefault("mock_jwt_secret", "brisa-mock-secret")
	v.SetDefault("mock_token_minutes", 60)
	v.SetDefault("cors_origins", "http://localhost:5173,http://localhost:4173")

	storage := strings.ToLower(v.GetString("storage"))
	switch storage {
	case "memory", "file", "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("BRISA_STORAGE must be memory, file, sqlite or postgres, got %q", storage)
	}
	if storage == "postgres" && v.GetString("database_url") == "" {
		return nil, fmt.Errorf("BRISA_DATABASE_URL is required for postgres storage")
	}

	return &Config{
		APIBaseURL:        strings.TrimRight(v.GetString("api_url"), "/"),
		Storage:           storage,
		StoragePath:       v.GetString("storage_path"),
		DatabaseURL:       v.GetString("database_url"),
		LogLevel:          v.GetString("log_level"),
		Env:               v.GetString("env"),
		ExportDir:         v.GetString("export_dir"),
		R2AccessKeyID:     v.GetString("r2_access_key_id"),
		R2SecretAccessKey: v.GetString("r2_secret_access_key"),
		R2Endpoint:        v.GetString("r2_endpoint"),
		R2BucketName:      v.GetString("r2_bucket_name"),
		MockAddr:          v.GetString("mock_addr"),
		MockJWTSecret:     v.GetString("mock_jwt_secret"),
		MockTokenTTL:      time.Duration(v.GetInt("mock_token_minutes")) * time.Minute,
		CORSOrigins:       splitList(v.GetString("cors_origins")),
	}, nil
}

// HasR2 reports whether every R2 credential is set.
func (c *Config) HasR2() bool {
	return c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2Endpoint != "" && c.R2BucketName != ""
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".brisa/session.json"
	}
	return filepath.Join(home, ".brisa", "session.json")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
