package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	UploadDir     string        `yaml:"upload_dir"`
	AdminUsername string        `yaml:"admin_username"`
}

// LoadConfig builds the config from env defaults, then overlays the YAML file
// when a path is given. The JWT secret has no built-in fallback: it must come
// from CAREERS_JWT_SECRET or the config file, otherwise loading fails.
func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 12 * time.Hour

	cfg := &Config{
		Addr:          getEnv("CAREERS_ADDR", ":8080"),
		JWTSecret:     os.Getenv("CAREERS_JWT_SECRET"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("CAREERS_DATABASE_PATH", "careers.db"),
		TokenDuration: tokenDuration,
		UploadDir:     getEnv("CAREERS_UPLOAD_DIR", "uploads"),
		AdminUsername: getEnv("CAREERS_ADMIN_USERNAME", "admin"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is not set (CAREERS_JWT_SECRET or jwt_secret in config)")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
