package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr           string        `mapstructure:"addr"`
	DatabaseURL    string        `mapstructure:"database_url"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	ExternalAPIKey string        `mapstructure:"external_api_key"`
	LoginRate      float64       `mapstructure:"login_rate"`
	LoginBurst     int           `mapstructure:"login_burst"`
}

// Load reads config.yaml when present, with WAREHOUSE_* environment
// variables taking precedence. A .env file is loaded first if one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("warehouse")
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env values through Unmarshal for
	// keys without a default or config-file entry, so bind every key.
	for _, key := range []string{
		"addr", "database_url", "redis_addr", "jwt_secret",
		"access_token_ttl", "external_api_key", "login_rate", "login_burst",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	v.SetDefault("addr", ":8080")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("access_token_ttl", 30*time.Minute)
	v.SetDefault("login_rate", 1.0)
	v.SetDefault("login_burst", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database_url is required (WAREHOUSE_DATABASE_URL)")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt_secret is required (WAREHOUSE_JWT_SECRET)")
	}

	return cfg, nil
}
