// Package config はアプリケーション設定を環境変数から読み込みます。
//
// EMPLOYEE_ で始まる環境変数を読み、プレフィックス直後の最初の "_" をセクション区切りとして扱います。
// 例: EMPLOYEE_DATABASE_HOST -> database.host, EMPLOYEE_SERVER_READ_TIMEOUT -> server.read_timeout
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "EMPLOYEE_"

// Config is the root configuration object for the application.
type Config struct {
	Env      string         `koanf:"env" validate:"required,oneof=local development production test"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Cache    CacheConfig    `koanf:"cache"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	Port            string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
// InstanceName が設定されている場合は Cloud SQL の Unix ソケット経由で接続します。
type DatabaseConfig struct {
	Host           string        `koanf:"host" validate:"required_without=InstanceName"`
	Port           string        `koanf:"port" validate:"required_without=InstanceName"`
	User           string        `koanf:"user" validate:"required"`
	Password       string        `koanf:"password"`
	Name           string        `koanf:"name" validate:"required"`
	SSLMode        string        `koanf:"ssl_mode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	InstanceName   string        `koanf:"instance_name"`
	MaxConns       int32         `koanf:"max_conns" validate:"gte=1"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"gt=0"`
	AutoMigrate    bool          `koanf:"auto_migrate"`
}

// RedisConfig contains Redis connection details. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string `koanf:"addr" validate:"omitempty,hostname_port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

// CacheConfig controls the employee read cache.
type CacheConfig struct {
	TTL       time.Duration `koanf:"ttl" validate:"gte=0"`
	Namespace string        `koanf:"namespace"`
}

// LogConfig controls the root logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// Default returns the configuration used when no variable overrides a value.
func Default() Config {
	return Config{
		Env: "local",
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "postgres",
			Name:           "employees",
			SSLMode:        "disable",
			MaxConns:       10,
			ConnectTimeout: 60 * time.Second,
		},
		Cache: CacheConfig{
			TTL:       5 * time.Minute,
			Namespace: "employees",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads an optional .env file (or the given files), then EMPLOYEE_* variables,
// on top of Default, and validates the result.
func Load(dotenvFiles ...string) (Config, error) {
	// 引数なしの場合のみ .env の欠如を許容する
	if err := godotenv.Load(dotenvFiles...); err != nil {
		if len(dotenvFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// envKey maps EMPLOYEE_DATABASE_SSL_MODE to database.ssl_mode.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
