package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port               int      `mapstructure:"port"`
	Env                string   `mapstructure:"env"`
	CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
	CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// ConnString prefers an explicit URL over the individual fields.
func (d DatabaseConfig) ConnString() string {
	if d.URL != "" {
		return d.URL
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", d.User, d.Password, d.Host, d.Port, d.Name)
	if d.SSLMode != "" {
		dsn += "?sslmode=" + d.SSLMode
	}
	return dsn
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
	Issuer          string `mapstructure:"issuer"`
}

// StorageConfig points at an S3 compatible bucket used to archive reports.
type StorageConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// Load reads configs/config.yaml when present, then .env, then the environment.
func Load() (*Config, error) {
	return LoadFile("configs/config.yaml")
}

func LoadFile(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults so the binary works without a config file
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "ledger_db")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "ledger-backend")
	v.SetDefault("storage.region", "auto")

	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.env", "APP_ENV")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("storage.enabled", "S3_ENABLED")
	_ = v.BindEnv("storage.endpoint", "S3_ENDPOINT")
	_ = v.BindEnv("storage.region", "S3_REGION")
	_ = v.BindEnv("storage.bucket", "S3_BUCKET")
	_ = v.BindEnv("storage.access_key", "S3_ACCESS_KEY")
	_ = v.BindEnv("storage.secret_key", "S3_SECRET_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	applyDatabaseEnv(&cfg.Database)
	return &cfg, nil
}

// applyDatabaseEnv lets DB_* variables win over the file.
func applyDatabaseEnv(d *DatabaseConfig) {
	if host := os.Getenv("DB_HOST"); host != "" {
		d.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			d.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		d.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		d.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		d.Name = name
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Server.Port)
	}
	if c.Database.URL == "" && c.Database.Host == "" {
		return errors.New("database host or DATABASE_URL is required")
	}
	if c.JWT.Secret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
	}
	if c.JWT.ExpirationHours <= 0 {
		return fmt.Errorf("invalid jwt expiration %d: must be positive", c.JWT.ExpirationHours)
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return errors.New("storage is enabled but S3_BUCKET is empty")
	}
	return nil
}
