package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	SQLite   SQLiteConfig
	Mongo    MongoConfig
	Mail     MailConfig
	Cache    CacheConfig
	Log      LogConfig
	Catalog  CatalogConfig
}

type ServerConfig struct {
	Port          int
	SessionSecret string
}

type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SQLiteConfig struct {
	Path string
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type MailConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	SenderName    string
	SenderAddress string
	Recipient     string
}

// Enabled reports whether an SMTP server is configured.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type CacheConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	TTL      time.Duration
}

func (c CacheConfig) Enabled() bool {
	return c.Addr != ""
}

type LogConfig struct {
	Level  string
	Format string
}

type CatalogConfig struct {
	SeedFile string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	mongoTimeout, err := time.ParseDuration(v.GetString("MONGO_CONNECT_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing MONGO_CONNECT_TIMEOUT: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing CACHE_TTL: %w", err)
	}

	mailUser := v.GetString("MAIL_USERNAME")

	cfg := &Config{
		Server: ServerConfig{
			Port:          v.GetInt("SERVER_PORT"),
			SessionSecret: v.GetString("SESSION_SECRET"),
		},
		Store: StoreConfig{
			Driver: v.GetString("STORE_DRIVER"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("MONGO_URI"),
			Database:       v.GetString("MONGO_DATABASE"),
			ConnectTimeout: mongoTimeout,
		},
		Mail: MailConfig{
			Host:          v.GetString("MAIL_HOST"),
			Port:          v.GetInt("MAIL_PORT"),
			Username:      mailUser,
			Password:      v.GetString("MAIL_PASSWORD"),
			SenderName:    v.GetString("MAIL_SENDER_NAME"),
			SenderAddress: firstNonEmpty(v.GetString("MAIL_SENDER"), mailUser),
			Recipient:     firstNonEmpty(v.GetString("MAIL_RECIPIENT"), mailUser),
		},
		Cache: CacheConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Username: v.GetString("REDIS_USERNAME"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      cacheTTL,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Catalog: CatalogConfig{
			SeedFile: v.GetString("CATALOG_SEED_FILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("STORE_DRIVER", DriverSQLite)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "pollos")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "pollos_el_rey")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("SQLITE_PATH", "pollos.db")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "pollos_el_rey")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("MAIL_HOST", "")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_USERNAME", "")
	v.SetDefault("MAIL_PASSWORD", "")
	v.SetDefault("MAIL_SENDER_NAME", "Pollos El Rey")
	v.SetDefault("MAIL_SENDER", "")
	v.SetDefault("MAIL_RECIPIENT", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_USERNAME", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CATALOG_SEED_FILE", "")
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMySQL, DriverSQLite:
	case DriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER is mongo")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Server.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}

	if c.Mail.Enabled() && c.Mail.Recipient == "" {
		return errors.New("MAIL_RECIPIENT or MAIL_USERNAME is required when MAIL_HOST is set")
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
