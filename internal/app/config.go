package app

import (
	"flag"
	"net/url"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	RunAddress        string
	DatabaseURI       string
	LogLevel          string
	MigrationsPath    string
	AdminUsername     string
	AdminPasswordHash string
	SessionSecret     string
	SessionTTL        time.Duration
	Debug             bool
}

func NewConfigFromFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "Server address (env: RUN_ADDRESS)")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "Database URI (env: DATABASE_URI)")
	flag.StringVar(&cfg.LogLevel, "l", "info", "Log level (debug|info|warn|error) (env: LOG_LEVEL)")
	flag.StringVar(&cfg.MigrationsPath, "migrations", "./migrations", "Path to migrations folder (env: MIGRATIONS_PATH)")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", 30*time.Minute, "Admin session idle timeout (env: SESSION_TTL)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Verbose request logging (env: DEBUG)")
	flag.Parse()

	cfg.applyEnvVars()
	cfg.validate()

	return cfg
}

func (c *Config) applyEnvVars() {
	if envAddr := os.Getenv("RUN_ADDRESS"); envAddr != "" {
		c.RunAddress = envAddr
	}
	if envDB := os.Getenv("DATABASE_URI"); envDB != "" {
		c.DatabaseURI = envDB
	}
	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		c.LogLevel = envLogLevel
	}
	if envMigrations := os.Getenv("MIGRATIONS_PATH"); envMigrations != "" {
		c.MigrationsPath = envMigrations
	}
	if envTTL := os.Getenv("SESSION_TTL"); envTTL != "" {
		if ttl, err := time.ParseDuration(envTTL); err == nil {
			c.SessionTTL = ttl
		}
	}
	if envDebug := os.Getenv("DEBUG"); envDebug == "1" || envDebug == "true" {
		c.Debug = true
	}

	c.AdminUsername = os.Getenv("ADMIN_USERNAME")
	c.SessionSecret = os.Getenv("SESSION_SECRET")
	c.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	// A plaintext ADMIN_PASSWORD is hashed once here so every later
	// comparison is against bcrypt, never string equality.
	if c.AdminPasswordHash == "" {
		if plain := os.Getenv("ADMIN_PASSWORD"); plain != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
			if err == nil {
				c.AdminPasswordHash = string(hash)
			}
		}
	}
}

func (c *Config) validate() {
	if c.DatabaseURI == "" {
		panic("Database URI is required (use -d flag or DATABASE_URI env)")
	}
	if c.AdminUsername == "" {
		panic("ADMIN_USERNAME env is required")
	}
	if c.AdminPasswordHash == "" {
		panic("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD env is required")
	}
	if c.SessionSecret == "" {
		panic("SESSION_SECRET env is required")
	}
}

func (c *Config) MaskDBPassword() string {
	u, err := url.Parse(c.DatabaseURI)
	if err != nil {
		return c.DatabaseURI
	}

	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}
