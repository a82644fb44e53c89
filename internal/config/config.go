package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultPort             = 8080
	defaultDatabasePath     = "portfolio.db"
	defaultSMTPHost         = "smtp.gmail.com"
	defaultSMTPPort         = 587
	defaultAdminUsername    = "admin"
	defaultAdminPassword    = "admin123"
	defaultVisitorRetention = 365 * 24 * time.Hour
	minimumVisitorRetention = 24 * time.Hour
	maximumVisitorRetention = 5 * 365 * 24 * time.Hour
)

// Config holds the server's startup settings.
type Config struct {
	Port         int    `toml:"port"`
	Mode         string `toml:"mode"`
	DatabasePath string `toml:"database_path"`
	ContentPath  string `toml:"content_path"`
	LogLevel     string `toml:"log_level"`

	SMTP  SMTP  `toml:"smtp"`
	Admin Admin `toml:"admin"`

	VisitorRetention Duration `toml:"visitor_retention"`
}

// SMTP configures contact form delivery. An empty User disables mail.
type SMTP struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	To       string `toml:"to"`
}

type Admin struct {
	Username string `toml:"username"`
	Password string `toml:"password"`

	// UsingDefaults is set when either credential fell back to the built-in
	// development value.
	UsingDefaults bool `toml:"-"`
}

// Duration lets TOML carry values like "720h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// MailEnabled reports whether SMTP credentials are present.
func (c Config) MailEnabled() bool {
	return c.SMTP.User != "" && c.SMTP.Password != ""
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads the optional TOML file named by PORTFOLIO_CONFIG and then applies
// environment overrides.
func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("PORTFOLIO_CONFIG")); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Port:         defaultPort,
		DatabasePath: defaultDatabasePath,
		LogLevel:     "info",
		SMTP: SMTP{
			Host: defaultSMTPHost,
			Port: defaultSMTPPort,
		},
		VisitorRetention: Duration{defaultVisitorRetention},
	}
}

func applyEnv(cfg *Config) error {
	var err error
	if cfg.Port, err = readInt("PORT", cfg.Port, 1, 65535); err != nil {
		return err
	}
	cfg.Mode = readString("GIN_MODE", cfg.Mode)
	cfg.DatabasePath = readString("DATABASE_PATH", cfg.DatabasePath)
	cfg.ContentPath = readString("CONTENT_PATH", cfg.ContentPath)
	cfg.LogLevel = readString("LOG_LEVEL", cfg.LogLevel)

	cfg.SMTP.Host = readString("SMTP_HOST", cfg.SMTP.Host)
	if cfg.SMTP.Port, err = readInt("SMTP_PORT", cfg.SMTP.Port, 1, 65535); err != nil {
		return err
	}
	cfg.SMTP.User = readString("SMTP_USER", cfg.SMTP.User)
	cfg.SMTP.Password = readString("SMTP_PASS", cfg.SMTP.Password)
	cfg.SMTP.To = readString("TO_EMAIL", cfg.SMTP.To)

	cfg.Admin.Username = readString("ADMIN_USERNAME", cfg.Admin.Username)
	cfg.Admin.Password = readString("ADMIN_PASSWORD", cfg.Admin.Password)
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = defaultAdminUsername
		cfg.Admin.UsingDefaults = true
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = defaultAdminPassword
		cfg.Admin.UsingDefaults = true
	}

	retention, err := readDuration("VISITOR_RETENTION", cfg.VisitorRetention.Duration)
	if err != nil {
		return err
	}
	cfg.VisitorRetention = Duration{retention}
	return nil
}

func (c Config) validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		errs = append(errs, errors.New("database path must not be empty"))
	}
	if r := c.VisitorRetention.Duration; r < minimumVisitorRetention || r > maximumVisitorRetention {
		errs = append(errs, fmt.Errorf("visitor retention must be between %s and %s, got %s",
			minimumVisitorRetention, maximumVisitorRetention, r))
	}
	if c.MailEnabled() && c.SMTP.To == "" {
		errs = append(errs, errors.New("TO_EMAIL is required when SMTP credentials are set"))
	}
	return errors.Join(errs...)
}

func readString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return parsed, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return parsed, nil
}
