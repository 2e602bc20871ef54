package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/monocle-dev/planboard/db"
	"github.com/monocle-dev/planboard/internal/types"
	"github.com/spf13/viper"
)

const EnvPrefix = "PLANBOARD"

const (
	KeyPort           = "port"
	KeyDBDriver       = "db_driver"
	KeyDatabaseURL    = "database_url"
	KeyJWTSecret      = "jwt_secret"
	KeyTokenTTL       = "token_ttl"
	KeyAllowedOrigins = "allowed_origins"
	KeyCookieDomain   = "cookie_domain"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
)

type Config struct {
	Port           string
	DBDriver       string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	CookieDomain   string
	LogLevel       string
	LogFormat      string
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, "3000")
	v.SetDefault(KeyDBDriver, db.DriverPostgres)
	v.SetDefault(KeyTokenTTL, 7*24*time.Hour)
	v.SetDefault(KeyAllowedOrigins, types.DefaultAllowedOrigins)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for existing deployments.
	_ = v.BindEnv(KeyPort, EnvPrefix+"_PORT", "PORT")
	_ = v.BindEnv(KeyDatabaseURL, EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv(KeyJWTSecret, EnvPrefix+"_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv(KeyCookieDomain, EnvPrefix+"_COOKIE_DOMAIN", "DOMAIN")
}

// LoadDotEnv reads .env files into the process environment. Missing files
// are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}

	return nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:           strings.TrimSpace(v.GetString(KeyPort)),
		DBDriver:       strings.ToLower(strings.TrimSpace(v.GetString(KeyDBDriver))),
		DatabaseURL:    v.GetString(KeyDatabaseURL),
		JWTSecret:      v.GetString(KeyJWTSecret),
		TokenTTL:       v.GetDuration(KeyTokenTTL),
		AllowedOrigins: splitList(v.GetStringSlice(KeyAllowedOrigins)),
		CookieDomain:   v.GetString(KeyCookieDomain),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	}
	if c.DBDriver != db.DriverPostgres && c.DBDriver != db.DriverSQLite {
		errs = append(errs, fmt.Errorf("db_driver must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, c.DBDriver))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("database_url is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token_ttl must be positive, got %s", c.TokenTTL))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// splitList accepts both list values and comma separated strings from the
// environment.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
