// Package config loads all runtime configuration from FRAMECRAFT_-prefixed
// environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Webhook      WebhookConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FRAMECRAFT_APP_ENV" required:"true"`
	Port         string `envconfig:"FRAMECRAFT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FRAMECRAFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FRAMECRAFT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FRAMECRAFT_DB_DSN"`
	Driver string `envconfig:"FRAMECRAFT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FRAMECRAFT_DB_HOST"`
	LegacyPort     int    `envconfig:"FRAMECRAFT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FRAMECRAFT_DB_USER"`
	LegacyPassword string `envconfig:"FRAMECRAFT_DB_PASSWORD"`
	LegacyName     string `envconfig:"FRAMECRAFT_DB_NAME"`
	LegacySSLMode  string `envconfig:"FRAMECRAFT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FRAMECRAFT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FRAMECRAFT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FRAMECRAFT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FRAMECRAFT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	WriteTimeout    time.Duration `envconfig:"FRAMECRAFT_DB_WRITE_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FRAMECRAFT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FRAMECRAFT_REDIS_ADDR"`
	Password     string        `envconfig:"FRAMECRAFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"FRAMECRAFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FRAMECRAFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FRAMECRAFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FRAMECRAFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FRAMECRAFT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FRAMECRAFT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FRAMECRAFT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FRAMECRAFT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FRAMECRAFT_JWT_EXPIRATION_MINUTES" required:"true"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type WebhookConfig struct {
	KeyBytes           int           `envconfig:"FRAMECRAFT_WEBHOOK_KEY_BYTES" default:"24"`
	SerialFallback     bool          `envconfig:"FRAMECRAFT_WEBHOOK_SERIAL_FALLBACK" default:"true"`
	RateLimitPerWindow int64         `envconfig:"FRAMECRAFT_WEBHOOK_RATE_LIMIT" default:"120"`
	RateLimitWindow    time.Duration `envconfig:"FRAMECRAFT_WEBHOOK_RATE_WINDOW" default:"1m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FRAMECRAFT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FRAMECRAFT_AUTO_MIGRATE" default:"false"`
}

// ensureDSN assembles a postgres URL from the discrete legacy variables when
// no full DSN was provided.
func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	var missing []string
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}
	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}
	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
