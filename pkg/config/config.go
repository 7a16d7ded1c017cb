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
	Payment      PaymentConfig
	Checkout     CheckoutConfig
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
	if err := cfg.Payment.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ESTRIE_APP_ENV" required:"true"`
	Port         string `envconfig:"ESTRIE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ESTRIE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ESTRIE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ESTRIE_DB_DSN"`
	Driver string `envconfig:"ESTRIE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ESTRIE_DB_HOST"`
	LegacyPort     int    `envconfig:"ESTRIE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ESTRIE_DB_USER"`
	LegacyPassword string `envconfig:"ESTRIE_DB_PASSWORD"`
	LegacyName     string `envconfig:"ESTRIE_DB_NAME"`
	LegacySSLMode  string `envconfig:"ESTRIE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESTRIE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ESTRIE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ESTRIE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESTRIE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ESTRIE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ESTRIE_REDIS_ADDR"`
	Password     string        `envconfig:"ESTRIE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ESTRIE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ESTRIE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ESTRIE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ESTRIE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ESTRIE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ESTRIE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"ESTRIE_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"ESTRIE_JWT_ISSUER" required:"true"`
}

// PaymentConfig points at the external order/payment-session creation service.
type PaymentConfig struct {
	BaseURL   string        `envconfig:"ESTRIE_PAYMENT_BASE_URL" required:"true"`
	ClientURL string        `envconfig:"ESTRIE_PAYMENT_CLIENT_URL" required:"true"`
	Timeout   time.Duration `envconfig:"ESTRIE_PAYMENT_TIMEOUT" default:"30s"`
}

// CheckoutConfig carries TTLs for the recoverable snapshots written before the
// external payment redirect.
type CheckoutConfig struct {
	SessionTTL     time.Duration `envconfig:"ESTRIE_CHECKOUT_SESSION_TTL" default:"2h"`
	IdempotencyTTL time.Duration `envconfig:"ESTRIE_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ESTRIE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ESTRIE_AUTO_MIGRATE" default:"false"`
}

func (p *PaymentConfig) validate() error {
	parsed, err := url.Parse(p.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("payment base url %q is not an absolute url", p.BaseURL)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("payment timeout must be positive")
	}
	return nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
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
