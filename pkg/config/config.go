package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "cellar"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Portal       PortalConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("CELLAR_DB_DSN is required")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CELLAR_APP_ENV" required:"true"`
	Port         string `envconfig:"CELLAR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CELLAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CELLAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CELLAR_DB_DSN"`

	MaxOpenConns    int           `envconfig:"CELLAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CELLAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CELLAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CELLAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	Address      string        `envconfig:"CELLAR_REDIS_ADDR" required:"true"`
	Password     string        `envconfig:"CELLAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"CELLAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CELLAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CELLAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CELLAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CELLAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CELLAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CELLAR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CELLAR_JWT_ISSUER" default:"cellar-backend"`
	ExpirationMinutes int    `envconfig:"CELLAR_JWT_EXPIRATION_MINUTES" default:"480"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CELLAR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CELLAR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CELLAR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CELLAR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CELLAR_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CELLAR_FEATURE_AUTO_MIGRATE" default:"false"`
}

type PortalConfig struct {
	// DefaultLanguage seeds the language cookie when the client never picked one.
	DefaultLanguage string   `envconfig:"CELLAR_PORTAL_DEFAULT_LANGUAGE" default:"en"`
	Languages       []string `envconfig:"CELLAR_PORTAL_LANGUAGES" default:"en,fr,zh"`
}

// SupportsLanguage reports whether the code is one of the configured UI languages.
func (p PortalConfig) SupportsLanguage(code string) bool {
	for _, lang := range p.Languages {
		if strings.EqualFold(lang, code) {
			return true
		}
	}
	return false
}
