package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Cron          CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.DB.ensureDSN()
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"REVIEWHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"REVIEWHUB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"REVIEWHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"REVIEWHUB_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"REVIEWHUB_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "development")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	DSN string `envconfig:"REVIEWHUB_DB_DSN"`

	MaxOpenConns     int           `envconfig:"REVIEWHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns     int           `envconfig:"REVIEWHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime  time.Duration `envconfig:"REVIEWHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime  time.Duration `envconfig:"REVIEWHUB_DB_IDLE_TIMEOUT" default:"10m"`
	ConnectTimeout   time.Duration `envconfig:"REVIEWHUB_DB_CONNECT_TIMEOUT" default:"10s"`
	StatementTimeout time.Duration `envconfig:"REVIEWHUB_DB_STATEMENT_TIMEOUT" default:"30s"`

	RetryAttempts int           `envconfig:"REVIEWHUB_DB_RETRY_ATTEMPTS" default:"3"`
	RetryBackoff  time.Duration `envconfig:"REVIEWHUB_DB_RETRY_BACKOFF" default:"1s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"REVIEWHUB_REDIS_URL"`
	Address      string        `envconfig:"REVIEWHUB_REDIS_ADDR"`
	Password     string        `envconfig:"REVIEWHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"REVIEWHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REVIEWHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REVIEWHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REVIEWHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REVIEWHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REVIEWHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis target was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"REVIEWHUB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"REVIEWHUB_JWT_ISSUER" default:"reviewhub"`
	ExpirationMinutes int    `envconfig:"REVIEWHUB_JWT_EXPIRATION_MINUTES" default:"480"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"REVIEWHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"REVIEWHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"REVIEWHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"REVIEWHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"REVIEWHUB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"REVIEWHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"REVIEWHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"REVIEWHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"REVIEWHUB_AUTO_MIGRATE" default:"false"`
}

type CronConfig struct {
	Interval               time.Duration `envconfig:"REVIEWHUB_CRON_INTERVAL" default:"1h"`
	NotificationRetention  int           `envconfig:"REVIEWHUB_CRON_NOTIFICATION_RETENTION_DAYS" default:"30"`
	StaleQueueClaimTimeout time.Duration `envconfig:"REVIEWHUB_CRON_STALE_QUEUE_TIMEOUT" default:"24h"`
}

// ensureDSN resolves the connection string: explicit setting, then DATABASE_URL,
// then the embedded local default.
func (db *DBConfig) ensureDSN() {
	if strings.TrimSpace(db.DSN) != "" {
		return
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatabaseURL)); v != "" {
		db.DSN = v
		return
	}
	db.DSN = DefaultDSN
}
