package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Cart     CartConfig
	Checkout CheckoutConfig
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
	Env          string `envconfig:"PAWMART_APP_ENV" required:"true"`
	Port         string `envconfig:"PAWMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PAWMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PAWMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PAWMART_DB_DSN"`
	Driver string `envconfig:"PAWMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PAWMART_DB_HOST"`
	LegacyPort     int    `envconfig:"PAWMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PAWMART_DB_USER"`
	LegacyPassword string `envconfig:"PAWMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"PAWMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"PAWMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PAWMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PAWMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PAWMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PAWMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"PAWMART_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PAWMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PAWMART_REDIS_ADDR"`
	Password     string        `envconfig:"PAWMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"PAWMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PAWMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PAWMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PAWMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PAWMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PAWMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PAWMART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PAWMART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PAWMART_JWT_EXPIRATION_MINUTES" required:"true"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PAWMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PAWMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PAWMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PAWMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PAWMART_ARGON_KEY_LEN" default:"32"`
}

type CartConfig struct {
	SnapshotTTL time.Duration `envconfig:"PAWMART_CART_SNAPSHOT_TTL" default:"720h"`
}

type CheckoutConfig struct {
	SessionTTL     time.Duration `envconfig:"PAWMART_CHECKOUT_SESSION_TTL" default:"30m"`
	PaymentLatency time.Duration `envconfig:"PAWMART_CHECKOUT_PAYMENT_LATENCY" default:"500ms"`
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
