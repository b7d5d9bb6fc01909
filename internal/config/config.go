package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	minJWTSecretLength = 32
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Security     SecurityConfig
	Upload       UploadConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	BodyLimitBytes        int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr keeps rate limit
// counters in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	CookieTTL         time.Duration
	SessionCookieName string
	BcryptCost        int
}

// SecurityConfig covers CORS, CSRF and rate limiting.
type SecurityConfig struct {
	CORSOrigin       string
	CSRFEnabled      bool
	CSRFSecret       []byte
	GlobalRateLimit  int
	GlobalRateWindow time.Duration
	AuthRateLimit    int
	AuthRateWindow   time.Duration
}

// UploadConfig controls image uploads.
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom   string
	OfficeEmail string
	QueueSize   int
}

// Load reads configuration from environment variables. Required values that
// are absent or malformed produce an error; callers must abort startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var missing []string
	require := func(key string) string {
		val := strings.TrimSpace(os.Getenv(key))
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}

	secret := require("JWT_SECRET")
	tokenTTLRaw := require("JWT_EXPIRES_IN")
	cookieDaysRaw := require("JWT_COOKIE_EXPIRES_IN")
	dsn := require("DATABASE_URL")
	env := require("APP_ENV")
	corsOrigin := require("CORS_ORIGIN")
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if len(secret) < minJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET too short (min %d chars)", minJWTSecretLength)
	}
	if env != EnvDevelopment && env != EnvProduction {
		return nil, fmt.Errorf("invalid APP_ENV %q", env)
	}
	tokenTTL, err := ParseDuration(tokenTTLRaw)
	if err != nil || tokenTTL <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN %q", tokenTTLRaw)
	}
	cookieDays, err := strconv.Atoi(cookieDaysRaw)
	if err != nil || cookieDays <= 0 {
		return nil, fmt.Errorf("invalid JWT_COOKIE_EXPIRES_IN %q", cookieDaysRaw)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	csrfSecret := []byte(os.Getenv("CSRF_SECRET"))
	if len(csrfSecret) == 0 {
		csrfSecret, err = randomSecret(32)
		if err != nil {
			return nil, fmt.Errorf("generate csrf secret: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "lawfirm-api"),
			Env:                   env,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			BodyLimitBytes:        getEnvAsInt("HTTP_BODY_LIMIT_BYTES", 6<<20),
		},
		Postgres: PostgresConfig{
			DSN:            dsn,
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:         secret,
			TokenTTL:          tokenTTL,
			CookieTTL:         time.Duration(cookieDays) * 24 * time.Hour,
			SessionCookieName: getEnv("SESSION_COOKIE_NAME", "jwt"),
			BcryptCost:        getEnvAsInt("BCRYPT_COST", 12),
		},
		Security: SecurityConfig{
			CORSOrigin:       corsOrigin,
			CSRFEnabled:      getEnvAsBool("CSRF_ENABLED", true),
			CSRFSecret:       csrfSecret,
			GlobalRateLimit:  getEnvAsInt("RATE_LIMIT_MAX", 100),
			GlobalRateWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
			AuthRateLimit:    getEnvAsInt("AUTH_RATE_LIMIT_MAX", 50),
			AuthRateWindow:   getEnvAsDuration("AUTH_RATE_LIMIT_WINDOW", time.Hour),
		},
		Upload: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5<<20)),
		},
		Notification: NotificationConfig{
			EmailFrom:   getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			OfficeEmail: getEnv("NOTIFY_OFFICE_EMAIL", ""),
			QueueSize:   getEnvAsInt("NOTIFY_QUEUE_SIZE", 256),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether internal error detail must be hidden.
func (a AppConfig) IsProduction() bool {
	return a.Env == EnvProduction
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ParseDuration accepts Go durations plus a whole-day suffix such as "90d".
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q", raw)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

func randomSecret(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	if len(buf) != n {
		return nil, errors.New("short read")
	}
	return buf, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := ParseDuration(val)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
