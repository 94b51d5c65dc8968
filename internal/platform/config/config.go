package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	NotifyBackendLocal = "local"
	NotifyBackendRedis = "redis"
)

type App struct {
	HTTPAddr    string   `envconfig:"HTTP_ADDR" default:":4000"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	// DB
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"captainbook"`

	// Redis
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	// Sessions
	JWTSecret             string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL              time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	PresenceSweepInterval time.Duration `envconfig:"PRESENCE_SWEEP_INTERVAL" default:"1m"`

	// Notifications: "local" keeps rooms in-process, "redis" fans out across instances.
	NotifyBackend string `envconfig:"NOTIFY_BACKEND" default:"local"`
	// WSRequireAuth restricts room joins to the identity carried by the socket's session token.
	WSRequireAuth bool `envconfig:"WS_REQUIRE_AUTH" default:"false"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`

	OTelEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTelEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	Env          string `envconfig:"ENV" default:"dev"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (App, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// Missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load(envFiles...)

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, err
	}
	if err := c.validate(); err != nil {
		return App{}, err
	}
	return c, nil
}

// SecureCookies reports whether session cookies carry the Secure flag.
func (c App) SecureCookies() bool {
	return c.Env != "dev"
}

func (c App) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	switch c.NotifyBackend {
	case NotifyBackendLocal, NotifyBackendRedis:
	default:
		return fmt.Errorf("NOTIFY_BACKEND must be %q or %q, got %q", NotifyBackendLocal, NotifyBackendRedis, c.NotifyBackend)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.PresenceSweepInterval <= 0 {
		return fmt.Errorf("PRESENCE_SWEEP_INTERVAL must be positive")
	}
	return nil
}
