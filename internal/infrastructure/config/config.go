package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process configuration, read once at startup. JWT_SECRET is
// required: a process without a signing secret must not start.
type Config struct {
	Port        string        `env:"PORT,         default=8080"`
	Env         string        `env:"ENV,          default=development"`
	JWTSecret   string        `env:"JWT_SECRET,   required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	CORSOrigins []string      `env:"CORS_ORIGINS, default=http://localhost:3000\\,http://localhost"`

	OTPProvider  string `env:"OTP_PROVIDER,  default=local"`
	AuditWorkers int    `env:"AUDIT_WORKERS, default=4"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Twilio TwilioConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_db"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type TwilioConfig struct {
	AccountSID       string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken        string `env:"TWILIO_AUTH_TOKEN"`
	VerifyServiceSID string `env:"TWILIO_VERIFY_SERVICE_SID"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.OTPProvider == "twilio" {
		if cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "" || cfg.Twilio.VerifyServiceSID == "" {
			return nil, fmt.Errorf("config: twilio provider selected but credentials are incomplete")
		}
	}
	return &cfg, nil
}
