package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"marina-server/shared/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	// LogEncoding overrides the per-ENV default (json in production, console otherwise).
	LogEncoding string `envconfig:"LOG_ENCODING"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"5000"`

	// MongoDB
	MongoURI       string `envconfig:"MONGODB_URI" required:"true"`
	MongoDatabase  string `envconfig:"MONGODB_DATABASE" default:"port_russell"`
	MigrateOnStart bool   `envconfig:"MIGRATE_ON_START" default:"true"`

	// Redis is optional: login rate limiting and token revocation fall back to memory.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `ignored:"true"`

	// Auth. Secret files in /run/secrets win over the environment.
	JWTSecret      string        `envconfig:"JWT_SECRET"`
	PasswordPepper string        `envconfig:"PASSWORD_PEPPER"`
	TokenTTL       time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	BcryptCost     int           `envconfig:"BCRYPT_COST" default:"10"`

	LoginRateLimit  uint          `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	LoginRateWindow time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"1m"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Comma-separated proxy IPs/CIDRs allowed to set X-Forwarded-For. Empty trusts none.
	TrustedProxies string `envconfig:"TRUSTED_PROXIES"`

	// RabbitMQ is optional: without it events are dropped.
	RabbitMQURL    string `envconfig:"RABBITMQ_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"marina_events"`

	ReservationOverlapCheck bool `envconfig:"RESERVATION_OVERLAP_CHECK" default:"false"`

	BootstrapAdminUsername string `envconfig:"BOOTSTRAP_ADMIN_USERNAME" default:"capitainerie"`
	BootstrapAdminEmail    string `envconfig:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `envconfig:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// GetTrustedProxies splits TrustedProxies. Nil means the client address is
// always taken from the connection.
func (c *Config) GetTrustedProxies() []string {
	if strings.TrimSpace(c.TrustedProxies) == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.TrustedProxies, " ", ""), ",")
}

// LoadConfig loads configuration from an optional .env file, the environment and Docker secrets.
func LoadConfig(envFilePath string) (*Config, error) {
	return load(envFilePath, utils.DefaultSecretsDir)
}

func load(envFilePath, secretsDir string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	cfg.JWTSecret = utils.SecretOrValue(secretsDir, "jwt_secret", cfg.JWTSecret)
	cfg.PasswordPepper = utils.SecretOrValue(secretsDir, "password_pepper", cfg.PasswordPepper)
	cfg.RedisPassword = utils.SecretOrValue(secretsDir, "redis_password", os.Getenv("REDIS_PASSWORD"))
	cfg.BootstrapAdminPassword = utils.SecretOrValue(secretsDir, "bootstrap_admin_password", cfg.BootstrapAdminPassword)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT secret is required (secret jwt_secret or JWT_SECRET)"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost))
	}
	if c.LoginRateLimit == 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT must be positive"))
	}
	if c.LoginRateWindow <= 0 {
		errs = append(errs, fmt.Errorf("LOGIN_RATE_WINDOW must be positive, got %s", c.LoginRateWindow))
	}
	if (c.BootstrapAdminEmail == "") != (c.BootstrapAdminPassword == "") {
		errs = append(errs, errors.New("BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(errs...)
}
