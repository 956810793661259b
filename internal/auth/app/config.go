package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/aussiebroadwan/signin/internal/auth/mail"
)

// Code store drivers.
const (
	OTPStoreMemory = "memory"
	OTPStoreRedis  = "redis"
)

type Config struct {
	Env                  string        `yaml:"env" env:"ENV" env-default:"dev"`
	LogLevel             string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat            string        `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	Port                 int           `yaml:"port" env:"PORT" env-default:"8080"`
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period" env:"SHUTDOWN_GRACE_PERIOD" env-default:"10s"`
	HousekeepingInterval time.Duration `yaml:"housekeeping_interval" env:"HOUSEKEEPING_INTERVAL" env-default:"1h"`

	Auth      AuthConfig      `yaml:"auth"`
	OTP       OTPConfig       `yaml:"otp"`
	Redis     RedisConfig     `yaml:"redis"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

type AuthConfig struct {
	Issuer         string        `yaml:"issuer" env:"AUTH_ISSUER" env-default:"signin-auth"`
	DatabaseFile   string        `yaml:"database_file" env:"AUTH_DATABASE_FILE" env-default:"auth.db"`
	PepperFile     string        `yaml:"pepper_file" env:"AUTH_PEPPER_FILE" env-default:"pepper"`
	SessionKeyFile string        `yaml:"session_key_file" env:"AUTH_SESSION_KEY_FILE" env-default:"session.key"`
	SessionTTL     time.Duration `yaml:"session_ttl" env:"AUTH_SESSION_TTL" env-default:"336h"`
	CookieName     string        `yaml:"cookie_name" env:"AUTH_COOKIE_NAME" env-default:"signin_session"`
	CookieSecure   bool          `yaml:"cookie_secure" env:"AUTH_COOKIE_SECURE" env-default:"false"`
}

type OTPConfig struct {
	TTL   time.Duration `yaml:"ttl" env:"OTP_TTL" env-default:"5m"`
	Store string        `yaml:"store" env:"OTP_STORE" env-default:"memory"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type SMTPConfig struct {
	Host        string        `yaml:"host" env:"SMTP_HOST"`
	Port        int           `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username    string        `yaml:"username" env:"SMTP_USERNAME"`
	Password    string        `yaml:"password" env:"SMTP_PASSWORD"`
	FromName    string        `yaml:"from_name" env:"SMTP_FROM_NAME" env-default:"Sign-in"`
	FromEmail   string        `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
	TLSPolicy   string        `yaml:"tls_policy" env:"SMTP_TLS_POLICY" env-default:"mandatory"`
	SendTimeout time.Duration `yaml:"send_timeout" env:"SMTP_SEND_TIMEOUT" env-default:"10s"`
}

// BootstrapConfig names the account seeded into an empty database.
type BootstrapConfig struct {
	Email    string `yaml:"email" env:"BOOTSTRAP_EMAIL"`
	Password string `yaml:"password" env:"BOOTSTRAP_PASSWORD"`
	UserName string `yaml:"username" env:"BOOTSTRAP_USERNAME"`
}

// IsDev reports whether the service runs in the development environment.
func (c Config) IsDev() bool { return strings.EqualFold(c.Env, "dev") }

// LoadConfig reads CONFIG_FILE (if set) and then the environment, which wins.
func LoadConfig() (Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.OTP.TTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL must be positive"))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("AUTH_SESSION_TTL must be positive"))
	}

	switch c.OTP.Store {
	case OTPStoreMemory, OTPStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown OTP_STORE %q", c.OTP.Store))
	}

	if _, err := mail.ParseTLSPolicy(c.SMTP.TLSPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.SMTP.Host == "" && !c.IsDev() {
		errs = append(errs, errors.New("SMTP_HOST is required outside dev"))
	}
	if c.SMTP.Host != "" && c.SMTP.FromEmail == "" {
		errs = append(errs, errors.New("SMTP_FROM_EMAIL is required when SMTP_HOST is set"))
	}

	return errors.Join(errs...)
}
