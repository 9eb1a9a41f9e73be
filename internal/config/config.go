// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be
// rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	DBPath        string `env:"CLUBSITE_DB_PATH" envDefault:"./data/clubsite.db"`
	SessionSecret string `env:"CLUBSITE_SESSION_SECRET,required"`
	ServerHost    string `env:"CLUBSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"CLUBSITE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"CLUBSITE_ENV" envDefault:"development"`
	LogLevel      string `env:"CLUBSITE_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"CLUBSITE_UPLOADS_DIR" envDefault:"./uploads"`
	BaseURL       string `env:"CLUBSITE_BASE_URL" envDefault:"http://localhost:8080"`

	// Cache configuration
	RedisURL    string `env:"CLUBSITE_REDIS_URL"` // optional Redis URL for multi-instance caching
	CachePrefix string `env:"CLUBSITE_CACHE_PREFIX" envDefault:"clubsite:"`
	CacheTTL    int    `env:"CLUBSITE_CACHE_TTL" envDefault:"3600"` // seconds

	// Mail configuration
	SMTPHost     string `env:"CLUBSITE_SMTP_HOST"`
	SMTPPort     int    `env:"CLUBSITE_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"CLUBSITE_SMTP_USERNAME"`
	SMTPPassword string `env:"CLUBSITE_SMTP_PASSWORD"`
	MailFrom     string `env:"CLUBSITE_MAIL_FROM"`

	// SMS gateway configuration
	SMSEndpoint string `env:"CLUBSITE_SMS_ENDPOINT"`
	SMSAPIKey   string `env:"CLUBSITE_SMS_API_KEY"`
	SMSSender   string `env:"CLUBSITE_SMS_SENDER"`

	// Payment gateway configuration
	PaymentEndpoint  string `env:"CLUBSITE_PAYMENT_ENDPOINT"`
	PaymentPublicKey string `env:"CLUBSITE_PAYMENT_PUBLIC_KEY"`
	PaymentSecretKey string `env:"CLUBSITE_PAYMENT_SECRET_KEY"`

	// Seeding configuration
	DoSeed bool `env:"CLUBSITE_DO_SEED" envDefault:"true"`
}

// IsDevelopment returns true when running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true when Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MailEnabled returns true when an SMTP relay is configured.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.MailFrom != ""
}

// SMSEnabled returns true when an SMS gateway is configured.
func (c Config) SMSEnabled() bool {
	return c.SMSEndpoint != "" && c.SMSAPIKey != ""
}

// PaymentsEnabled returns true when the payment gateway is configured.
func (c Config) PaymentsEnabled() bool {
	return c.PaymentEndpoint != "" && c.PaymentPublicKey != "" && c.PaymentSecretKey != ""
}

// MinSessionSecretLength is the minimum required length for the
// session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("CLUBSITE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("CLUBSITE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("CLUBSITE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character
// classes (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
