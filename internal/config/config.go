package config

import (
	"os"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Firebase (base64-encoded service account JSON)
	FirebaseServiceKey string

	// Stripe
	StripeSecretKey string
	SiteDomain      string

	// Request ownership policy: when true, only the requester who filed a
	// donation request may edit, delete, or change its status.
	EnforceRequestOwnership bool

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "bloodaid_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		FirebaseServiceKey: getEnv("FB_SERVICE_KEY", ""),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		SiteDomain:      getEnv("SITE_DOMAIN", "http://localhost:5173"),

		EnforceRequestOwnership: getEnv("REQUEST_OWNERSHIP_ENFORCED", "false") == "true",

		Port:        getEnv("PORT", "5000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
