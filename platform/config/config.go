// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RateLimitConfig provides per-IP request limits for the public API.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// GotenbergConfig provides settings for the Gotenberg HTML-to-PDF service.
type GotenbergConfig interface {
	GetGotenbergURL() string
	GetGotenbergUsername() string
	GetGotenbergPassword() string
	IsGotenbergEnabled() bool
}

// GeocoderConfig provides settings for the Nominatim address lookup.
type GeocoderConfig interface {
	GetNominatimURL() string
	GetNominatimCountryCodes() string
	GetNominatimUserAgent() string
	GetNominatimRatePerSec() float64
}

// PhoneConfig provides the region used to interpret national phone numbers.
type PhoneConfig interface {
	GetPhoneDefaultRegion() string
}

// DashboardConfig provides settings for dashboard statistics.
type DashboardConfig interface {
	GetDashboardCurrency() string
}

// ExportConfig provides limits for table exports.
type ExportConfig interface {
	GetExportMaxRows() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	RateLimitRPS          float64
	RateLimitBurst        int
	GotenbergURL          string
	GotenbergUsername     string
	GotenbergPassword     string
	NominatimURL          string
	NominatimCountryCodes string
	NominatimUserAgent    string
	NominatimRatePerSec   float64
	PhoneDefaultRegion    string
	DashboardCurrency     string
	ExportMaxRows         int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// GotenbergConfig implementation
func (c *Config) GetGotenbergURL() string      { return c.GotenbergURL }
func (c *Config) GetGotenbergUsername() string { return c.GotenbergUsername }
func (c *Config) GetGotenbergPassword() string { return c.GotenbergPassword }
func (c *Config) IsGotenbergEnabled() bool     { return c.GotenbergURL != "" }

// GeocoderConfig implementation
func (c *Config) GetNominatimURL() string          { return c.NominatimURL }
func (c *Config) GetNominatimCountryCodes() string { return c.NominatimCountryCodes }
func (c *Config) GetNominatimUserAgent() string    { return c.NominatimUserAgent }
func (c *Config) GetNominatimRatePerSec() float64  { return c.NominatimRatePerSec }

// PhoneConfig implementation
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// DashboardConfig implementation
func (c *Config) GetDashboardCurrency() string { return c.DashboardCurrency }

// ExportConfig implementation
func (c *Config) GetExportMaxRows() int { return c.ExportMaxRows }

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		CORSAllowCreds:        strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		RateLimitRPS:          mustFloat(getEnv("RATE_LIMIT_RPS", "10")),
		RateLimitBurst:        mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		GotenbergURL:          strings.TrimRight(getEnv("GOTENBERG_URL", ""), "/"),
		GotenbergUsername:     getEnv("GOTENBERG_USERNAME", ""),
		GotenbergPassword:     getEnv("GOTENBERG_PASSWORD", ""),
		NominatimURL:          getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
		NominatimCountryCodes: getEnv("NOMINATIM_COUNTRY_CODES", "tz"),
		NominatimUserAgent:    getEnv("NOMINATIM_USER_AGENT", "TransitConsole/1.0"),
		NominatimRatePerSec:   mustFloat(getEnv("NOMINATIM_RATE_PER_SEC", "1")),
		PhoneDefaultRegion:    strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "TZ")),
		DashboardCurrency:     strings.ToUpper(getEnv("DASHBOARD_CURRENCY", "TZS")),
		ExportMaxRows:         mustInt(getEnv("EXPORT_MAX_ROWS", "10000")),
	}

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.NominatimRatePerSec <= 0 {
		return nil, fmt.Errorf("NOMINATIM_RATE_PER_SEC must be positive")
	}
	if cfg.ExportMaxRows <= 0 {
		return nil, fmt.Errorf("EXPORT_MAX_ROWS must be positive")
	}
	if len(cfg.DashboardCurrency) != 3 {
		return nil, fmt.Errorf("DASHBOARD_CURRENCY must be an ISO 4217 code")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
