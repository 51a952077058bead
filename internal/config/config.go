// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; required variables are enforced by must() and
// missing values abort startup with a fatal log message.
type Config struct {
	Env            string // application environment (dev/test/prod)
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	DBMaxOpenConns int    // connection pool ceiling
	DBMaxIdleConns int    // idle connections kept around
	DBConnLifeMin  int    // minutes before a pooled connection is recycled
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	// OpenSeatingTypes names the reservation types that may be submitted
	// without picking seats (comma separated, default GENERAL_ADMISSION).
	// The seating engine takes the set as an opaque parameter, so the
	// permitted values live here rather than in code.
	OpenSeatingTypes map[string]bool
}

// Load reads configuration values from environment variables and returns a
// Config.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		DBMaxOpenConns:   intDefault("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   intDefault("DB_MAX_IDLE_CONNS", 25),
		DBConnLifeMin:    intDefault("DB_CONN_LIFETIME_MIN", 30),
		JWTSecret:        must("JWT_SECRET"),
		AccessTTLMin:     mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays:   mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:       mustInt("BCRYPT_COST"),
		OpenSeatingTypes: parseSet(getenv("OPEN_SEATING_TYPES", "GENERAL_ADMISSION")),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// parseSet splits a comma separated list into an upper-cased lookup set.
func parseSet(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}

// intDefault reads an optional integer variable, falling back to def when
// the variable is unset or not a number.
func intDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
