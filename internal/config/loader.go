// Package config loads service configuration from the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Config captures environment driven configuration for the reservation service.
type Config struct {
	HTTPPort     int
	SQLiteDSN    string
	SessionTTL   time.Duration
	SessionSweep string
}

// Load parses configuration from the current environment, applying defaults
// for every optional value and reporting all invalid entries at once.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:     8080,
		SQLiteDSN:    "file:reservations.db",
		SessionTTL:   24 * time.Hour,
		SessionSweep: "@every 10m",
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("RESERVATION_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "RESERVATION_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("RESERVATION_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("RESERVATION_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "RESERVATION_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if sweepValue := strings.TrimSpace(os.Getenv("RESERVATION_SESSION_SWEEP")); sweepValue != "" {
		if _, err := cron.ParseStandard(sweepValue); err != nil {
			invalid = append(invalid, "RESERVATION_SESSION_SWEEP")
		} else {
			cfg.SessionSweep = sweepValue
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
