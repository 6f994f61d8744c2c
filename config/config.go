package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/epeers/preflists/internal/util"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	DBDriver         string
	DBDSN            string
	Port             string
	PointsWindowDays int
	Location         *time.Location
	LogLevel         log.Level
	AdminToken       string
	AVKey            string
	AVRequestsPerMin int
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; real env vars win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = DriverSQLite
	}
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, driver)
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = os.Getenv("PG_URL")
	}
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	windowDays, err := intFromEnv("POINTS_WINDOW_DAYS", 90)
	if err != nil {
		return nil, err
	}
	if windowDays <= 0 || windowDays > util.MaxWindowDays {
		return nil, fmt.Errorf("POINTS_WINDOW_DAYS must be between 1 and %d, got %d", util.MaxWindowDays, windowDays)
	}

	loc := time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
	}

	level := log.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level, err = log.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}

	avRate, err := intFromEnv("AV_REQUESTS_PER_MINUTE", 5)
	if err != nil {
		return nil, err
	}
	if avRate <= 0 {
		return nil, fmt.Errorf("AV_REQUESTS_PER_MINUTE must be positive, got %d", avRate)
	}

	return &Config{
		DBDriver:         driver,
		DBDSN:            dsn,
		Port:             port,
		PointsWindowDays: windowDays,
		Location:         loc,
		LogLevel:         level,
		AdminToken:       os.Getenv("ADMIN_TOKEN"),
		AVKey:            os.Getenv("AV_KEY"),
		AVRequestsPerMin: avRate,
	}, nil
}

func intFromEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}
