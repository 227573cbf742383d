package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds process-level runtime configuration loaded from environment
// variables. Every field has a sensible default; only DATABASE_URL is
// required.
type Config struct {
	// Server (serve mode)
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// Queue worker
	DrainInterval time.Duration
	BatchLimit    int
	LeaseDuration time.Duration

	// What to do with a job whose sync attempt reported failure:
	// "drop" deletes it (one attempt only), "retry" releases it back to
	// the queue for redelivery.
	FailurePolicy string

	// Outbound hub requests per second.
	HubRateLimit int

	// Snapshot audit files
	StorageRoot string

	// Path to the persisted settings file (hub URL, group key, mappings).
	SettingsFile string
}

func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	policy := getEnv("FAILURE_POLICY", FailurePolicyDrop)
	if policy != FailurePolicyDrop && policy != FailurePolicyRetry {
		return nil, fmt.Errorf("FAILURE_POLICY must be %q or %q, got %q",
			FailurePolicyDrop, FailurePolicyRetry, policy)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL: dbURL,
		DBMaxConns:  int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:  int32(getInt("DB_MIN_CONNS", 2)),

		DrainInterval: getDuration("DRAIN_INTERVAL", 60*time.Second),
		BatchLimit:    getInt("BATCH_LIMIT", 0),
		LeaseDuration: getDuration("LEASE_DURATION", 5*time.Minute),

		FailurePolicy: policy,

		HubRateLimit: getInt("HUB_RATE_LIMIT", 10),

		StorageRoot:  getEnv("STORAGE_ROOT", "data/snapshots"),
		SettingsFile: getEnv("SETTINGS_FILE", "nyxsync.yaml"),
	}, nil
}

// Failure policy values for Config.FailurePolicy.
const (
	FailurePolicyDrop  = "drop"
	FailurePolicyRetry = "retry"
)

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
