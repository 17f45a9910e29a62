// Package config loads service configuration from the environment
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string // session log files are written here when set
	Environment string
	ServiceName string
	Version     string
	APIKey      string // guards /api/v1/admin; admin routes are disabled when empty

	StorageBackend string
	SQLitePath     string
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	DBMaxConns     int

	StateBackend   string
	RedisAddr      string
	StateCacheSize int
	StateCacheTTL  time.Duration

	TablesPath       string
	TablesSchemaPath string
	DeadLetterPath   string

	WorkerCount     int
	WorkerQueueSize int
	EventMaxRetries int
	EventRetryDelay time.Duration
	TrustedProxies  []string

	EventLogRetention       time.Duration
	EventLogCleanupInterval time.Duration

	DayOffset              time.Duration
	ResetStreakOnMissedDay bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A missing .env is fine; real env vars take over
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", ""),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		APIKey:      getEnv("API_KEY", ""),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendPostgres)),
		SQLitePath:     getEnv("SQLITE_PATH", DefaultSQLitePath),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "ascendant"),
		DBMaxConns:     getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),

		StateBackend:   strings.ToLower(getEnv("STATE_BACKEND", StateBackendMemory)),
		RedisAddr:      getEnv("REDIS_ADDR", DefaultRedisAddr),
		StateCacheSize: getEnvAsInt("STATE_CACHE_SIZE", DefaultStateCacheSize),
		StateCacheTTL:  getEnvAsDuration("STATE_CACHE_TTL", DefaultStateCacheTTLHours*time.Hour),

		TablesPath:       getEnv("TABLES_PATH", ConfigPathTables),
		TablesSchemaPath: getEnv("TABLES_SCHEMA_PATH", ConfigPathTablesSchema),
		DeadLetterPath:   getEnv("EVENT_DEADLETTER_PATH", ConfigPathDeadLetter),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		EventMaxRetries: getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay: getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelaySeconds*time.Second),
		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),

		EventLogRetention:       getEnvAsDuration("EVENT_LOG_RETENTION", DefaultEventLogRetentionDays*24*time.Hour),
		EventLogCleanupInterval: getEnvAsDuration("EVENT_LOG_CLEANUP_INTERVAL", DefaultEventLogCleanupHours*time.Hour),

		ResetStreakOnMissedDay: getEnvAsBool("RESET_STREAK_ON_MISSED_DAY", true),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidPortFmt, err)
	}
	cfg.Port = port

	offsetHours := getEnvAsInt("DAY_BOUNDARY_UTC_OFFSET_HOURS", 0)
	if offsetHours < -14 || offsetHours > 14 {
		return nil, fmt.Errorf(ErrMsgInvalidDayOffsetFmt, offsetHours)
	}
	cfg.DayOffset = time.Duration(offsetHours) * time.Hour

	switch cfg.StorageBackend {
	case StorageBackendPostgres, StorageBackendSQLite:
	default:
		return nil, fmt.Errorf(ErrMsgInvalidStorageBackendFmt, cfg.StorageBackend)
	}
	switch cfg.StateBackend {
	case StateBackendMemory, StateBackendRedis:
	default:
		return nil, fmt.Errorf(ErrMsgInvalidStateBackendFmt, cfg.StateBackend)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go duration strings ("90m", "48h")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// AdminEnabled reports whether admin routes are mounted
func (c *Config) AdminEnabled() bool {
	return c.APIKey != ""
}
