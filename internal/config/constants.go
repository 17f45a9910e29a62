package config

// Configuration file paths
const (
	ConfigPathTables       = "configs/tables.yaml"
	ConfigPathTablesSchema = "configs/schemas/tables.schema.json"
	ConfigPathDeadLetter   = "logs/event_deadletter.jsonl"
)

// Storage and state backends
const (
	StorageBackendPostgres = "postgres"
	StorageBackendSQLite   = "sqlite"

	StateBackendMemory = "memory"
	StateBackendRedis  = "redis"
)

// Defaults applied when a variable is unset
const (
	DefaultPort                   = 8080
	DefaultLogLevel               = "info"
	DefaultLogFormat              = "text"
	DefaultEnvironment            = "dev"
	DefaultServiceName            = "ascendant"
	DefaultVersion                = "dev"
	DefaultSQLitePath             = "data/ascendant.db"
	DefaultDBMaxConns             = 20
	DefaultRedisAddr              = "localhost:6379"
	DefaultStateCacheSize         = 10000
	DefaultStateCacheTTLHours     = 48
	DefaultWorkerCount            = 4
	DefaultWorkerQueueSize        = 256
	DefaultEventMaxRetries        = 3
	DefaultEventRetryDelaySeconds = 2
	DefaultEventLogRetentionDays  = 30
	DefaultEventLogCleanupHours   = 24
)

// Error messages
const (
	ErrMsgInvalidPortFmt           = "invalid PORT value: %w"
	ErrMsgInvalidStorageBackendFmt = "invalid STORAGE_BACKEND %q: expected postgres or sqlite"
	ErrMsgInvalidStateBackendFmt   = "invalid STATE_BACKEND %q: expected memory or redis"
	ErrMsgInvalidDayOffsetFmt      = "invalid DAY_BOUNDARY_UTC_OFFSET_HOURS %d: must be within -14..14"
	ErrMsgMissingEnvVarsFmt        = "missing required environment variables: %s"
)
