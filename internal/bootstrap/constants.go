package bootstrap

import "os"

// File system permissions
const (
	DirPermission     os.FileMode = 0o755
	LogFilePermission os.FileMode = 0o644
)

// Session log files
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	// Older session logs beyond this count are removed at startup
	LogFileRetentionCount = 9
)

// Log messages for startup
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingAscendant   = "Starting Ascendant"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgTablesLoaded        = "Game tables loaded"
	LogMsgTablesDefaulted     = "Tables file not found, using built-in tables"
	LogMsgStorageOpened       = "Storage backend opened"
	LogMsgStateStoreOpened    = "State store opened"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// Event system
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
)

// Storage errors
const (
	ErrMsgFailedLoadTables      = "failed to load game tables"
	ErrMsgFailedConnectPostgres = "failed to connect to postgres"
	ErrMsgFailedMigrate         = "failed to apply migrations"
	ErrMsgFailedOpenSQLite      = "failed to open sqlite store"
	ErrMsgFailedConnectRedis    = "failed to connect to redis"
	ErrMsgUnknownBackendFmt     = "unknown %s backend %q"
)

// Shutdown
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgWorkerShutdownFailed       = "Worker shutdown failed"
	LogMsgServiceShutdownFailed      = " service shutdown failed"

	ServiceNameJourney  = "journey"
	ServiceNameEconomy  = "economy"
	ServiceNameProfile  = "profile"
	ServiceNameDayCycle = "daycycle"
)
