package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/Ascendant_Go/internal/config"
	"github.com/osse101/Ascendant_Go/internal/logger"
)

// SetupLogger initializes the application logger. Output always goes to stdout; when
// cfg.LogDir is set a timestamped session file receives a copy and old sessions are pruned.
// The returned file is nil when no log directory is configured, otherwise the caller closes it.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	var out io.Writer = os.Stdout
	var logFile *os.File

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
	}

	addSource := cfg.Environment == config.DefaultEnvironment
	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource)
	logger.InitLoggerWithWriter(logCfg, out)

	logger.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "format", cfg.LogFormat, "log_dir", cfg.LogDir)
	logger.Info(LogMsgStartingAscendant,
		"environment", cfg.Environment,
		"version", cfg.Version)
	logger.Debug(LogMsgConfigurationLoaded,
		"storage", cfg.StorageBackend,
		"state", cfg.StateBackend,
		"port", cfg.Port,
		"day_offset", cfg.DayOffset,
		"admin_enabled", cfg.AdminEnabled())

	return logFile, nil
}

// cleanupLogs keeps the LogFileRetentionCount newest session logs so a fresh one fits
func cleanupLogs(logDir string) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= LogFileRetentionCount {
		return
	}

	// timestamped names sort chronologically
	sort.Strings(names)
	for _, name := range names[:len(names)-LogFileRetentionCount] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			logger.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}
