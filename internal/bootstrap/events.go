package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/Ascendant_Go/internal/config"
	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/metrics"
)

// InitializeEventSystem creates the in-memory bus and the resilient publisher services publish
// through. The metrics collector subscribes to the bus directly.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries <= 0 {
		maxRetries = config.DefaultEventMaxRetries
	}
	deadLetterPath := cfg.DeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.ConfigPathDeadLetter
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, maxRetries, cfg.EventRetryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	logger.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", deadLetterPath)

	return bus, publisher, nil
}
