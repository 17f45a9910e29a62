package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Ascendant_Go/internal/config"
	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
)

func TestLoadTables_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg := &config.Config{TablesPath: filepath.Join(t.TempDir(), "absent.yaml")}

	tables, err := LoadTables(cfg)

	require.NoError(t, err)
	assert.Equal(t, len(gamedata.Default().Paths), len(tables.Paths))
}

func TestLoadTables_InvalidFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: []\n"), 0o644))

	_, err := LoadTables(&config.Config{TablesPath: path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedLoadTables)
}

func TestOpenStorage_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		StorageBackend: config.StorageBackendSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "ascendant.db"),
	}

	store, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Ping(ctx))
}

func TestOpenStorage_UnknownBackend(t *testing.T) {
	_, err := OpenStorage(context.Background(), &config.Config{StorageBackend: "mongo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mongo"`)
}

func TestOpenStateStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		cfg := &config.Config{StateBackend: config.StateBackendMemory, StateCacheSize: 16, StateCacheTTL: time.Hour}
		store, closeFn, err := OpenStateStore(context.Background(), cfg)
		require.NoError(t, err)
		assert.NotNil(t, store)
		assert.NotNil(t, closeFn)
		closeFn()
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := OpenStateStore(context.Background(), &config.Config{StateBackend: "etcd"})
		assert.Error(t, err)
	})
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := &config.Config{
		EventMaxRetries: 1,
		EventRetryDelay: 10 * time.Millisecond,
		DeadLetterPath:  filepath.Join(t.TempDir(), "nested", "deadletter.jsonl"),
	}

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NotNil(t, publisher)

	assert.DirExists(t, filepath.Dir(cfg.DeadLetterPath))
	assert.NoError(t, publisher.Publish(context.Background(), event.Event{Type: event.DayAdvanced}))
	assert.NoError(t, publisher.Shutdown(context.Background()))
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < LogFileRetentionCount+3; i++ {
		name := fmt.Sprintf(LogFileNamePattern, base.Add(time.Duration(i)*time.Minute).Format(LogFileTimestampFormat))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, LogFileRetentionCount+1)

	oldest := fmt.Sprintf(LogFileNamePattern, base.Format(LogFileTimestampFormat))
	assert.NoFileExists(t, filepath.Join(dir, oldest))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}
