package validation

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const milestoneSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["level", "milestone_days"],
	"properties": {
		"level": {"type": "integer", "minimum": 1},
		"milestone_days": {"type": "integer", "minimum": 1},
		"stage": {"enum": ["novice", "apprentice"]}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeFile(t, t.TempDir(), "milestone.schema.json", milestoneSchema)

	tests := []struct {
		name      string
		data      string
		wantErr   bool
		violation bool
	}{
		{"valid", `{"level": 1, "milestone_days": 7}`, false, false},
		{"valid with enum", `{"level": 5, "milestone_days": 14, "stage": "apprentice"}`, false, false},
		{"missing required", `{"level": 1}`, true, true},
		{"wrong type", `{"level": "one", "milestone_days": 7}`, true, true},
		{"below minimum", `{"level": 0, "milestone_days": 7}`, true, true},
		{"bad enum", `{"level": 1, "milestone_days": 7, "stage": "god"}`, true, true},
		{"invalid JSON", `{"level": }`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), schemaPath)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.violation, errors.Is(err, ErrSchemaViolation))
		})
	}
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	dir := t.TempDir()
	v := NewSchemaValidator()
	schemaPath := writeFile(t, dir, "milestone.schema.json", milestoneSchema)

	dataPath := writeFile(t, dir, "ok.json", `{"level": 3, "milestone_days": 10}`)
	assert.NoError(t, v.ValidateFile(dataPath, schemaPath))

	err := v.ValidateFile(filepath.Join(dir, "missing.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestSchemaValidator_MissingSchema(t *testing.T) {
	v := NewSchemaValidator()
	err := v.ValidateBytes([]byte(`{}`), "nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator().(*schemaValidator)
	schemaPath := writeFile(t, t.TempDir(), "milestone.schema.json", milestoneSchema)
	data := []byte(`{"level": 1, "milestone_days": 7}`)

	require.NoError(t, v.ValidateBytes(data, schemaPath))
	require.NoError(t, v.ValidateBytes(data, schemaPath))
	assert.Len(t, v.schemas, 1)
}

func TestSchemaValidator_ConcurrentUse(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeFile(t, t.TempDir(), "milestone.schema.json", milestoneSchema)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- v.ValidateBytes([]byte(`{"level": 2, "milestone_days": 7}`), schemaPath)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestSchemaValidator_ResolvesFromModuleRoot(t *testing.T) {
	// The tables schema lives at the repository root; tests run from the package directory
	v := NewSchemaValidator()
	err := v.ValidateBytes([]byte(`{}`), "configs/schemas/tables.schema.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaViolation)
}
