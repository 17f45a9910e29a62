package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"valid", "100", 100},
		{"negative", "-10", -10},
		{"zero", "0", 0},
		{"invalid falls back", "abc", 42},
		{"empty falls back", "", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL_VAR", "0")
	assert.False(t, getEnvAsBool("TEST_BOOL_VAR", true))

	t.Setenv("TEST_BOOL_VAR", "yes please")
	assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION_VAR", "30s")
	assert.Equal(t, 30*time.Second, getEnvAsDuration("TEST_DURATION_VAR", time.Minute))

	t.Setenv("TEST_DURATION_VAR", "-5s")
	assert.Equal(t, time.Minute, getEnvAsDuration("TEST_DURATION_VAR", time.Minute))

	t.Setenv("TEST_DURATION_VAR", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("TEST_DURATION_VAR", time.Minute))
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("TEST_LIST_VAR", "")
	assert.Nil(t, getEnvAsList("TEST_LIST_VAR"))

	t.Setenv("TEST_LIST_VAR", "a,b , c")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsList("TEST_LIST_VAR"))
}
