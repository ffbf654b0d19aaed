package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"DB_DSN": "postgres://localhost/office"}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "Europe/Moscow", cfg.Location.String())
	assert.Equal(t, 3, cfg.ReconcileHour)
	assert.Equal(t, time.Minute, cfg.ReconcileCheckInterval)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.CountAdvanceAbsences)
	assert.True(t, cfg.MigrationsEnabled)
	assert.Empty(t, cfg.OperatorIDs)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"DB_DSN":                   "postgres://localhost/office",
		"ENV":                      "production",
		"OPERATOR_IDS":             "101, 202,,303",
		"TIMEZONE":                 "UTC",
		"RECONCILE_HOUR":           "5",
		"RECONCILE_CHECK_INTERVAL": "30s",
		"REDIS_ADDR":               "localhost:6379",
		"COUNT_ADVANCE_ABSENCES":   "true",
		"MIGRATIONS_ENABLED":       "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, []int64{101, 202, 303}, cfg.OperatorIDs)
	assert.True(t, cfg.IsOperator(202))
	assert.False(t, cfg.IsOperator(404))
	assert.Equal(t, time.UTC.String(), cfg.Location.String())
	assert.Equal(t, 5, cfg.ReconcileHour)
	assert.Equal(t, 30*time.Second, cfg.ReconcileCheckInterval)
	assert.True(t, cfg.CountAdvanceAbsences)
	assert.False(t, cfg.MigrationsEnabled)
}

func TestFromLookupErrors(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"DB_DSN": "postgres://localhost/office"}
	}

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"missing dsn", "DB_DSN", ""},
		{"bad operator id", "OPERATOR_IDS", "12,abc"},
		{"bad timezone", "TIMEZONE", "Mars/Olympus"},
		{"hour out of range", "RECONCILE_HOUR", "24"},
		{"bad interval", "RECONCILE_CHECK_INTERVAL", "-1m"},
		{"bad bool", "COUNT_ADVANCE_ABSENCES", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := base()
			env[tt.key] = tt.val
			_, err := FromLookup(lookupFrom(env))
			assert.Error(t, err)
		})
	}
}
