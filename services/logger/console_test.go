package logsvc

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campus/core/auth"
)

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(zerolog.New(&buf))

	usr := auth.User{ID: "u1", Role: auth.RoleSchoolAdmin}
	logger.Warn("request failed",
		errors.New("boom"),
		map[string]interface{}{"path": "/api/student"},
		usr,
		errors.New("second"),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "request failed", entry["message"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "second", entry["error1"])
	assert.Equal(t, "/api/student", entry["path"])
	assert.Equal(t, "u1", entry["user"])
	assert.Equal(t, "schoolAdmin", entry["role"])
}

func TestConsoleLogger_level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Info("shown")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestConsoleLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(zerolog.New(&buf)).With("app", "admin")

	logger.Info("started", "refresh")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "admin", entry["app"])
	assert.Equal(t, "refresh", entry["detail"])
}
