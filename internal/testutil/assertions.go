// Package testutil provides common test utilities and assertions for ohoo tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/ohoo/domain/entities"
	ohoolog "github.com/reglet-dev/ohoo/log"
)

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// AssertDurationWithin asserts that a duration is within a tolerance of an expected value
func AssertDurationWithin(t *testing.T, expected, actual, tolerance time.Duration, msgAndArgs ...interface{}) {
	t.Helper()

	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}

	assert.LessOrEqual(t, diff, tolerance, msgAndArgs...)
}

// AssertMapContains asserts that a map contains all expected key-value pairs
func AssertMapContains(t *testing.T, expectedMap, actualMap map[string]interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	for key, expectedValue := range expectedMap {
		actualValue, ok := actualMap[key]
		assert.True(t, ok, "map should contain key %q", key)
		assert.Equal(t, expectedValue, actualValue, msgAndArgs...)
	}
}

// AssertErrorResult asserts that res is an error result with the given
// ErrorDetail type and code.
func AssertErrorResult(t *testing.T, res entities.Result, errType, code string) {
	t.Helper()

	require.True(t, res.IsError(), "expected error result, got %q: %s", res.Status, res.Message)
	require.NotNil(t, res.Error)
	assert.Equal(t, errType, res.Error.Type)
	assert.Equal(t, code, res.Error.Code)
	assert.Equal(t, res.Error.Message, res.Message)
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return ohoolog.New(ohoolog.WithWriter(io.Discard))
}

// CaptureLogger returns a debug-level logger and the buffer it writes
// LogMessageWire lines to.
func CaptureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return ohoolog.New(ohoolog.WithWriter(&buf), ohoolog.WithLevel(slog.LevelDebug)), &buf
}
