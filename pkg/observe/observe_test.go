package observe

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		record := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}
	return records
}

func TestLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLoggerWithOptions("test-app", Options{AppEnv: "dev"}, &buf)

	l.Info("fetched", map[string]any{"city": "Київ", "days": 7})

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "info", records[0]["level"])
	assert.Equal(t, "fetched", records[0]["msg"])
	assert.Equal(t, "Київ", records[0]["city"])
	assert.Equal(t, "test-app", records[0]["app_name"])
	assert.Equal(t, "dev", records[0]["app_env"])
	assert.Contains(t, records[0]["caller_func"], "TestLogger_WritesStructuredFields")
}

func TestLogger_HooksStayJSONWithConsoleFormat(t *testing.T) {
	var out, hook bytes.Buffer
	l := NewZapLoggerWithOptions("test-app", Options{Format: "console", Hooks: []io.Writer{&hook}}, &out)

	l.Warning("upstream slow", map[string]any{"endpoint": "forecast"})

	assert.Contains(t, out.String(), "upstream slow")
	assert.False(t, json.Valid(bytes.TrimSpace(out.Bytes())))

	records := decodeLines(t, &hook)
	require.Len(t, records, 1)
	assert.Equal(t, "forecast", records[0]["endpoint"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLoggerWithOptions("test-app", Options{Level: "warn"}, &buf)

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warning("shown")
	l.Error(errors.New("broken"), map[string]any{"op": "fetch"})

	records := decodeLines(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "warn", records[0]["level"])
	assert.Equal(t, "error", records[1]["level"])
	assert.Equal(t, "broken", records[1]["error"])
	assert.Equal(t, "fetch", records[1]["op"])
}

func TestSentryHook_BuildEvent(t *testing.T) {
	h := &SentryHook{appEnv: "prod", appName: "test-app"}

	event, err := h.buildEvent([]byte(`{"level":"error","msg":"upstream down","error":"dial tcp","caller_line":12,"timestamp":"2025-01-02T10-00-00.000"}`))
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "upstream down", event.Message)
	assert.Equal(t, "prod", event.Environment)
	assert.Equal(t, "dial tcp", event.Extra["Error"])
	require.Len(t, event.Exception, 1)
	assert.Equal(t, "dial tcp", event.Exception[0].Value)
	assert.Equal(t, time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC), event.Timestamp)

	event, err = h.buildEvent([]byte(`{"level":"info","msg":"all good"}`))
	require.NoError(t, err)
	assert.Nil(t, event)

	_, err = h.buildEvent([]byte(`not json`))
	assert.Error(t, err)
}

func TestSentryHook_WriteIgnoresOtherEnvironments(t *testing.T) {
	h := &SentryHook{appEnv: "development", appName: "test-app"}
	payload := []byte(`{"level":"error","msg":"x"}`)

	n, err := h.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
}
