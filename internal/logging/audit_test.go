package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RowanDark/devkit/internal/redact"
)

func TestAuditLoggerEmit(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewAuditLogger("cli", WithoutStderr(), WithWriter(buf))
	require.NoError(t, err)

	event := AuditEvent{EventType: EventOperationRun, Operation: "aes_encrypt", Outcome: OutcomeSuccess}
	require.NoError(t, logger.Emit(event))

	var decoded AuditEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "cli", decoded.Component)
	assert.Equal(t, EventOperationRun, decoded.EventType)
	assert.Equal(t, "aes_encrypt", decoded.Operation)
	assert.Equal(t, OutcomeSuccess, decoded.Outcome)
	assert.False(t, decoded.Timestamp.IsZero())
}

func TestAuditLoggerRedactsMetadata(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewAuditLogger("cli", WithoutStderr(), WithWriter(buf))
	require.NoError(t, err)

	require.NoError(t, logger.Emit(AuditEvent{
		EventType: EventOperationFailed,
		Metadata:  map[string]any{"key": "hunter2", "mode": "CBC"},
		Reason:    "bad password=correcthorse",
		ErrorKind: "DecryptionError",
	}))

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "correcthorse")
	assert.Contains(t, out, redact.Redacted)
	assert.Contains(t, out, `"mode":"CBC"`)
	assert.Contains(t, out, `"error_kind":"DecryptionError"`)
}

func TestAuditLoggerKeepsTimestampInUTC(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewAuditLogger("cli", WithoutStderr(), WithWriter(buf))
	require.NoError(t, err)

	local := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	require.NoError(t, logger.Emit(AuditEvent{Timestamp: local, EventType: EventConfigLoaded}))

	var decoded AuditEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.True(t, decoded.Timestamp.Equal(local))
	assert.Equal(t, time.UTC, decoded.Timestamp.Location())
}

func TestAuditLoggerFileAndComponents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	logger, err := NewAuditLogger("cli", WithoutStderr(), WithFile(path))
	require.NoError(t, err)

	child := logger.WithComponent("pipeline")
	require.NoError(t, logger.Emit(AuditEvent{EventType: EventConfigLoaded}))
	require.NoError(t, child.Emit(AuditEvent{EventType: EventPipelineRun}))
	require.NoError(t, child.Close(), "children do not own the file")
	require.NoError(t, logger.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var components []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev AuditEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		components = append(components, ev.Component)
	}
	assert.Equal(t, []string{"cli", "pipeline"}, components)
}

func TestAuditLoggerOptionErrors(t *testing.T) {
	_, err := NewAuditLogger("cli", WithWriter(nil))
	assert.Error(t, err)

	_, err = NewAuditLogger("cli", WithFile("  "))
	assert.Error(t, err)

	_, err = NewAuditLogger("cli", WithoutStderr())
	assert.ErrorContains(t, err, "no writers")

	var nilLogger *AuditLogger
	assert.Error(t, nilLogger.Emit(AuditEvent{}))
	assert.NoError(t, Nop().Emit(AuditEvent{EventType: EventDetectRun}))
}
