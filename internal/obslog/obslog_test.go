package obslog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickAttachesTickNumber(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.Tick(42).Info().Msg("advanced")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.EqualValues(t, 42, line["tick"])
	assert.Equal(t, "advanced", line["message"])
}

func TestSubsystemAttachesNameAndEntity(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.Subsystem("spawn", 7).Warn().Msg("instantiate failed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "spawn", line["subsystem"])
	assert.EqualValues(t, 7, line["entity"])
}

func TestErrorStreamSuppressesInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.Error.Info().Msg("should not appear")
	assert.Empty(t, buf.String())
}
