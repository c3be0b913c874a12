package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: FormatJSON, Out: &buf})

	log.Debug().Str("file", "Foo.go").Msg("wrote file")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "Foo.go", entry["file"])
	assert.Equal(t, "wrote file", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := New(Options{Level: tt.level, Out: &bytes.Buffer{}})
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Out: &buf})

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: FormatConsole, Out: &buf})

	log.Info().Str("entity", "ROSpec").Msg("generation complete")

	out := buf.String()
	assert.Contains(t, out, "generation complete")
	assert.Contains(t, out, "entity=")
	assert.False(t, json.Valid(buf.Bytes()))
}
