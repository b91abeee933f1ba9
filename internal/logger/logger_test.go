package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/penguins/internal/config"
)

func TestNewWithWriter(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantDebug bool
	}{
		{
			name:      "debug level enables debug events",
			cfg:       config.LogConfig{Level: "debug", Format: "json"},
			wantDebug: true,
		},
		{
			name:      "info level drops debug events",
			cfg:       config.LogConfig{Level: "info", Format: "json"},
			wantDebug: false,
		},
		{
			name:      "unknown level falls back to info",
			cfg:       config.LogConfig{Level: "verbose", Format: "json"},
			wantDebug: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(&buf, "penguins-test", tt.cfg)

			log.Debug().Msg("debug event")
			assert.Equal(t, tt.wantDebug, buf.Len() > 0)

			buf.Reset()
			log.Info().Str("penguin_id", "p-1").Msg("info event")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "penguins-test", entry["service"])
			assert.Equal(t, "p-1", entry["penguin_id"])
			assert.Equal(t, "info event", entry["message"])
			assert.Contains(t, entry, "time")
		})
	}
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "penguins-test", config.LogConfig{Level: "info", Format: "console"})

	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "penguins-test")
}
