package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"verbose": Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestJSONFormat_IncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Debug, Format: FormatJSON, App: "vet-records", Output: &buf})

	log.With(map[string]any{"request_id": "r-1"}).Info("login failed", map[string]any{
		"reason": errors.New("user not found"),
		"":       "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "login failed", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "vet-records", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "user not found", entry["reason"])
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, entry, "")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatText, Output: &buf})

	log.Info("hidden", nil)
	log.Warn("shown", map[string]any{"k": "v"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown"))
	assert.Contains(t, out, "k=v")
}
