// ABOUTME: Tests for zerolog setup and context propagation.
// ABOUTME: Verifies level parsing, JSON output, and FromContext fallbacks.
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "")

	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("chatty"))

	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, zerolog.ErrorLevel, parseLevel(""))
}

func TestSetupJSON(t *testing.T) {
	prev := *Default()
	defer SetDefault(prev)

	var buf bytes.Buffer
	logger := Setup(Options{Level: "debug", Format: "json", Out: &buf})
	logger.Info().Str("partner_id", "A1").Msg("hello")

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "hello", event["message"])
	assert.Equal(t, "A1", event["partner_id"])

	buf.Reset()
	Default().Debug().Msg("via default")
	assert.Contains(t, buf.String(), "via default")
}

func TestFromContext(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))

	logger := New(&bytes.Buffer{}, "warn")
	ctx := WithLogger(context.Background(), &logger)
	assert.Same(t, &logger, FromContext(ctx))
}
