package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/pkg/logger"
)

func TestNew_JSONConServicio(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "crm-api", Out: &buf})

	log.Debug().Msg("no debe salir")
	log.Info().Str("customer_id", "c1").Msg("cliente creado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "una sola línea JSON")
	assert.Equal(t, "crm-api", entry["service"])
	assert.Equal(t, "c1", entry["customer_id"])
	assert.Equal(t, "cliente creado", entry["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verbose"))
}
