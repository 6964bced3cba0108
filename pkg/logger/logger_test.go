package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

func TestNew_ProductionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	log.Named("catalogo").Info().Str("codigo", "VT001").Msg("producto creado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "catalogo", entry["component"])
	assert.Equal(t, "VT001", entry["codigo"])
	assert.Equal(t, "producto creado", entry["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	log.Info().Msg("no debe salir")
	assert.Empty(t, buf.String())
	log.Warn().Msg("sí debe salir")
	assert.Contains(t, buf.String(), "sí debe salir")
}

func TestNop_NoFalla(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Error().Msg("descartado") })
}

func TestNew_CampoService(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Service: "catalogo-api", Output: &buf})
	log.Info().Msg("arranque")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalogo-api", entry["service"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verbose"))
}
