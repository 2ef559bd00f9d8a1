package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Kardex-api/pkg/logger"
)

func TestNew_AgregaCampoService(t *testing.T) {
	l := logger.New(logger.Config{Service: "kardex-api", Env: "production", Level: "debug"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("hola")

	assert.Contains(t, buf.String(), `"service":"kardex-api"`)
}

func TestComponent_AgregaCampoComponent(t *testing.T) {
	l := logger.New(logger.Config{Service: "kardex-api", Env: "production", Level: "debug"})

	var buf bytes.Buffer
	zl := l.Component("postgres").Zerolog().Output(&buf)
	zl.Info().Msg("hola")

	out := buf.String()
	assert.Contains(t, out, `"component":"postgres"`)
	assert.Contains(t, out, `"service":"kardex-api"`)
}
