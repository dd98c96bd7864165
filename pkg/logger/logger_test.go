package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestBuild(t *testing.T) {
	prod, err := Build("production", "warn", zap.String("service", "test"))
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, prod.Core().Enabled(zapcore.WarnLevel))

	dev, err := Build("development", "debug")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.NotNil(t, FromContext(c), "falls back to the global logger")

	scoped := zap.NewNop().With(zap.String("request_id", "abc"))
	c.SetRequest(req.WithContext(WithLogger(context.Background(), scoped)))
	assert.Same(t, scoped, FromContext(c))

	echoScoped := zap.NewNop()
	c.Set("logger", echoScoped)
	assert.Same(t, echoScoped, FromContext(c), "echo context wins over the request context")
}
