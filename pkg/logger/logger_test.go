package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn", ProductionMode))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("", ProductionMode))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("", DevelopmentMode))
}

func TestFileSinkCarriesContextFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	l := NewWithOptions(Options{Mode: ProductionMode, Level: "info", File: path, MaxSizeMB: 1})

	ctx := context.WithValue(context.Background(), RequestIdKey, "req-1")
	ctx = context.WithValue(ctx, TelegramUserIdKey, int64(42))
	l.InfoCtx(ctx, "found recent users", zap.Int("count", 3))
	l.Debugf("dropped below level")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"tg_user_id":42`)
	assert.Contains(t, out, `"count":3`)
	assert.NotContains(t, out, "dropped below level")
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(prev) })

	l := NewNop()
	SetGlobalLogger(l)
	assert.Same(t, l, GetGlobalLogger())
}
