package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"TRACE":   zapcore.DebugLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"loud":    zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	for _, prod := range []bool{true, false} {
		zl, sl, sync := New(prod, "warn")
		assert.NotNil(t, zl)
		assert.NotNil(t, sl)
		assert.NotNil(t, sync)
		assert.False(t, zl.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, zl.Core().Enabled(zapcore.WarnLevel))
	}
}
