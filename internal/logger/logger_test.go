package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetInitializesLazily(t *testing.T) {
	globalLogger = nil

	l := Get()
	assert.NotNil(t, l)
	assert.Same(t, l, Get())
}

func TestInitHonorsLevel(t *testing.T) {
	t.Setenv("BRISA_LOG_LEVEL", "error")
	Init()

	assert.False(t, Get().Core().Enabled(zap.InfoLevel))
	assert.True(t, Get().Core().Enabled(zap.ErrorLevel))
}

func TestSet(t *testing.T) {
	core, obs := observer.New(zap.InfoLevel)
	Set(zap.New(core))
	t.Cleanup(func() { globalLogger = nil })

	Get().Info("hello", zap.String("who", "brisa"))

	entries := obs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "hello", entries[0].Message)
		assert.Equal(t, "brisa", entries[0].ContextMap()["who"])
	}
}
