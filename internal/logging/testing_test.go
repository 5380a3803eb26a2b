package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTestLogger_Assertions(t *testing.T) {
	tl := NewTestLogger()
	ctx := context.Background()

	tl.Debug(ctx, "hook added", zap.String("event", "PreToolUse"), zap.Int("count", 2))

	tl.AssertLogged(t, zapcore.DebugLevel, "hook added")
	tl.AssertNotLogged(t, zapcore.ErrorLevel, "hook added")
	tl.AssertField(t, "hook added", "event", "PreToolUse")
	tl.AssertField(t, "hook added", "count", int64(2))
}

func TestTestLogger_Reset(t *testing.T) {
	tl := NewTestLogger()
	tl.Info(context.Background(), "one")
	assert.Len(t, tl.All(), 1)
	assert.Equal(t, 1, tl.FilterMessage("one").Len())

	tl.Reset()
	assert.Empty(t, tl.All())
}
