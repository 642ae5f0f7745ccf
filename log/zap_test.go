// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With an unknown level falls back to debug", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(Level(42), buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debug("test debug")
		flushLogger(t, logger)

		entry := decodeEntry(t, buffer.Bytes())
		require.Equal(t, "test debug", entry["msg"])
		require.Equal(t, "debug", entry["level"])
	})
	t.Run("With entries filtered below the configured level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		require.Equal(t, WarningLevel, logger.LogLevel())

		logger.Info("dropped")
		logger.Debugf("dropped %d", 1)
		require.Empty(t, buffer.String())

		logger.Warnf("mailbox %s", "full")
		flushLogger(t, logger)
		entry := decodeEntry(t, buffer.Bytes())
		require.Equal(t, "mailbox full", entry["msg"])
		require.Equal(t, "warn", entry["level"])
	})
	t.Run("With error entries", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Errorf("actor %s failed", "ping")
		flushLogger(t, logger)

		entry := decodeEntry(t, buffer.Bytes())
		require.Equal(t, "actor ping failed", entry["msg"])
		require.Equal(t, "error", entry["level"])
		require.Contains(t, entry, "stacktrace")
	})
	t.Run("With panic entries", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		assert.Panics(t, func() {
			logger.Panicf("service name %s is not unique", "ping")
		})
		entry := decodeEntry(t, buffer.Bytes())
		require.Equal(t, "service name ping is not unique", entry["msg"])
	})
	t.Run("With levels enabled", func(t *testing.T) {
		logger := NewZap(ErrorLevel, new(bytes.Buffer))
		assert.False(t, logger.Enabled(DebugLevel))
		assert.False(t, logger.Enabled(InfoLevel))
		assert.False(t, logger.Enabled(WarningLevel))
		assert.True(t, logger.Enabled(ErrorLevel))
		assert.True(t, logger.Enabled(PanicLevel))
	})
	t.Run("With outputs and std logger", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		require.Len(t, logger.LogOutput(), 1)

		std := logger.StdLogger()
		require.NotNil(t, std)
		std.Print("from std")
		flushLogger(t, logger)
		entry := decodeEntry(t, buffer.Bytes())
		require.Equal(t, "from std", entry["msg"])
	})
}

func TestZapWith(t *testing.T) {
	t.Run("With structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("actor.id", "1234", "actor.type", "*actor.pinger").Info("started")
		flushLogger(t, logger)

		entry := decodeEntry(t, buffer.Bytes())
		require.Equal(t, "started", entry["msg"])
		require.Equal(t, "1234", entry["actor.id"])
		require.Equal(t, "*actor.pinger", entry["actor.type"])
	})
	t.Run("With no fields returns the same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Equal(t, Logger(logger), logger.With())
		assert.Equal(t, Logger(logger), logger.With(1, 2))
	})
	t.Run("With an orphan value and typed values", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With(
			"i", 42,
			"i64", int64(64),
			"u64", uint64(64),
			"b", true,
			"f", 3.14,
			"d", time.Second,
			"err", errors.New("boom"),
			"any", []int{1, 2},
			"orphan",
		).Info("typed")
		flushLogger(t, logger)

		entry := decodeEntry(t, buffer.Bytes())
		for _, key := range []string{"i", "i64", "u64", "b", "f", "d", "err", "any", "_"} {
			require.Contains(t, entry, key)
		}
		require.Equal(t, "1s", entry["d"])
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "WARNING", WarningLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "FATAL", FatalLevel.String())
	assert.Equal(t, "PANIC", PanicLevel.String())
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "INVALID", InvalidLevel.String())
}

func flushLogger(t *testing.T, logger *Zap) {
	t.Helper()
	require.NoError(t, logger.Flush())
}

func decodeEntry(t *testing.T, out []byte) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}
