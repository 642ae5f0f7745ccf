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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSplitWriteSyncers(t *testing.T) {
	file := createTempLogFile(t)
	defer file.Close()

	immediate, files := splitWriteSyncers(new(bytes.Buffer), os.Stdout, file)
	require.Len(t, immediate, 2)
	require.Len(t, files, 1)
}

func TestIsStdStream(t *testing.T) {
	file := createTempLogFile(t)
	defer file.Close()

	assert.True(t, isStdStream(os.Stdout))
	assert.True(t, isStdStream(os.Stderr))
	assert.False(t, isStdStream(file))
	assert.False(t, isStdStream(nil))
}

func TestNewZapCore(t *testing.T) {
	t.Run("With no file output nothing is buffered", func(t *testing.T) {
		core, buffered := newZapCore(zapcore.InfoLevel, nil, nil)
		require.NotNil(t, core)
		require.Nil(t, buffered)
	})
	t.Run("With a file output low levels are buffered", func(t *testing.T) {
		file := createTempLogFile(t)
		defer file.Close()

		immediate, files := splitWriteSyncers(file)
		core, buffered := newZapCore(zapcore.InfoLevel, immediate, files)
		require.NotNil(t, core)
		require.NotNil(t, buffered)
		require.NoError(t, buffered.Stop())
	})
	t.Run("With error level nothing is buffered", func(t *testing.T) {
		file := createTempLogFile(t)
		defer file.Close()

		immediate, files := splitWriteSyncers(file)
		_, buffered := newZapCore(zapcore.ErrorLevel, immediate, files)
		require.Nil(t, buffered)
	})
}

func TestZapFlush(t *testing.T) {
	t.Run("With an in-memory writer", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		logger.Info("msg")
		require.NoError(t, logger.Flush())
	})
	t.Run("With a file writer", func(t *testing.T) {
		file := createTempLogFile(t)
		defer file.Close()

		logger := NewZap(InfoLevel, file)
		require.NotNil(t, logger.buffered)
		logger.Info("msg")
		require.NoError(t, logger.Flush())

		content, err := os.ReadFile(file.Name())
		require.NoError(t, err)
		require.Contains(t, string(content), `"msg":"msg"`)
	})
}

func createTempLogFile(t *testing.T) *os.File {
	t.Helper()

	file, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)

	return file
}
