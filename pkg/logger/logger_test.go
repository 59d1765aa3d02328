package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Logger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(WARNING, &buf)

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	require.NotContains(t, out, "debug 1")
	require.NotContains(t, out, "info 2")
	require.Contains(t, out, "WARN  warn 3")
	require.Contains(t, out, "ERROR error 4")
}

func Test_Logger_Silence(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(SILENCE, &buf)

	l.Errorf("should not appear")
	require.Empty(t, buf.String())
}

func Test_Logger_LevelPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(DEBUG, &buf)

	l.Infof("hello %s", "world")
	require.True(t, strings.HasPrefix(buf.String(), "INFO  hello world"))
}
