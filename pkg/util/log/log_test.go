package log

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/require"
)

func TestSetLoggerAddsTimestampAndCaller(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.NewLogfmtLogger(&buf))

	require.NoError(t, Logger.Log("msg", "hello"))
	require.Contains(t, buf.String(), "msg=hello")
	require.Contains(t, buf.String(), "ts=")
	require.Contains(t, buf.String(), "caller=")
}

func TestSetLevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	Logger = log.NewLogfmtLogger(&buf)
	require.NoError(t, SetLevel("warn"))

	require.NoError(t, level.Info(Logger).Log("msg", "suppressed"))
	require.Empty(t, buf.String())

	require.NoError(t, level.Warn(Logger).Log("msg", "shown"))
	require.Contains(t, buf.String(), "msg=shown")
}

func TestSetLevelRejectsUnknownName(t *testing.T) {
	err := SetLevel("verbose")
	require.Error(t, err)
}
