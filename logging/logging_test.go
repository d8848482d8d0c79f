package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringToLogLevel(t *testing.T) {
	level, err := StringToLogLevel("warn")
	require.Nil(t, err)
	require.Equal(t, WarnLevel, level)
	_, err = StringToLogLevel("loud")
	require.NotNil(t, err)
}

func TestLoggerThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, InfoLevel)
	logger.Debugf("hidden %d", 1)
	require.Equal(t, 0, buf.Len())
	logger.Infof("shown %d", 2)
	require.Contains(t, buf.String(), "[INFO] shown 2")
	require.False(t, Discard().Enabled(FatalLevel))
}
