package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"lexvault/internal/logging"
)

func TestLevels(t *testing.T) {
	color.NoColor = true

	var out, errOut bytes.Buffer
	l := &logging.Logger{Out: &out, Err: &errOut}

	l.Infof("hidden %d", 1)
	l.Debugf("hidden %d", 2)
	l.Warnf("careful %s", "now")
	l.Errorf("broken")
	assert.Empty(t, out.String())
	assert.Equal(t, "[warn] careful now\n[error] broken\n", errOut.String())

	l.Verbose = true
	l.Infof("shown")
	assert.Equal(t, "[info] shown\n", out.String())

	out.Reset()
	l.Debug = true
	l.Debugf("detail %q", "x")
	assert.True(t, strings.HasPrefix(out.String(), "[debug] "))
}

func TestNewDebugImpliesVerbose(t *testing.T) {
	l := logging.New(false, true)
	assert.True(t, l.Verbose)
	assert.True(t, l.Debug)
}

func TestNilLoggerIsSilentForInfo(t *testing.T) {
	var l *logging.Logger
	assert.NotPanics(t, func() { l.Infof("x"); l.Debugf("y") })
}
