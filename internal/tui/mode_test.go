package tui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOutputMode(t *testing.T) {
	tests := []struct {
		name    string
		isTTY   bool
		plain   bool
		noColor bool
		force   bool
		want    OutputMode
	}{
		{name: "tty", isTTY: true, want: OutputModeInteractive},
		{name: "pipe", isTTY: false, want: OutputModePlain},
		{name: "plain wins", isTTY: true, plain: true, force: true, want: OutputModePlain},
		{name: "forced on pipe", isTTY: false, force: true, want: OutputModeInteractive},
		{name: "no color", isTTY: true, noColor: true, want: OutputModeStyled},
		{name: "no color on pipe", isTTY: false, noColor: true, want: OutputModePlain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectOutputMode(tt.isTTY, tt.plain, tt.noColor, tt.force))
		})
	}
}

func TestOutputModeString(t *testing.T) {
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
	assert.Equal(t, "unknown", OutputMode(9).String())
}

func TestDetectOutputMode_PlainFlag(t *testing.T) {
	assert.Equal(t, OutputModePlain, DetectOutputMode(true, false, false))
}

func TestDetectOutputModeFor_Buffer(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	require.NoError(t, os.Unsetenv("NO_COLOR"))

	var buf bytes.Buffer
	assert.Equal(t, OutputModePlain, DetectOutputModeFor(&buf, false, false, false))
	assert.Equal(t, OutputModeInteractive, DetectOutputModeFor(&buf, false, false, true))
	assert.False(t, IsTerminal(&buf))
}
