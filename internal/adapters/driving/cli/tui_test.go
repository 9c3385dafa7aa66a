package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_Short(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, "", "tui", "extra")

	assert.Error(t, err)
}

func TestTUICmd_NeedsTerminal(t *testing.T) {
	newFixture(t, "u1")

	_, err := execute(t, "", "tui")

	assert.ErrorIs(t, err, errNotTerminal)
}

func TestSetTUIConfig(t *testing.T) {
	original := tuiConfig
	defer func() { tuiConfig = original }()

	cfg := &TUIConfig{}
	SetTUIConfig(cfg)

	assert.Same(t, cfg, tuiConfig)
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(nil))
	assert.False(t, isTerminal("stdin"))
}
