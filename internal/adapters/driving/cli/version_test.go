package cli

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/config"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	original := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = original })
}

func stubVersion(t *testing.T, v string) {
	t.Helper()
	original := version
	version = v
	t.Cleanup(func() { version = original })
}

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_PrintsBuildDetails(t *testing.T) {
	stubVersion(t, "1.2.0")
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.24.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-10-01T09:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, true)

	out, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.Contains(t, out, "ideapad version 1.2.0")
	assert.Contains(t, out, "commit:  0123456789ab (modified)")
	assert.Contains(t, out, "built:   2026-10-01T09:00:00Z")
	assert.Contains(t, out, "go:      go1.24.0")
	assert.Contains(t, out, "backend: "+config.DefaultBackendURL)
}

func TestVersionCmd_WithoutBuildInfo(t *testing.T) {
	stubVersion(t, "dev")
	stubBuildInfo(t, nil, false)

	out, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.Contains(t, out, "ideapad version dev")
	assert.NotContains(t, out, "commit:")
	assert.NotContains(t, out, "go:")
}

func TestVersionCmd_ConfiguredBackend(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{GoVersion: "go1.24.0"}, true)
	cfg := config.Defaults()
	cfg.BackendURL = "https://ideas.example.com/project2025"
	SetConfig(cfg, nil)
	t.Cleanup(func() { SetConfig(nil, nil) })

	out, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.Contains(t, out, "backend: https://ideas.example.com/project2025")
	assert.NotContains(t, out, "commit:")
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, "", "version", "extra")

	assert.Error(t, err)
}
