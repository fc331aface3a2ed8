package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablekit/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, config.ConfigFileName)

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file: "+path)
	assert.FileExists(t, path)

	_, _, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "elsewhere.yaml")

	_, _, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Output, cfg.Output)
}

func TestConfigSetGet(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := execute(t, "config", "set", "output.page_size", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Set output.page_size = 25")

	cfg, err := config.Load(filepath.Join(home, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Output.PageSize)

	config.ResetGlobalConfigForTest()
	out, _, err = execute(t, "config", "get", "output.page_size")
	require.NoError(t, err)
	assert.Equal(t, "25\n", out)
}

func TestConfigSet_DoesNotPersistEnvOverrides(t *testing.T) {
	home := setupCLITest(t)
	t.Setenv(config.EnvOutputFormat, "json")

	_, _, err := execute(t, "config", "set", "theme.mode", "dark")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, config.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_format: table")
	assert.Contains(t, string(data), "mode: dark")
}

func TestConfigSet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "unknown key", key: "output.colour", value: "x", wantErr: config.ErrUnknownKey},
		{name: "zero page size", key: "output.page_size", value: "0", wantErr: config.ErrInvalidPageSize},
		{name: "bad page size options", key: "output.page_size_options", value: "5,x", wantErr: config.ErrInvalidPageSize},
		{name: "bad format", key: "output.default_format", value: "xml", wantErr: config.ErrInvalidOutputFormat},
		{name: "bad theme", key: "theme.mode", value: "sepia", wantErr: config.ErrInvalidTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setupCLITest(t)
			_, _, err := execute(t, "config", "set", tt.key, tt.value)
			require.ErrorIs(t, err, tt.wantErr)
			assert.NoFileExists(t, filepath.Join(home, config.ConfigFileName))
		})
	}
}

func TestConfigGet_UnknownKey(t *testing.T) {
	setupCLITest(t)
	_, _, err := execute(t, "config", "get", "nope")
	require.ErrorIs(t, err, config.ErrUnknownKey)
	assert.Contains(t, err.Error(), "output.page_size")
}

func TestConfigList(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "config", "list")
	require.NoError(t, err)
	for _, key := range config.Keys() {
		assert.Contains(t, out, key)
	}
	assert.Regexp(t, `output\.page_size\s+10\n`, out)
	assert.Regexp(t, `output\.page_size_options\s+5,10,25,50\n`, out)
}

func TestConfigValidate(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Page size: 10")
	assert.Contains(t, out, "Theme: light")
}

func TestConfigValidate_Invalid(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvOutputFormat, "xml")

	_, _, err := execute(t, "config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidOutputFormat)
}

func TestConfigFlag_UnreadableFile(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [\n"), 0o600))

	_, _, err := execute(t, "--config", path, "datasets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestConfigValidate_ProjectOverlay(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ProjectFileName),
		[]byte("output:\n  page_size: 7\n"), 0o600))
	t.Chdir(dir)

	out, _, err := execute(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Page size: 7")
	assert.Contains(t, out, "Overlay: "+filepath.Join(dir, config.ProjectFileName)+" (output)")

	// config set writes the user file only.
	_, _, err = execute(t, "config", "set", "theme.mode", "dark")
	require.NoError(t, err)
	cfg, err := config.Load(config.GetGlobalConfig().Path())
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Output.PageSize)
}

func TestConfigValidate_InvalidProjectOverlaySkipped(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	overlay := filepath.Join(dir, config.ProjectFileName)
	require.NoError(t, os.WriteFile(overlay,
		[]byte("output:\n  page_size: 7\nlogging:\n  level: [not, a, string]\n"), 0o600))
	t.Chdir(dir)

	out, _, err := execute(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Page size: 10")
	assert.Contains(t, out, "Skipped overlay: "+overlay)
	assert.NotContains(t, out, "Overlay: "+overlay+" (")
}
