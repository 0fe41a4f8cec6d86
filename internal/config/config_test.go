package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, used, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, used)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, cfg.Debounced())
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_FromFile(t *testing.T) {
	path := writeFile(t, `
endpoint = "http://127.0.0.1:8080/answer/search"
trigger = "submit"
debounce = "250ms"
timeout = "3s"
retries = 2
strict_errno = true
log_level = "debug"

[ui]
placeholder = "type here"
show_notice = false
`)

	cfg, used, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, &Config{
		Endpoint:    "http://127.0.0.1:8080/answer/search",
		Trigger:     TriggerSubmit,
		Debounce:    250 * time.Millisecond,
		Timeout:     3 * time.Second,
		Retries:     2,
		StrictErrno: true,
		LogFile:     "qalookup.log",
		LogLevel:    "debug",
		UI: UISettings{
			Placeholder: "type here",
			ShowNotice:  false,
		},
	}, cfg)
	assert.False(t, cfg.Debounced())
}

func TestLoad_EnvAndFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, `
endpoint = "http://file.example/search"
trigger = "submit"
debounce = "1s"
`)
	t.Setenv("QALOOKUP_ENDPOINT", "http://env.example/search")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("trigger", "", "")
	flags.Duration("debounce", 0, "")
	require.NoError(t, flags.Parse([]string{"--trigger=input", "--debounce=300ms"}))

	cfg, _, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example/search", cfg.Endpoint)
	assert.Equal(t, TriggerInput, cfg.Trigger)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown trigger",
			content: `trigger = "hover"`,
			wantErr: "trigger",
		},
		{
			name:    "endpoint is not a url",
			content: `endpoint = "not a url"`,
			wantErr: "endpoint",
		},
		{
			name:    "zero timeout",
			content: `timeout = "0s"`,
			wantErr: "timeout",
		},
		{
			name:    "too many retries",
			content: `retries = 9`,
			wantErr: "retries",
		},
		{
			name:    "broken toml",
			content: `endpoint = `,
			wantErr: "failed to read config file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeFile(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveToPath_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := DefaultConfig()
	want.Trigger = TriggerSubmit
	want.Debounce = 750 * time.Millisecond
	want.Retries = 1
	require.NoError(t, SaveToPath(want, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `debounce = '750ms'`)

	got, used, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, want, got)
}
