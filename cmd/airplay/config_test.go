package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alparslanahmed/airplay"
)

func TestParseHost(t *testing.T) {
	tests := []struct {
		target  string
		host    string
		port    int
		wantErr bool
	}{
		{target: "192.168.1.20", host: "192.168.1.20", port: airplay.DefaultPort},
		{target: "192.168.1.20:7100", host: "192.168.1.20", port: 7100},
		{target: "appletv.local", host: "appletv.local", port: airplay.DefaultPort},
		{target: "[fe80::1]:7000", host: "fe80::1", port: 7000},
		{target: "[fe80::1]", host: "fe80::1", port: airplay.DefaultPort},
		{target: "host:abc", wantErr: true},
		{target: "host:70000", wantErr: true},
		{target: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			host, port, err := parseHost(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, host)
			assert.Equal(t, tt.port, port)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airplay.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
host = "192.168.1.20:7000"
name = "Salon"
transition = "Dissolve"
screen_width = 1920
screen_height = 1080
keep_alive_interval = "3s"
stream_interval = "250ms"
log_level = "debug"
`), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20:7000", cfg.Host)
	assert.Equal(t, "Salon", cfg.Name)
	assert.Equal(t, "Dissolve", cfg.Transition)
	assert.Equal(t, 1920, cfg.ScreenWidth)
	assert.Equal(t, 3*time.Second, cfg.KeepAliveInterval.Duration)
	assert.Equal(t, 250*time.Millisecond, cfg.StreamInterval.Duration)
	assert.Equal(t, airplay.DefaultTimeout, cfg.Timeout.Duration, "unset keys keep defaults")
	assert.Equal(t, airplay.DefaultJPEGQuality, cfg.JPEGQuality)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airplay.toml")
	require.NoError(t, os.WriteFile(path, []byte("hots = \"x\"\n"), 0o600))

	_, err := loadConfig(path)
	assert.ErrorContains(t, err, "hots")
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airplay.toml")
	require.NoError(t, os.WriteFile(path, []byte("stream_interval = \"fast\"\n"), 0o600))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestResolvePassword(t *testing.T) {
	dir := t.TempDir()

	cfg := Config{Password: "inline"}
	pw, err := cfg.resolvePassword()
	require.NoError(t, err)
	assert.Equal(t, "inline", pw)

	file := filepath.Join(dir, "pw")
	require.NoError(t, os.WriteFile(file, []byte("from-file\n"), 0o600))
	cfg = Config{Password: "inline", PasswordFile: file}
	pw, err = cfg.resolvePassword()
	require.NoError(t, err)
	assert.Equal(t, "from-file", pw)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))
	cfg = Config{PasswordFile: empty}
	_, err = cfg.resolvePassword()
	assert.Error(t, err)

	cfg = Config{PasswordFile: filepath.Join(dir, "missing")}
	_, err = cfg.resolvePassword()
	assert.Error(t, err)
}
