package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  admin_token: test-token
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "lounge.db", cfg.Database.Path)
	assert.Equal(t, 72, cfg.Auth.SessionTTLHrs)
	assert.Equal(t, 30, cfg.Presence.TimeoutSec)
	assert.Equal(t, 50, cfg.Chat.DefaultLimit)
	assert.Equal(t, 200, cfg.Chat.MaxLimit)
	assert.Equal(t, 2000, cfg.Playback.PollIntervalMs)
	assert.Equal(t, "none", cfg.Storage.Provider)
	assert.Equal(t, "stdout", cfg.Log.Output)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesAdminToken(t *testing.T) {
	path := writeConfig(t, `
auth:
  admin_token: file-token
`)
	t.Setenv("LOUNGE_ADMIN_TOKEN", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Auth.AdminToken)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid minimal config",
			yaml: `
auth:
  admin_token: test-token
`,
			wantErr: false,
		},
		{
			name:    "missing admin token",
			yaml:    `{}`,
			wantErr: true,
		},
		{
			name: "unknown storage provider",
			yaml: `
auth:
  admin_token: test-token
storage:
  provider: ftp
`,
			wantErr: true,
		},
		{
			name: "poll interval too low",
			yaml: `
auth:
  admin_token: test-token
playback:
  poll_interval_ms: 10
`,
			wantErr: true,
		},
		{
			name: "default chat limit above max",
			yaml: `
auth:
  admin_token: test-token
chat:
  default_limit: 150
  max_limit: 100
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			_, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_DurationHelpers(t *testing.T) {
	path := writeConfig(t, `
auth:
  admin_token: test-token
  session_ttl_hours: 2
presence:
  timeout_sec: 45
  sweep_sec: 5
playback:
  poll_interval_ms: 500
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2h0m0s", cfg.SessionTTL().String())
	assert.Equal(t, "45s", cfg.PresenceTimeout().String())
	assert.Equal(t, "5s", cfg.PresenceSweep().String())
	assert.Equal(t, "500ms", cfg.PollInterval().String())
}
