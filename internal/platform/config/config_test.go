package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, AuthModeDev, cfg.Auth.Mode)
	assert.False(t, cfg.Workflow.AutoRejectCompeting)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 9090
  write_timeout: 30s
log:
  level: debug
workflow:
  auto_reject_competing: true
auth:
  mode: jwt
  hs256_secret: from-file
`), 0o600))

	cfg, err := load(envOf(map[string]string{
		"CONFIG_FILE":           path,
		"PORT":                  "7070",
		"AUTO_REJECT_COMPETING": "false",
		"REDIS_ADDR":            "localhost:6379",
	}))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTP.Port, "env wins over file")
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout, "defaults survive partial files")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Workflow.AutoRejectCompeting)
	assert.Equal(t, AuthModeJWT, cfg.Auth.Mode)
	assert.Equal(t, "from-file", cfg.Auth.HS256Secret)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "http"}},
		{"port range", map[string]string{"PORT": "70000"}},
		{"bad bool", map[string]string{"AUTO_REJECT_COMPETING": "maybe"}},
		{"unknown auth", map[string]string{"AUTH_MODE": "magic"}},
		{"jwt without keys", map[string]string{"AUTH_MODE": "jwt"}},
		{"odin without key", map[string]string{"AUTH_MODE": "odin", "ODIN_BASE_URL": "http://odin"}},
		{"missing file", map[string]string{"CONFIG_FILE": "/does/not/exist.yaml"}},
		{"ratio", map[string]string{"TRACING_SAMPLE_RATIO": "2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(envOf(tc.env))
			require.Error(t, err)
		})
	}
}
