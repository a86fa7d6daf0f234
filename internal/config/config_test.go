package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "s1gap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("s1gapd", nil, envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "wlan0", cfg.Interface)
	assert.Equal(t, 1, cfg.Channel)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.Persistence)

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeIEEE80211AH, mode)

	caps, err := cfg.LocalCapabilities()
	require.NoError(t, err)
	assert.Equal(t, domain.S1GCapabilities{}, caps)
}

func TestParse_Precedence(t *testing.T) {
	path := writeConfig(t, `
interface: ah0
channel: 17
s1g_oper_channel: 18
log_level: warn
`)
	env := envOf(map[string]string{
		"S1GAP_CONFIG":    path,
		"S1GAP_INTERFACE": "env0",
		"S1GAP_CHANNEL":   "3",
		"S1GAP_ADDR":      ":9090",
		"S1GAP_PERSIST":   "false",
	})

	cfg, err := Parse("s1gapd", []string{"-channel", "37"}, env)
	require.NoError(t, err)

	assert.Equal(t, "ah0", cfg.Interface, "file overrides env")
	assert.Equal(t, 37, cfg.Channel, "flag overrides file")
	assert.Equal(t, 18, cfg.S1GOperChannel)
	assert.Equal(t, ":9090", cfg.Addr, "env kept when file is silent")
	assert.False(t, cfg.Persistence)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
}

func TestParse_DebugFlag(t *testing.T) {
	cfg, err := Parse("s1gapd", []string{"-debug"}, envOf(nil))
	require.NoError(t, err)
	lvl, _ := cfg.Level()
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"hw mode", []string{"-hw-mode", "zz"}},
		{"short capabilities", []string{"-s1g-cap", "0f00"}},
		{"log level", []string{"-log-level", "loud"}},
		{"negative quota", []string{"-max-s1g-records", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("s1gapd", tt.args, envOf(nil))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse("s1gapd", []string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}, envOf(nil))
	assert.Error(t, err)
}
