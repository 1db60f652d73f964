package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 60, s.TickRate)
	assert.Equal(t, "~/.sling/progress.db", s.DBPath)
	assert.Equal(t, "", s.LevelsDir)
	assert.Equal(t, "classic", s.Pack)
	assert.Equal(t, 960.0, s.Viewport.Width)
	assert.Equal(t, 600.0, s.Viewport.Height)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, VFXHigh, s.VFXQuality)
	assert.False(t, s.ReduceMotion)
	assert.Equal(t, 0.8, s.Volume)
	assert.True(t, s.Ambient)
	assert.False(t, s.Telemetry)
	assert.Equal(t, ":23234", s.SSH.Address)
	assert.Equal(t, 30*time.Minute, s.SSH.IdleTimeout)
	assert.NoError(t, s.Validate())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `
tick_rate: 30
pack: custom
viewport:
  width: 1280
vfx_quality: low
reduce_motion: true
ssh:
  address: ":2222"
  idle_timeout: 5m
`
	path := filepath.Join(dir, "sling.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, s.TickRate)
	assert.Equal(t, "custom", s.Pack)
	assert.Equal(t, 1280.0, s.Viewport.Width)
	assert.Equal(t, 600.0, s.Viewport.Height)
	assert.Equal(t, VFXLow, s.VFXQuality)
	assert.True(t, s.ReduceMotion)
	assert.Equal(t, ":2222", s.SSH.Address)
	assert.Equal(t, 5*time.Minute, s.SSH.IdleTimeout)
	assert.Equal(t, 20, s.TrailLength())
}

func TestLoad_SearchPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "sling.yaml"), []byte("volume: 0.25\n"), 0o644))

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.25, s.Volume)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SLING_TICK_RATE", "120")
	t.Setenv("SLING_VIEWPORT_HEIGHT", "700")
	t.Setenv("SLING_SSH_ADDRESS", "127.0.0.1:9000")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 120, s.TickRate)
	assert.Equal(t, 700.0, s.Viewport.Height)
	assert.Equal(t, "127.0.0.1:9000", s.SSH.Address)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("/nonexistent/path/sling.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sling.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: [1, 2\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	base := func() Settings {
		return Settings{
			TickRate:   60,
			Viewport:   ViewportSettings{Width: 960, Height: 600},
			VFXQuality: VFXMedium,
			Volume:     0.5,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
		errMsg string
	}{
		{"valid", func(*Settings) {}, ""},
		{"zero tick rate", func(s *Settings) { s.TickRate = 0 }, "tick_rate"},
		{"negative viewport", func(s *Settings) { s.Viewport.Width = -1 }, "viewport"},
		{"unknown vfx", func(s *Settings) { s.VFXQuality = "ultra" }, "vfx_quality"},
		{"loud", func(s *Settings) { s.Volume = 1.5 }, "volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(&s)
			err := s.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTrailLength(t *testing.T) {
	assert.Equal(t, 20, Settings{VFXQuality: VFXLow}.TrailLength())
	assert.Equal(t, 36, Settings{VFXQuality: VFXMedium}.TrailLength())
	assert.Equal(t, 60, Settings{VFXQuality: VFXHigh}.TrailLength())
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".sling", "x.db"), ExpandPath("~/.sling/x.db"))
	assert.Equal(t, "/abs/x.db", ExpandPath("/abs/x.db"))
	assert.Equal(t, "", ExpandPath(""))
}
