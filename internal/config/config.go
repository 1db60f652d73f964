// Package config loads sling settings from defaults, an optional YAML file
// and SLING_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// VFX quality levels.
const (
	VFXLow    = "low"
	VFXMedium = "medium"
	VFXHigh   = "high"
)

// Settings is the decoded configuration.
type Settings struct {
	TickRate     int              `mapstructure:"tick_rate"`
	DBPath       string           `mapstructure:"db_path"`
	LevelsDir    string           `mapstructure:"levels_dir"`
	Pack         string           `mapstructure:"pack"`
	Viewport     ViewportSettings `mapstructure:"viewport"`
	LogLevel     string           `mapstructure:"log_level"`
	LogFile      string           `mapstructure:"log_file"`
	VFXQuality   string           `mapstructure:"vfx_quality"`
	ReduceMotion bool             `mapstructure:"reduce_motion"`
	Volume       float64          `mapstructure:"volume"`
	Ambient      bool             `mapstructure:"ambient"`
	Telemetry    bool             `mapstructure:"telemetry"`
	SSH          SSHSettings      `mapstructure:"ssh"`
}

// ViewportSettings is the level-space canvas size.
type ViewportSettings struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// SSHSettings configures `sling serve`.
type SSHSettings struct {
	Address     string        `mapstructure:"address"`
	HostKey     string        `mapstructure:"host_key"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// New returns a viper instance with every default set and environment
// lookup enabled.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("tick_rate", 60)
	v.SetDefault("db_path", "~/.sling/progress.db")
	v.SetDefault("levels_dir", "")
	v.SetDefault("pack", "classic")
	v.SetDefault("viewport.width", 960)
	v.SetDefault("viewport.height", 600)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "~/.sling/sling.log")
	v.SetDefault("vfx_quality", VFXHigh)
	v.SetDefault("reduce_motion", false)
	v.SetDefault("volume", 0.8)
	v.SetDefault("ambient", true)
	v.SetDefault("telemetry", false)
	v.SetDefault("ssh.address", ":23234")
	v.SetDefault("ssh.host_key", "")
	v.SetDefault("ssh.idle_timeout", "30m")

	v.SetEnvPrefix("SLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads settings into a fresh viper instance.
// Search order: path (must exist if given) -> ~/.sling/sling.yaml -> ./configs/sling.yaml.
// A missing file in the search paths is not an error.
func Load(path string) (Settings, error) {
	return LoadInto(New(), path)
}

// LoadInto reads settings using v, which callers may have bound flags to.
func LoadInto(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sling")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".sling"))
		}
		v.AddConfigPath("configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: cannot decode settings: %w", err)
	}
	return s, nil
}

// Validate rejects settings the game cannot run with.
func (s Settings) Validate() error {
	if s.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", s.TickRate)
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("config: viewport must be positive, got %gx%g", s.Viewport.Width, s.Viewport.Height)
	}
	switch s.VFXQuality {
	case VFXLow, VFXMedium, VFXHigh:
	default:
		return fmt.Errorf("config: unknown vfx_quality %q", s.VFXQuality)
	}
	if s.Volume < 0 || s.Volume > 1 {
		return fmt.Errorf("config: volume must be within [0, 1], got %g", s.Volume)
	}
	return nil
}

// TrailLength is the number of trail samples kept for the VFX quality.
func (s Settings) TrailLength() int {
	switch s.VFXQuality {
	case VFXLow:
		return 20
	case VFXMedium:
		return 36
	default:
		return 60
	}
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
