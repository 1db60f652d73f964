package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-sling/internal/config"
	"github.com/vovakirdan/gravity-sling/internal/level"
	"github.com/vovakirdan/gravity-sling/internal/registry"
)

// flagKeys maps global flags to the settings keys they override.
var flagKeys = map[string]string{
	"db":     "db_path",
	"fps":    "tick_rate",
	"levels": "levels_dir",
	"pack":   "pack",
}

// loadSettings reads the settings file and environment, with any global
// flags the user set taking precedence.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	v := config.New()
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
			return config.Settings{}, fmt.Errorf("config: cannot bind --%s: %w", flag, err)
		}
	}

	s, err := config.LoadInto(v, flagConfig)
	if err != nil {
		return config.Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

// mustLoadSettings is loadSettings for command handlers.
func mustLoadSettings(cmd *cobra.Command) config.Settings {
	s, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

// levelSource is where a command reads levels from.
type levelSource struct {
	pack  string // progress key
	title string
	open  func() (level.Source, error)
}

// resolveSource picks the levels directory if one is set, else the pack.
func resolveSource(s config.Settings) (levelSource, error) {
	if s.LevelsDir != "" {
		dir, err := filepath.Abs(config.ExpandPath(s.LevelsDir))
		if err != nil {
			return levelSource{}, fmt.Errorf("cannot resolve levels directory: %w", err)
		}
		return levelSource{
			pack:  "dir:" + dir,
			title: filepath.Base(dir),
			open: func() (level.Source, error) {
				return level.NewDirLoader(dir), nil
			},
		}, nil
	}

	if !registry.Exists(s.Pack) {
		return levelSource{}, fmt.Errorf("registry: unknown pack %q (run 'sling packs')", s.Pack)
	}
	title := s.Pack
	for _, p := range registry.List() {
		if p.Name == s.Pack {
			title = p.Title
		}
	}
	name := s.Pack
	return levelSource{
		pack:  name,
		title: title,
		open: func() (level.Source, error) {
			return registry.Open(name)
		},
	}, nil
}

// campaign loads every level of the source.
func (ls levelSource) campaign() (*level.Campaign, error) {
	src, err := ls.open()
	if err != nil {
		return nil, err
	}
	return level.NewCampaign(src)
}

// newLogger builds a logger at the configured level. Unknown levels fall
// back to info with a warning.
func newLogger(w io.Writer, prefix, levelName string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	lvl, err := log.ParseLevel(levelName)
	if err != nil {
		logger.Warn("unknown log level, using info", "log_level", levelName)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// openLogFile opens the log file for append, creating its directory.
func openLogFile(path string) (*os.File, error) {
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
