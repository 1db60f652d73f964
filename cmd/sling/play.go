package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gravity-sling/internal/core"
	"github.com/vovakirdan/gravity-sling/internal/platform/tui"
	"github.com/vovakirdan/gravity-sling/internal/sling"
	"github.com/vovakirdan/gravity-sling/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play the campaign",
	Long: `Start playing. Without a level id, play resumes at the first level
you have not finished with three stars.

Controls:
  Mouse drag     - Drag back from the ship and release to launch
  W/A/S/D/arrows - Burn (after launch)
  Space          - Soft upward burn
  P/Esc          - Pause
  R              - Restart level
  N              - Next level (after a win)
  ?              - Toggle help
  Ctrl+S         - Save screenshot
  Q/Ctrl+C       - Quit

Examples:
  sling play
  sling play 7
  sling play --levels ./my-levels 1`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	settings := mustLoadSettings(cmd)

	startID := 0
	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			fmt.Fprintf(os.Stderr, "Error: invalid level id %q\n", args[0])
			os.Exit(1)
		}
		startID = id
	}

	src, err := resolveSource(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := openLogFile(settings.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "sling", settings.LogLevel)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open progress storage
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		logger.Warn("could not open progress database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	var cues sling.CueSink
	meter := startTelemetry(settings, logger)
	if meter != nil {
		cues = meter
	}

	runErr := tui.Run(tui.Options{
		Open:     src.campaign,
		Pack:     src.pack,
		Player:   storage.LocalPlayer,
		StartID:  startID,
		Store:    store,
		Settings: settings,
		Screen: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: settings.TickRate,
		},
		Cues:   cues,
		Logger: logger,
	})

	stopTelemetry(meter, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("play failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
