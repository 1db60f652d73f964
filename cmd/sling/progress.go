package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gravity-sling/internal/platform/tui"
	"github.com/vovakirdan/gravity-sling/internal/storage"
)

var flagReset bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Browse your best results",
	Long: `Shows your best score, stars, time and fuel for every level of the pack.
Press enter on a level to play it.

Examples:
  sling progress
  sling progress --reset`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear all progress for the pack")
}

func runProgress(cmd *cobra.Command, _ []string) {
	settings := mustLoadSettings(cmd)

	src, err := resolveSource(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}

	if flagReset {
		err := store.ResetProgress(storage.LocalPlayer, src.pack)
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Progress for %s cleared.\n", src.title)
		return
	}

	campaign, err := src.campaign()
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	model, err := tui.NewProgressModel(src.title, campaign.List(), store, storage.LocalPlayer, src.pack, width, height)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading progress: %v\n", err)
		os.Exit(1)
	}

	selected, err := tui.RunProgress(model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if selected != 0 {
		runPlay(cmd, []string{fmt.Sprintf("%d", selected)})
	}
}
