package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-sling/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of the pack",
	Long: `Shows every level of the selected pack (or --levels directory) with
your best score and stars.

Examples:
  sling levels
  sling levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) {
	settings := mustLoadSettings(cmd)

	src, err := resolveSource(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	campaign, err := src.campaign()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	// Best results are optional
	best := map[int]storage.Best{}
	if store, err := storage.Open(settings.DBPath); err == nil {
		if b, err := store.AllBest(storage.LocalPlayer, src.pack); err == nil {
			best = b
		}
		store.Close()
	}

	levels := campaign.List()
	fmt.Printf("%s (%d levels)\n", src.title, len(levels))
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, l := range levels {
		if len(l.Name) > maxNameLen {
			maxNameLen = len(l.Name)
		}
	}

	fmt.Printf("  %-4s  %-*s  %-6s  %-5s  %-6s  %s\n", "ID", maxNameLen, "Name", "Bodies", "Items", "Best", "Stars")
	fmt.Printf("  %-4s  %-*s  %-6s  %-5s  %-6s  %s\n", "--", maxNameLen, "----", "------", "-----", "----", "-----")

	for _, l := range levels {
		score, stars := "-", ""
		if b, ok := best[l.ID]; ok && b.Completed {
			score = fmt.Sprintf("%d", b.Score)
			stars = strings.Repeat("*", b.Stars)
		}
		fmt.Printf("  %-4d  %-*s  %-6d  %-5d  %-6s  %s\n", l.ID, maxNameLen, l.Name, l.Bodies, l.Collectibles, score, stars)
	}

	fmt.Println()
	fmt.Println("Run 'sling play <id>' to play a level.")
}
