package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-sling/internal/registry"
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List registered level packs",
	Long:  `Shows every level pack built into sling.`,
	Args:  cobra.NoArgs,
	Run:   runPacks,
}

func runPacks(_ *cobra.Command, _ []string) {
	packs := registry.List()

	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return
	}

	fmt.Println("Available packs:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, p := range packs {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Title")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----")

	for _, p := range packs {
		fmt.Printf("  %-*s  %s\n", maxNameLen, p.Name, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'sling play --pack <name>' to play a pack.")
}
