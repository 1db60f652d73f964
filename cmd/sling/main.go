// sling is a gravity-slingshot puzzle game for the terminal.
//
// Usage:
//
//	sling play [level-id]    - Play the campaign
//	sling levels             - List the levels of the pack
//	sling progress           - Browse best results per level
//	sling packs              - List registered level packs
//	sling serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Settings file (default: ~/.sling/sling.yaml or ./configs/sling.yaml)
//	--db <path>      - Progress database (default: ~/.sling/progress.db)
//	--fps <rate>     - Tick rate (default: 60)
//	--levels <dir>   - Load levels from a directory instead of a pack
//	--pack <name>    - Level pack (default: classic)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import packs to register them
	_ "github.com/vovakirdan/gravity-sling/internal/levels/classic"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sling",
	Short: "Gravity Sling - slingshot puzzles in your terminal",
	Long: `Gravity Sling is a physics puzzle: drag back from your ship, release to
launch, and let the planets bend your path into the goal.

Available commands:
  play      - Play the campaign
  levels    - Show the levels of a pack
  progress  - Browse your best results
  packs     - Show registered level packs
  serve     - Start SSH server for remote play

Examples:
  sling play
  sling play 5
  sling play --levels ./my-levels
  sling progress --reset
  sling serve`,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to settings file")
	flags.String("db", "", "Path to progress database")
	flags.Int("fps", 0, "Tick rate (frames per second)")
	flags.String("levels", "", "Directory of level files (overrides --pack)")
	flags.String("pack", "", "Registered level pack")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(packsCmd)
	rootCmd.AddCommand(serveCmd)
}
