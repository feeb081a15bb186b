package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and saved sessions",
	Long:  `Display the active configuration, database location, saved session count and the active session.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	stateFile, err := openStateFile()
	if err != nil {
		return err
	}

	fmt.Println("Twisty Status")
	fmt.Println("=============")
	fmt.Println()

	if cfg.DataFile != "" {
		fmt.Printf("Puzzle: data from %s\n", cfg.DataFile)
	} else {
		fmt.Printf("Puzzle: %dx%dx%d cube\n", cfg.Size, cfg.Size, cfg.Size)
	}
	fmt.Printf("Scramble length: %d\n", cfg.ScrambleLength)
	if cfg.Seed != 0 {
		fmt.Printf("Seed: %d\n", cfg.Seed)
	}
	fmt.Println()

	// Database info
	path := cfg.DBPath
	if path == "" {
		path, _ = storage.DefaultDBPath()
	}
	fmt.Printf("Database: %s\n", path)

	db, err := openDB()
	if err == nil {
		defer db.Close()
		version, _ := db.CurrentVersion()
		fmt.Printf("Schema version: %d\n", version)

		sessions := storage.NewSessionRepository(db)
		if last, _ := sessions.GetLast(); last != nil {
			fmt.Printf("Last session: %s (%s)\n", last.SessionID, last.UpdatedAt.Local().Format(time.RFC3339))
		}
		all, _ := sessions.List(10000)
		fmt.Printf("Total sessions: %d\n", len(all))
	} else {
		fmt.Printf("Database error: %v\n", err)
	}

	fmt.Println()

	// Active session
	if stateFile.HasActiveSession() {
		fmt.Printf("Active session: %s\n", stateFile.ActiveSessionID())
		fmt.Println("  (Use 'twisty play' to continue or 'twisty session load --last' to view)")
	} else {
		fmt.Println("No active session")
	}

	return nil
}
