// Package cli implements the command-line interface for twisty.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/settings"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath     string
	configPath string
	dataPath   string
	cubeSize   int
	seed       int64
	verbose    bool

	cfg settings.Config
	log = logrus.New()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "twisty",
	Short: "Twisty puzzle engine",
	Long: `Twisty - play and inspect NxNxN cubes and precomputed twisty puzzles
from the terminal.

Cubes of any size are compiled from their rotation symmetry. Precomputed
puzzles are loaded from JSON or YAML data files. Sessions are saved as move
logs in a local SQLite database and replayed on load.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.twisty/twisty.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.twisty/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Play a precomputed puzzle from a JSON or YAML file")
	rootCmd.PersistentFlags().IntVarP(&cubeSize, "size", "n", 0, "Cube size (default from config, 3)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Scramble seed (0 for random)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// setup loads the config and applies flag overrides.
func setup(cmd *cobra.Command, args []string) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	path := configPath
	if path == "" {
		var err error
		if path, err = settings.DefaultConfigPath(); err != nil {
			return err
		}
	}

	var err error
	cfg, err = settings.LoadConfig(path)
	if err != nil {
		return err
	}
	log.WithField("path", path).Debug("config loaded")

	if cubeSize != 0 {
		cfg.Size = cubeSize
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if dataPath != "" {
		cfg.DataFile = dataPath
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg.Validate()
}
