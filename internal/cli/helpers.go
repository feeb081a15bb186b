package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/render"
	"github.com/SeamusWaldron/twisty/internal/settings"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

// stripWidth is the row width used to draw puzzles without a cube net.
const stripWidth = 9

// newPuzzle builds the configured puzzle: a data file when one is set,
// otherwise a cube of the configured size.
func newPuzzle() (*twisty.Puzzle, error) {
	opts := []twisty.Option{twisty.WithLogger(log)}
	if cfg.Seed != 0 {
		opts = append(opts, twisty.WithSeed(cfg.Seed))
	}

	if cfg.DataFile != "" {
		p, err := twisty.FromDataFile(cfg.DataFile, opts...)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.DataFile).Debug("puzzle data loaded")
		return p, nil
	}
	return twisty.NewCube(cfg.Size, opts...)
}

// openDB opens the configured database and applies migrations.
func openDB() (*storage.DB, error) {
	var db *storage.DB
	var err error

	if cfg.DBPath == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(cfg.DBPath)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func openStateFile() (*settings.StateFile, error) {
	sf, err := settings.NewDefaultStateFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return sf, nil
}

// drawPuzzle renders the current state of p.
func drawPuzzle(p *twisty.Puzzle, marks render.Marks) string {
	grid := render.ForModel(p.Model(), stripWidth)
	return render.NewPainter(p.Model().Palette).Render(grid, p.Snapshot().Colors, marks)
}

// fingerprint returns the hex digest of the current state.
func fingerprint(p *twisty.Puzzle) string {
	fp := p.Snapshot().Fingerprint()
	return hex.EncodeToString(fp[:])
}

// describe summarizes the puzzle and its history on a few lines.
func describe(p *twisty.Puzzle) string {
	var b strings.Builder
	h := p.History()
	state := "scrambled"
	if p.IsSolved() {
		state = "solved"
	}
	fmt.Fprintf(&b, "Puzzle: %s (%d facets, %d moves)\n", p.Model().Name, p.FacetCount(), p.MoveCount())
	fmt.Fprintf(&b, "State: %s\n", state)
	if len(h.Initial) > 0 {
		fmt.Fprintf(&b, "Scramble: %s\n", p.FormatMoves(h.Initial))
	}
	if len(h.Undo) > 0 {
		fmt.Fprintf(&b, "Moves: %s\n", p.FormatMoves(h.Undo))
	}
	return b.String()
}
