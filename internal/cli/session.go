package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/render"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var (
	sessionName     string
	sessionMoves    string
	sessionScramble int
	sessionLast     bool
	sessionLimit    int
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage saved sessions",
	Long:  `Save, load, list and delete puzzle sessions stored in the local database.`,
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a new session",
	Long: `Build a puzzle, optionally scramble it and apply moves, then save it.

Examples:
  twisty session save --name practice --scramble 25
  twisty session save -n 4 --moves "R U R' U'"`,
	RunE: runSessionSave,
}

var sessionLoadCmd = &cobra.Command{
	Use:   "load [session_id]",
	Short: "Replay a saved session",
	Long: `Replay the history of a saved session, verify it reproduces the saved
state and make it the active session.

Examples:
  twisty session load --last
  twisty session load 5f0c...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessionLoad,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	RunE:  runSessionList,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <session_id>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionSaveCmd, sessionLoadCmd, sessionListCmd, sessionDeleteCmd)

	sessionSaveCmd.Flags().StringVar(&sessionName, "name", "", "Session name")
	sessionSaveCmd.Flags().StringVar(&sessionMoves, "moves", "", "Moves to apply, in face-turn notation")
	sessionSaveCmd.Flags().IntVar(&sessionScramble, "scramble", 0, "Scramble with this many moves first")

	sessionLoadCmd.Flags().BoolVar(&sessionLast, "last", false, "Load the most recent session")

	sessionListCmd.Flags().IntVar(&sessionLimit, "limit", 0, "Maximum sessions to list (default from config)")
}

// saveSession stores the puzzle as a new session, or overwrites sessionID
// when it is set. It returns the session ID.
func saveSession(db *storage.DB, p *twisty.Puzzle, sessionID, name string) (string, error) {
	history, err := p.Serialize()
	if err != nil {
		return "", err
	}

	s := &storage.Session{
		SessionID:   sessionID,
		Puzzle:      p.Model().Name,
		Size:        p.Model().Size,
		HistoryJSON: string(history),
		Fingerprint: fingerprint(p),
		MoveCount:   p.MoveHistoryLen(),
		Solved:      p.IsSolved(),
	}
	if name != "" {
		s.Name = &name
	}

	sessions := storage.NewSessionRepository(db)
	if sessionID == "" {
		if _, err := sessions.Create(s); err != nil {
			return "", err
		}
	} else if err := sessions.Update(s); err != nil {
		return "", err
	}

	undo := p.History().Undo
	notations := make([]string, len(undo))
	for i, id := range undo {
		notations[i] = p.FormatMoves([]int{id})
	}
	if err := storage.NewMoveRepository(db).Replace(s.SessionID, undo, notations); err != nil {
		return "", err
	}

	log.WithField("session", s.SessionID).Debug("session saved")
	return s.SessionID, nil
}

// loadSession replays a saved session into a fresh puzzle and checks the
// result against the saved fingerprint.
func loadSession(s *storage.Session) (*twisty.Puzzle, error) {
	if cfg.DataFile == "" && strings.HasPrefix(s.Puzzle, "cube") {
		cfg.Size = s.Size
	}
	p, err := newPuzzle()
	if err != nil {
		return nil, err
	}
	if p.Model().Name != s.Puzzle {
		return nil, fmt.Errorf("session %s is for %s, not %s", s.SessionID, s.Puzzle, p.Model().Name)
	}
	if err := p.Deserialize([]byte(s.HistoryJSON)); err != nil {
		return nil, err
	}
	if got := fingerprint(p); got != s.Fingerprint {
		return nil, fmt.Errorf("session %s replays to %s, saved as %s", s.SessionID, got[:12], s.Fingerprint)
	}
	return p, nil
}

func runSessionSave(cmd *cobra.Command, args []string) error {
	p, err := newPuzzle()
	if err != nil {
		return err
	}
	p.Scramble(sessionScramble)
	if sessionMoves != "" {
		if err := p.ApplyNotation(sessionMoves); err != nil {
			return err
		}
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := saveSession(db, p, "", sessionName)
	if err != nil {
		return err
	}

	sf, err := openStateFile()
	if err != nil {
		return err
	}
	if err := sf.SetActiveSession(id); err != nil {
		return err
	}

	fmt.Printf("Saved session: %s\n", id)
	return nil
}

func runSessionLoad(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !sessionLast {
		return fmt.Errorf("specify a session ID or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := storage.NewSessionRepository(db)
	var s *storage.Session
	if sessionLast {
		s, err = sessions.GetLast()
	} else {
		s, err = sessions.Get(args[0])
	}
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("session not found")
	}

	p, err := loadSession(s)
	if err != nil {
		return err
	}

	sf, err := openStateFile()
	if err != nil {
		return err
	}
	if err := sf.SetActiveSession(s.SessionID); err != nil {
		return err
	}

	fmt.Printf("Session: %s\n", s.SessionID)
	if s.Name != nil {
		fmt.Printf("Name: %s\n", *s.Name)
	}
	fmt.Printf("Saved: %s\n\n", s.UpdatedAt.Local().Format(time.RFC3339))
	fmt.Print(drawPuzzle(p, render.NoMarks))
	fmt.Println()
	fmt.Print(describe(p))
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	limit := sessionLimit
	if limit == 0 {
		limit = cfg.ListLimit
	}
	list, err := storage.NewSessionRepository(db).List(limit)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No sessions saved")
		return nil
	}

	fmt.Printf("%-36s  %-8s  %-6s  %-7s  %-20s  %s\n", "ID", "PUZZLE", "MOVES", "SOLVED", "SAVED", "NAME")
	for _, s := range list {
		name := ""
		if s.Name != nil {
			name = *s.Name
		}
		solved := "no"
		if s.Solved {
			solved = "yes"
		}
		fmt.Printf("%-36s  %-8s  %-6d  %-7s  %-20s  %s\n",
			s.SessionID, s.Puzzle, s.MoveCount, solved,
			s.UpdatedAt.Local().Format("2006-01-02 15:04:05"), name)
	}
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewSessionRepository(db).Delete(args[0]); err != nil {
		return err
	}

	sf, err := openStateFile()
	if err != nil {
		return err
	}
	if sf.ActiveSessionID() == args[0] {
		if err := sf.ClearActiveSession(); err != nil {
			return err
		}
	}

	fmt.Printf("Deleted session: %s\n", args[0])
	return nil
}
