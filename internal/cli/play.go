package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/render"
	"github.com/SeamusWaldron/twisty/internal/settings"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var playNew bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive puzzle mode",
	Long: `Start an interactive TUI for playing a puzzle.

Select a facet and then a second facet to drag it to; the move that best
explains the drag is played.

Keyboard shortcuts:
  arrows/hjkl - Move the cursor
  space/enter - Pick the facet to drag from, then the facet to drag to
  esc         - Cancel the pick
  u / r       - Undo / redo
  s           - Scramble
  x           - Reset to solved
  w           - Save the session
  q           - Quit

The active session is resumed unless --new is given.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playNew, "new", false, "Start a fresh puzzle instead of resuming the active session")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// recentMoves is how many moves the TUI shows.
const recentMoves = 20

// Messages
type savedMsg struct{ id string }
type errMsg struct{ err error }

// Model
type playModel struct {
	puzzle  *twisty.Puzzle
	grid    *render.Grid
	painter *render.Painter

	// Cursor cell and the facet picked as the drag start
	row, col int
	selected int

	// Persistence, nil when running without a database
	db        *storage.DB
	stateFile *settings.StateFile
	sessionID string

	scrambleLen int
	status      string
	err         error
	quitting    bool
}

func newPlayModel(p *twisty.Puzzle, scrambleLen int) *playModel {
	m := &playModel{
		puzzle:      p,
		grid:        render.ForModel(p.Model(), stripWidth),
		painter:     render.NewPainter(p.Model().Palette),
		selected:    -1,
		scrambleLen: scrambleLen,
	}
	m.row, m.col, _ = m.grid.First()
	return m
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.step(-1, 0)
		case "down", "j":
			m.step(1, 0)
		case "left", "h":
			m.step(0, -1)
		case "right", "l":
			m.step(0, 1)

		case "esc":
			m.selected = -1
			m.status = ""

		case " ", "enter":
			m.pick()

		case "u":
			if m.puzzle.Undo() {
				m.status = "undone"
			}
		case "r":
			if m.puzzle.Redo() {
				m.status = "redone"
			}

		case "s":
			moves := m.puzzle.Scramble(m.scrambleLen)
			m.selected = -1
			m.status = fmt.Sprintf("scrambled %d moves", len(moves))

		case "x":
			m.puzzle.Reset()
			m.selected = -1
			m.status = "reset"

		case "w":
			return m, m.save()
		}

	case savedMsg:
		m.sessionID = msg.id
		m.status = "saved " + shortID(msg.id)

	case errMsg:
		m.err = msg.err
	}

	return m, nil
}

// step moves the cursor to the next facet cell in a direction, skipping
// empty cells.
func (m *playModel) step(dr, dc int) {
	r, c := m.row+dr, m.col+dc
	for r >= 0 && r < m.grid.Rows() && c >= 0 && c < m.grid.Cols() {
		if m.grid.At(r, c) >= 0 {
			m.row, m.col = r, c
			return
		}
		r, c = r+dr, c+dc
	}
}

// pick starts a drag at the cursor, or ends it and plays the resolved move.
func (m *playModel) pick() {
	facet := m.grid.At(m.row, m.col)
	if m.selected < 0 {
		m.selected = facet
		m.status = "drag to..."
		return
	}

	from := m.selected
	m.selected = -1
	id, ok := m.puzzle.TryRotate(from, facet)
	if !ok {
		m.status = "no move"
		return
	}
	m.puzzle.DoMove(id)
	m.status = "played " + m.puzzle.FormatMoves([]int{id})
}

func (m *playModel) save() tea.Cmd {
	if m.db == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("no database")} }
	}
	return func() tea.Msg {
		id, err := saveSession(m.db, m.puzzle, m.sessionID, "")
		if err != nil {
			return errMsg{err}
		}
		if m.stateFile != nil {
			if err := m.stateFile.SetActiveSession(id); err != nil {
				return errMsg{err}
			}
		}
		return savedMsg{id}
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("Twisty"))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  %s", m.puzzle.Model().Name)))
	if m.sessionID != "" {
		b.WriteString(statusStyle.Render(fmt.Sprintf("  session %s", shortID(m.sessionID))))
	}
	b.WriteString("\n\n")

	// Puzzle
	marks := render.Marks{Cursor: m.grid.At(m.row, m.col), Selected: m.selected}
	b.WriteString(m.painter.Render(m.grid, m.puzzle.Snapshot().Colors, marks))
	b.WriteString("\n")

	if m.puzzle.IsSolved() {
		b.WriteString(solvedStyle.Render("SOLVED"))
	} else {
		b.WriteString(statusStyle.Render("Scrambled"))
	}
	b.WriteString(fmt.Sprintf("  Moves: %d\n", m.puzzle.MoveHistoryLen()))

	// Recent moves
	if undo := m.puzzle.History().Undo; len(undo) > 0 {
		b.WriteString("Moves: ")
		start := 0
		if len(undo) > recentMoves {
			start = len(undo) - recentMoves
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(m.puzzle.FormatMoves(undo[start:])))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	// Error
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	// Help
	help := "Keys: arrows=move space=pick u=undo r=redo s=scramble x=reset w=save q=quit"
	if m.selected >= 0 {
		help = "Move to the target facet, then SPACE | esc=cancel"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runPlay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stateFile, err := openStateFile()
	if err != nil {
		return err
	}

	var p *twisty.Puzzle
	var sessionID string
	if !playNew && stateFile.HasActiveSession() {
		s, err := storage.NewSessionRepository(db).Get(stateFile.ActiveSessionID())
		if err != nil {
			return err
		}
		if s != nil {
			if p, err = loadSession(s); err != nil {
				return err
			}
			sessionID = s.SessionID
			fmt.Printf("Resuming session: %s\n", sessionID)
		}
	}
	if p == nil {
		if p, err = newPuzzle(); err != nil {
			return err
		}
	}

	model := newPlayModel(p, cfg.ScrambleLength)
	model.db = db
	model.stateFile = stateFile
	model.sessionID = sessionID

	prog := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fragment, err := p.EncodeFragment()
	if err != nil {
		return err
	}
	return stateFile.SetLastFragment(fragment)
}
