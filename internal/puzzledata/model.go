package puzzledata

import (
	"errors"
	"fmt"

	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/twisty/pkg/orient"
	"github.com/SeamusWaldron/twisty/pkg/types"
)

// Validate reports every structural problem in d. The returned error wraps
// ErrInvalid.
func (d *Data) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	n := len(d.Panels)
	if n == 0 {
		add("no panels")
	}
	for i, p := range d.Panels {
		if p.Color < types.NoColor || (p.Color >= 0 && len(d.Colors) > 0 && p.Color >= len(d.Colors)) {
			add("panel %d: color %d out of range", i, p.Color)
		}
		if p.Side != nil && (*p.Side < 0 || *p.Side > 5) {
			add("panel %d: side %d out of range", i, *p.Side)
		}
		// Gestures are scored by side when no move table is given.
		if d.MoveTable == nil && p.Color != types.NoColor && p.Side == nil {
			add("panel %d: colored panel has no side and there is no move table", i)
		}
	}

	q := len(d.QuaternionTable)
	if q == 0 {
		add("no quaternion table")
	}
	if len(d.Quaternions) > 0 && len(d.Quaternions) != q {
		add("%d quaternions for a %d-row table", len(d.Quaternions), q)
	}

	if len(d.Moves) == 0 {
		add("no moves")
	}
	for m, mv := range d.Moves {
		if len(mv.PanelPerm) != n {
			add("move %d: permutation covers %d panels, want %d", m, len(mv.PanelPerm), n)
		}
		if len(mv.AffectedPanels) != n {
			add("move %d: affected list covers %d panels, want %d", m, len(mv.AffectedPanels), n)
		}
		if mv.Quaternion < 0 || mv.Quaternion >= q {
			add("move %d: quaternion %d out of range", m, mv.Quaternion)
		}
		if mv.Fraction <= 0 {
			add("move %d: fraction %d", m, mv.Fraction)
		}
	}

	if d.MoveOpposites != nil && len(d.MoveOpposites) != len(d.Moves) {
		add("%d opposites for %d moves", len(d.MoveOpposites), len(d.Moves))
	}
	if d.MoveTable != nil {
		if len(d.MoveTable) != n {
			add("move table has %d rows, want %d", len(d.MoveTable), n)
		}
		for i, row := range d.MoveTable {
			if len(row) != n {
				add("move table row %d has %d entries, want %d", i, len(row), n)
				break
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(problems...))
	}
	return nil
}

// Model validates d and builds the puzzle model it describes. Missing
// opposites are derived by searching for inverse permutations.
func (d *Data) Model() (*types.Model, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var quats []quaternion.Quaternion
	for _, q := range d.Quaternions {
		quats = append(quats, quaternion.Quaternion{W: q.W, X: q.X, Y: q.Y, Z: q.Z})
	}
	group, err := orient.FromTable(d.QuaternionTable, quats)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	model := &types.Model{
		Name:     fmt.Sprintf("data%d", d.Size),
		Size:     d.Size,
		Orient:   group,
		Palette:  d.Colors,
		Gestures: d.MoveTable,
	}
	for _, p := range d.Panels {
		f := types.Facet{Cubie: types.Vec3(p.Pos), Side: types.NoSide, Color: p.Color}
		if p.Side != nil {
			f.Side = types.Side(*p.Side)
		}
		model.Facets = append(model.Facets, f)
	}
	for _, mv := range d.Moves {
		out := types.Move{
			Slice:       -1,
			Side:        types.NoSide,
			Perm:        append([]int(nil), mv.PanelPerm...),
			Affected:    make([]bool, len(mv.AffectedPanels)),
			Axis:        mv.Axis,
			Fraction:    mv.Fraction,
			Orientation: orient.ID(mv.Quaternion),
		}
		for i, a := range mv.AffectedPanels {
			out.Affected[i] = a != 0
		}
		model.Moves = append(model.Moves, out)
	}

	if d.MoveOpposites != nil {
		model.Opposites = append([]int(nil), d.MoveOpposites...)
	} else if model.Opposites, err = deriveOpposites(model.Moves); err != nil {
		return nil, err
	}

	if err := model.Check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return model, nil
}

func deriveOpposites(moves []types.Move) ([]int, error) {
	opposites := make([]int, len(moves))
	for m, fwd := range moves {
		opposites[m] = -1
		for o, back := range moves {
			if inverts(fwd.Perm, back.Perm) {
				opposites[m] = o
				break
			}
		}
		if opposites[m] < 0 {
			return nil, fmt.Errorf("%w: move %d has no inverse", ErrInvalid, m)
		}
	}
	return opposites, nil
}

func inverts(fwd, back []int) bool {
	for i, dst := range fwd {
		if dst < 0 || dst >= len(back) || back[dst] != i {
			return false
		}
	}
	return true
}

// Export converts a model back into puzzle data. Cube models export their
// facet sides so the data keeps enough geometry for gesture scoring, and
// their axes negated since data moves animate clockwise.
func Export(model *types.Model) *Data {
	d := &Data{
		Size:            model.Size,
		Colors:          model.Palette,
		QuaternionTable: model.Orient.Table(),
		MoveTable:       model.Gestures,
		MoveOpposites:   append([]int(nil), model.Opposites...),
	}
	for _, f := range model.Facets {
		p := Panel{Pos: [3]int(f.Cubie), CubieCenter: [3]int(f.Cubie), Color: f.Color}
		if f.Side != types.NoSide {
			side := int(f.Side)
			p.Side = &side
		}
		d.Panels = append(d.Panels, p)
	}
	for _, mv := range model.Moves {
		out := Move{
			AffectedPanels: make([]int, len(mv.Affected)),
			Axis:           mv.Axis,
			Fraction:       mv.Fraction,
			Quaternion:     int(mv.Orientation),
			PanelPerm:      append([]int(nil), mv.Perm...),
		}
		if mv.Side != types.NoSide {
			out.Axis = [3]float64{-mv.Axis[0], -mv.Axis[1], -mv.Axis[2]}
		}
		for i, a := range mv.Affected {
			if a {
				out.AffectedPanels[i] = 1
			}
		}
		d.Moves = append(d.Moves, out)
	}
	for id := 0; id < model.Orient.Len(); id++ {
		q := model.Orient.Quaternion(orient.ID(id))
		d.Quaternions = append(d.Quaternions, Quaternion{W: q.W, X: q.X, Y: q.Y, Z: q.Z})
	}
	return d
}
