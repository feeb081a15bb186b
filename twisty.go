// Package twisty models generalized twisty puzzles: NxNxN cubes derived from
// rotation geometry, or arbitrary puzzles loaded from precomputed data.
//
// # Features
//
//   - Move derivation as facet permutations with orientation transitions
//   - State tracking, undo/redo history and scrambles
//   - History save/load as JSON or as a compact URL fragment
//   - Gesture resolution from a dragged facet pair to the intended move
//
// # Quick Start
//
//	p, err := twisty.NewCube(3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p.Scramble(20)
//	if move, ok := p.TryRotate(from, to); ok {
//	    p.DoMove(move)
//	}
//	p.Undo()
//
//	saved, _ := p.Serialize()
//	_ = p.Deserialize(saved)
//
// # Renderers
//
// The package performs no drawing. A renderer reads Snapshot for colors and
// orientations, MoveMetadata and RotationAt for animation, and reports the
// facet under the pointer through a Picker.
package twisty
