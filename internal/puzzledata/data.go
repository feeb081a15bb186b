// Package puzzledata reads, validates and writes precomputed puzzle data:
// panels, moves as permutations, an orientation multiplication table and an
// optional gesture table.
package puzzledata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for data that cannot describe a puzzle.
var ErrInvalid = errors.New("puzzledata: invalid puzzle data")

// Data is the on-disk form of a precomputed puzzle.
type Data struct {
	Size            int          `json:"size" yaml:"size"`
	Colors          [][3]float64 `json:"colors" yaml:"colors"`
	Panels          []Panel      `json:"panels" yaml:"panels"`
	Moves           []Move       `json:"moves" yaml:"moves"`
	MoveOpposites   []int        `json:"move_opposites,omitempty" yaml:"move_opposites,omitempty"`
	MoveTable       [][]int      `json:"move_table,omitempty" yaml:"move_table,omitempty"`
	Quaternions     []Quaternion `json:"quaternions,omitempty" yaml:"quaternions,omitempty"`
	QuaternionTable [][]int      `json:"quaternion_table" yaml:"quaternion_table"`
}

// Panel is one facet. Color -1 marks a structural panel.
type Panel struct {
	Pos         [3]int       `json:"pos" yaml:"pos"`
	CubieCenter [3]int       `json:"cubie_center" yaml:"cubie_center"`
	Box         [][2]float64 `json:"box,omitempty" yaml:"box,omitempty"`
	Color       int          `json:"color" yaml:"color"`
	Side        *int         `json:"side,omitempty" yaml:"side,omitempty"`
}

// Move is one generating move. AffectedPanels holds 0 or 1 per panel.
type Move struct {
	AffectedPanels []int      `json:"affected_panels" yaml:"affected_panels"`
	Axis           [3]float64 `json:"axis" yaml:"axis"`
	Fraction       int        `json:"fraction" yaml:"fraction"`
	Quaternion     int        `json:"quaternion" yaml:"quaternion"`
	PanelPerm      []int      `json:"panel_perm" yaml:"panel_perm"`
}

// Quaternion is a render-time rotation.
type Quaternion struct {
	W float64 `json:"w" yaml:"w"`
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Format names a serialization of Data.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown data format %q", s)
	}
}

// Decode parses JSON or YAML puzzle data. JSON is recognized by a leading
// brace; anything else is read as YAML.
func Decode(raw []byte) (*Data, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalid)
	}

	var d Data
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &d); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &d); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return &d, nil
}

// ReadFile decodes puzzle data from a file.
func ReadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle data: %w", err)
	}
	return Decode(raw)
}

// Marshal encodes d in the given format.
func (d *Data) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal puzzle data: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal puzzle data: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown data format %q", format)
	}
}

// WriteFile encodes d to path.
func (d *Data) WriteFile(path string, format Format) error {
	out, err := d.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write puzzle data: %w", err)
	}
	return nil
}
