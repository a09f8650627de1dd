// Package match models the handoff from the external replay decoder: one
// decoded match as per-player parallel frame arrays, plus the game-level
// metadata the extractors need (stage, characters).
//
// The engine never reads raw replay bytes; the decoder guarantees that a
// player's arrays are frame-aligned and of equal length, while the two
// players' arrays may differ in length and frame coverage.
package match

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/meleetools/framescan/internal/timeline"
)

// PlayerFrames is one player's decoded frame columns. Array elements may
// be null in the JSON; nulls become missing values on the Timeline.
type PlayerFrames struct {
	Port             int        `json:"port"`
	CharacterID      int        `json:"character_id"`
	CharacterName    string     `json:"character_name"`
	Frame            []int      `json:"frame"`
	State            []*int     `json:"state"`
	Percent          []*float64 `json:"percent"`
	Stocks           []*float64 `json:"stocks"`
	PositionX        []*float64 `json:"position_x"`
	PositionY        []*float64 `json:"position_y"`
	Facing           []*float64 `json:"facing"`
	LastAttackLanded []*int     `json:"last_attack_landed"`
	Airborne         []*bool    `json:"airborne"`
	VelocityXGround  []*float64 `json:"velocity_x_ground,omitempty"`
	VelocityYSelf    []*float64 `json:"velocity_y_self,omitempty"`
}

// Game is one decoded match.
type Game struct {
	Filename       string         `json:"filename"`
	StageID        int            `json:"stage_id"`
	DurationFrames int            `json:"duration_frames,omitempty"`
	Players        []PlayerFrames `json:"players"`
}

// Decode parses a decoded-match JSON document.
func Decode(r io.Reader) (*Game, error) {
	var g Game
	dec := json.NewDecoder(r)
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to parse match JSON: %w", err)
	}
	return &g, nil
}

// Load reads and parses a decoded-match JSON file.
func Load(path string) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open match file: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if g.Filename == "" {
		g.Filename = filepath.Base(path)
	}
	return g, nil
}

// Validate checks the structural invariants the extractors rely on. A
// failing match is skipped by callers, never fatal to a batch.
func (g *Game) Validate() error {
	if len(g.Players) != 2 {
		return fmt.Errorf("match %s: %d active players, want 2", g.Filename, len(g.Players))
	}
	for i := range g.Players {
		if err := g.Players[i].validate(); err != nil {
			return fmt.Errorf("match %s player %d: %w", g.Filename, i, err)
		}
	}
	return nil
}

func (p *PlayerFrames) validate() error {
	n := len(p.Frame)
	if n == 0 {
		return fmt.Errorf("empty frame array")
	}
	for name, l := range map[string]int{
		"state":              len(p.State),
		"percent":            len(p.Percent),
		"stocks":             len(p.Stocks),
		"position_x":         len(p.PositionX),
		"position_y":         len(p.PositionY),
		"facing":             len(p.Facing),
		"last_attack_landed": len(p.LastAttackLanded),
		"airborne":           len(p.Airborne),
	} {
		if l != n {
			return fmt.Errorf("%s has %d entries, want %d", name, l, n)
		}
	}
	return nil
}

// Timeline converts the player's columns into an immutable Timeline.
func (p *PlayerFrames) Timeline() (*timeline.Timeline, error) {
	n := len(p.Frame)
	cols := timeline.Columns{
		Frames:     p.Frame,
		States:     make([]int, n),
		Percent:    floatCol(p.Percent, n),
		Stocks:     floatCol(p.Stocks, n),
		PosX:       floatCol(p.PositionX, n),
		PosY:       floatCol(p.PositionY, n),
		Facing:     floatCol(p.Facing, n),
		LastAttack: make([]int, n),
		Airborne:   make([]int8, n),
	}
	for i := 0; i < n; i++ {
		cols.States[i] = timeline.StateMissing
		if i < len(p.State) && p.State[i] != nil {
			cols.States[i] = *p.State[i]
		}
		if i < len(p.LastAttackLanded) && p.LastAttackLanded[i] != nil {
			cols.LastAttack[i] = *p.LastAttackLanded[i]
		}
		cols.Airborne[i] = -1
		if i < len(p.Airborne) && p.Airborne[i] != nil {
			if *p.Airborne[i] {
				cols.Airborne[i] = 1
			} else {
				cols.Airborne[i] = 0
			}
		}
	}
	if p.VelocityXGround != nil {
		cols.VelXGround = floatCol(p.VelocityXGround, n)
	}
	if p.VelocityYSelf != nil {
		cols.VelYSelf = floatCol(p.VelocityYSelf, n)
	}
	return timeline.New(cols)
}

// Timelines validates the match and builds both players' timelines.
func (g *Game) Timelines() (*timeline.Timeline, *timeline.Timeline, error) {
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}
	t0, err := g.Players[0].Timeline()
	if err != nil {
		return nil, nil, fmt.Errorf("match %s player 0: %w", g.Filename, err)
	}
	t1, err := g.Players[1].Timeline()
	if err != nil {
		return nil, nil, fmt.Errorf("match %s player 1: %w", g.Filename, err)
	}
	return t0, t1, nil
}

func floatCol(src []*float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(src) && src[i] != nil {
			out[i] = *src[i]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
