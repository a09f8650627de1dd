// Package timeline wraps one player's per-frame telemetry arrays and
// provides the frame-indexed access and scanning primitives the extractors
// are built on.
//
// A Timeline is immutable once constructed. Two timelines from the same
// match are frame-comparable: a frame value present in one refers to the
// same instant in the other, though the exact frame sets may differ, so
// cross-timeline reads go through exact or nearest frame lookup.
package timeline

import (
	"fmt"
	"math"
	"sort"
)

// StateMissing marks a frame whose action state could not be decoded.
const StateMissing = -1

// Columns holds the decoded parallel arrays for one player. All slices
// must have the same length; frames must be non-decreasing. Optional
// slices (velocities, airborne) may be nil.
type Columns struct {
	Frames     []int
	States     []int // StateMissing for unknown
	Percent    []float64
	Stocks     []float64
	PosX       []float64
	PosY       []float64
	Facing     []float64
	LastAttack []int
	Airborne   []int8 // -1 unknown, 0 grounded, 1 airborne
	VelXGround []float64
	VelYSelf   []float64
}

// Timeline is a read-only view over one player's frame data.
type Timeline struct {
	cols    Columns
	byFrame map[int]int // frame number -> array index (first occurrence)
}

// New validates the columns and builds a Timeline with its frame index.
func New(cols Columns) (*Timeline, error) {
	n := len(cols.Frames)
	if n == 0 {
		return nil, fmt.Errorf("timeline: no frames")
	}
	for name, l := range map[string]int{
		"state":            len(cols.States),
		"percent":          len(cols.Percent),
		"stocks":           len(cols.Stocks),
		"position_x":       len(cols.PosX),
		"position_y":       len(cols.PosY),
		"facing":           len(cols.Facing),
		"last_attack_landed": len(cols.LastAttack),
	} {
		if l != n {
			return nil, fmt.Errorf("timeline: %s has %d entries, want %d", name, l, n)
		}
	}
	if cols.Airborne != nil && len(cols.Airborne) != n {
		return nil, fmt.Errorf("timeline: airborne has %d entries, want %d", len(cols.Airborne), n)
	}
	if cols.VelXGround != nil && len(cols.VelXGround) != n {
		return nil, fmt.Errorf("timeline: velocity_x_ground has %d entries, want %d", len(cols.VelXGround), n)
	}
	if cols.VelYSelf != nil && len(cols.VelYSelf) != n {
		return nil, fmt.Errorf("timeline: velocity_y_self has %d entries, want %d", len(cols.VelYSelf), n)
	}

	byFrame := make(map[int]int, n)
	prev := cols.Frames[0]
	for i, f := range cols.Frames {
		if f < prev {
			return nil, fmt.Errorf("timeline: frame %d at index %d goes backward (previous %d)", f, i, prev)
		}
		prev = f
		if _, seen := byFrame[f]; !seen {
			byFrame[f] = i
		}
	}

	return &Timeline{cols: cols, byFrame: byFrame}, nil
}

// Len returns the number of frame records.
func (t *Timeline) Len() int { return len(t.cols.Frames) }

// FrameAt returns the frame number at index i.
func (t *Timeline) FrameAt(i int) int { return t.cols.Frames[i] }

// FirstFrame and LastFrame return the timeline's frame bounds.
func (t *Timeline) FirstFrame() int { return t.cols.Frames[0] }
func (t *Timeline) LastFrame() int  { return t.cols.Frames[len(t.cols.Frames)-1] }

// StateAt returns the action state at index i; ok is false when missing.
func (t *Timeline) StateAt(i int) (int, bool) {
	s := t.cols.States[i]
	return s, s != StateMissing
}

// PercentAt returns the damage percent at index i; ok is false for NaN.
func (t *Timeline) PercentAt(i int) (float64, bool) {
	p := t.cols.Percent[i]
	return p, !math.IsNaN(p)
}

// StocksAt returns the stock count at index i; ok is false for NaN.
func (t *Timeline) StocksAt(i int) (float64, bool) {
	s := t.cols.Stocks[i]
	return s, !math.IsNaN(s)
}

// PosXAt and PosYAt return the position at index i; ok is false for NaN.
func (t *Timeline) PosXAt(i int) (float64, bool) {
	x := t.cols.PosX[i]
	return x, !math.IsNaN(x)
}

func (t *Timeline) PosYAt(i int) (float64, bool) {
	y := t.cols.PosY[i]
	return y, !math.IsNaN(y)
}

// FacingAt returns the facing direction (±1.0) at index i.
func (t *Timeline) FacingAt(i int) (float64, bool) {
	f := t.cols.Facing[i]
	return f, !math.IsNaN(f)
}

// LastAttackAt returns the attacker-local move ID at index i (0 when
// unknown). Meaningful only on the acting player's own timeline.
func (t *Timeline) LastAttackAt(i int) int { return t.cols.LastAttack[i] }

// AirborneAt returns the airborne flag at index i; ok is false when the
// decoder left it unset.
func (t *Timeline) AirborneAt(i int) (bool, bool) {
	if t.cols.Airborne == nil || t.cols.Airborne[i] < 0 {
		return false, false
	}
	return t.cols.Airborne[i] == 1, true
}

// VelXGroundAt returns the horizontal ground velocity at index i; ok is
// false when the column is absent or the value is NaN.
func (t *Timeline) VelXGroundAt(i int) (float64, bool) {
	if t.cols.VelXGround == nil {
		return 0, false
	}
	v := t.cols.VelXGround[i]
	return v, !math.IsNaN(v)
}

// VelYSelfAt returns the self-induced vertical velocity at index i.
func (t *Timeline) VelYSelfAt(i int) (float64, bool) {
	if t.cols.VelYSelf == nil {
		return 0, false
	}
	v := t.cols.VelYSelf[i]
	return v, !math.IsNaN(v)
}

// Index returns the array index holding exactly the given frame number.
func (t *Timeline) Index(frame int) (int, bool) {
	i, ok := t.byFrame[frame]
	return i, ok
}

// NearestIndex returns the index of the last frame at or before the given
// frame number, clamped to the first record when the frame precedes the
// timeline.
func (t *Timeline) NearestIndex(frame int) int {
	// First index with frame number > target.
	i := sort.Search(len(t.cols.Frames), func(i int) bool {
		return t.cols.Frames[i] > frame
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// StateAtFrame returns the action state at an exact frame number.
func (t *Timeline) StateAtFrame(frame int) (int, bool) {
	i, ok := t.Index(frame)
	if !ok {
		return StateMissing, false
	}
	return t.StateAt(i)
}

// PosXAtFrame returns the x position at an exact frame number.
func (t *Timeline) PosXAtFrame(frame int) (float64, bool) {
	i, ok := t.Index(frame)
	if !ok {
		return 0, false
	}
	return t.PosXAt(i)
}

// PercentAtFrame returns the percent at an exact frame number.
func (t *Timeline) PercentAtFrame(frame int) (float64, bool) {
	i, ok := t.Index(frame)
	if !ok {
		return 0, false
	}
	return t.PercentAt(i)
}

// LastAttackAtFrame returns the attacker-local move ID at an exact frame
// number, or 0 when the timeline has no record for that frame. This is the
// cross-timeline attribution read: the defender's hit frame looked up on
// the attacker's timeline.
func (t *Timeline) LastAttackAtFrame(frame int) int {
	i, ok := t.Index(frame)
	if !ok {
		return 0
	}
	return t.LastAttackAt(i)
}
