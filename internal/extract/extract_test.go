package extract

import (
	"math"
	"testing"

	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// buildTimeline constructs a test timeline with sane defaults: idle
// state, zero percent, four stocks, centered position, facing right. mod
// mutates the columns before construction.
func buildTimeline(t *testing.T, frames []int, mod func(c *timeline.Columns)) *timeline.Timeline {
	t.Helper()

	n := len(frames)
	c := timeline.Columns{
		Frames:     frames,
		States:     filledInt(n, taxonomy.StateWait),
		Percent:    filledFloat(n, 0),
		Stocks:     filledFloat(n, 4),
		PosX:       filledFloat(n, 0),
		PosY:       filledFloat(n, 0),
		Facing:     filledFloat(n, 1),
		LastAttack: make([]int, n),
	}
	if mod != nil {
		mod(&c)
	}

	tl, err := timeline.New(c)
	if err != nil {
		t.Fatalf("failed to build timeline: %v", err)
	}
	return tl
}

func filledInt(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func filledFloat(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func seqFrames(start, n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = start + i
	}
	return s
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
