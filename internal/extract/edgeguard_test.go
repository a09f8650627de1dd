package extract

import (
	"testing"

	"github.com/meleetools/framescan/internal/timeline"
)

// offstageOpp puts the opponent beyond the edge for the whole timeline
// and applies percent bumps at the given frames.
func offstageOpp(t *testing.T, frames []int, hits map[int]float64) *timeline.Timeline {
	return buildTimeline(t, frames, func(c *timeline.Columns) {
		c.PosX = filledFloat(len(frames), 100) // past edge_x
		pct := 0.0
		for i, f := range frames {
			if d, ok := hits[f]; ok {
				pct += d
			}
			c.Percent[i] = pct
		}
	})
}

func TestEdgeguardsMergeAndSplit(t *testing.T) {
	// Hits at 50 and 70 merge (gap 20); the hit at 200 starts a new
	// group (gap 130).
	frames := seqFrames(0, 300)
	opp := offstageOpp(t, frames, map[int]float64{50: 10, 70: 8, 200: 12})

	egs := Edgeguards(opp, DefaultEdgeguardParams(85.57))
	if len(egs) != 2 {
		t.Fatalf("got %d edgeguards, want 2", len(egs))
	}

	if egs[0].StartFrame != 50 || egs[0].EndFrame != 70 {
		t.Errorf("got first group [%d,%d], want [50,70]", egs[0].StartFrame, egs[0].EndFrame)
	}
	if egs[0].NumHits != 2 || !almostEqual(egs[0].Damage, 18) {
		t.Errorf("got first group %d hits %.1f damage, want 2 hits 18.0", egs[0].NumHits, egs[0].Damage)
	}
	if egs[1].StartFrame != 200 || egs[1].NumHits != 1 {
		t.Errorf("got second group start=%d hits=%d, want 200 and 1", egs[1].StartFrame, egs[1].NumHits)
	}
}

func TestEdgeguardsKillWhileOpen(t *testing.T) {
	frames := seqFrames(0, 200)
	opp := buildTimeline(t, frames, func(c *timeline.Columns) {
		c.PosX = filledFloat(len(frames), 100)
		for i := 60; i < len(frames); i++ {
			c.Percent[i] = 15
		}
		for i := 80; i < len(frames); i++ {
			c.Stocks[i] = 3
		}
	})

	egs := Edgeguards(opp, DefaultEdgeguardParams(85.57))
	if len(egs) != 1 {
		t.Fatalf("got %d edgeguards, want 1", len(egs))
	}
	if !egs[0].Killed {
		t.Error("stock loss while the group is open should mark it killed")
	}
	if egs[0].EndFrame != 80 {
		t.Errorf("got end frame %d, want 80", egs[0].EndFrame)
	}
}

func TestEdgeguardsKillAfterClose(t *testing.T) {
	frames := seqFrames(0, 400)
	opp := buildTimeline(t, frames, func(c *timeline.Columns) {
		c.PosX = filledFloat(len(frames), 100)
		for i := 60; i < len(frames); i++ {
			c.Percent[i] = 15
		}
		// Stock loss 120 frames after the last hit, past the merge gap
		// but within the kill window.
		for i := 180; i < len(frames); i++ {
			c.Stocks[i] = 3
		}
	})

	egs := Edgeguards(opp, DefaultEdgeguardParams(85.57))
	if len(egs) != 1 {
		t.Fatalf("got %d edgeguards, want 1", len(egs))
	}
	if !egs[0].Killed {
		t.Error("stock loss within the kill window should credit the group")
	}
	if egs[0].EndFrame != 180 {
		t.Errorf("got end frame %d, want extended to 180", egs[0].EndFrame)
	}
}

func TestEdgeguardsOnstageHitsIgnored(t *testing.T) {
	frames := seqFrames(0, 100)
	opp := buildTimeline(t, frames, func(c *timeline.Columns) {
		// Center stage, above the lower threshold.
		for i := 50; i < len(frames); i++ {
			c.Percent[i] = 20
		}
	})

	egs := Edgeguards(opp, DefaultEdgeguardParams(85.57))
	if len(egs) != 0 {
		t.Fatalf("got %d edgeguards, want 0 for on-stage hits", len(egs))
	}
}

func TestEdgeguardsBelowStage(t *testing.T) {
	// Inside the edge on x but far below the stage.
	frames := seqFrames(0, 100)
	opp := buildTimeline(t, frames, func(c *timeline.Columns) {
		c.PosY = filledFloat(len(frames), -40)
		for i := 50; i < len(frames); i++ {
			c.Percent[i] = 20
		}
	})

	egs := Edgeguards(opp, DefaultEdgeguardParams(85.57))
	if len(egs) != 1 {
		t.Fatalf("got %d edgeguards, want 1 for a below-stage hit", len(egs))
	}
}
