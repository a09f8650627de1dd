package extract

import (
	"testing"

	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

func TestTechChasesFollowupHit(t *testing.T) {
	frames := seqFrames(0, 200)
	own := buildTimeline(t, frames, func(c *timeline.Columns) {
		c.LastAttack = filledInt(len(frames), 6) // dash attack
	})
	opp := buildTimeline(t, frames, func(c *timeline.Columns) {
		c.States[50] = taxonomy.StateDownBoundU
		c.States[51] = 184
		c.States[52] = 186 // getup
		c.States[53] = 186
		c.Percent = filledFloat(len(frames), 60)
		for i := 80; i < len(frames); i++ {
			c.Percent[i] = 72
		}
	})

	tcs := TechChases(taxonomy.Default(), own, opp, DefaultTechChaseParams())
	if len(tcs) != 1 {
		t.Fatalf("got %d tech chases, want 1", len(tcs))
	}

	tc := tcs[0]
	if tc.KnockdownFrame != 50 || tc.OptionFrame != 52 {
		t.Errorf("got frames %d/%d, want 50/52", tc.KnockdownFrame, tc.OptionFrame)
	}
	if tc.Option != OptGetup {
		t.Errorf("got option %q, want %q", tc.Option, OptGetup)
	}
	if !tc.FollowupHit {
		t.Error("hit at frame 80 is inside the follow-up window")
	}
	// The follow-up move comes from the chaser's timeline.
	if tc.FollowupMoveID != 6 {
		t.Errorf("got follow-up move %d, want 6", tc.FollowupMoveID)
	}
	if !almostEqual(tc.KnockdownPct, 60) {
		t.Errorf("got knockdown pct %.1f, want 60", tc.KnockdownPct)
	}
}

func TestTechChasesNoFollowup(t *testing.T) {
	frames := seqFrames(0, 300)
	own := buildTimeline(t, frames, nil)
	opp := buildTimeline(t, frames, func(c *timeline.Columns) {
		c.States[50] = taxonomy.StateDownBoundU
		c.States[51] = 184
		c.States[52] = 186
		c.States[53] = 186
		// Hit well past the follow-up window.
		for i := 200; i < len(frames); i++ {
			c.Percent[i] = 15
		}
	})

	tcs := TechChases(taxonomy.Default(), own, opp, DefaultTechChaseParams())
	if len(tcs) != 1 {
		t.Fatalf("got %d tech chases, want 1", len(tcs))
	}
	if tcs[0].FollowupHit {
		t.Error("a hit 148 frames after the option is outside the window")
	}
}
