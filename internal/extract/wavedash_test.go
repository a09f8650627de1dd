package extract

import (
	"testing"

	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// wavedashColumns lays out jumpsquat at indices 2-4, airborne air dodge,
// then a landing with the given ground velocity.
func wavedashColumns(t *testing.T, dodgeDelay int, landVel float64) *timeline.Timeline {
	t.Helper()
	frames := seqFrames(0, 40)
	return buildTimeline(t, frames, func(c *timeline.Columns) {
		c.States[2] = taxonomy.StateKneeBend
		c.States[3] = taxonomy.StateKneeBend
		c.States[4] = taxonomy.StateKneeBend
		// Airborne from index 5; the air dodge comes dodgeDelay frames in.
		for i := 5; i < 5+dodgeDelay; i++ {
			c.States[i] = 29 // falling
		}
		c.States[5+dodgeDelay] = taxonomy.StateEscapeAir
		c.States[6+dodgeDelay] = taxonomy.StateEscapeAir
		// Landing.
		c.States[7+dodgeDelay] = 42
		for i := 8 + dodgeDelay; i < len(frames); i++ {
			c.States[i] = taxonomy.StateWait
		}
		c.VelXGround = filledFloat(len(frames), 0)
		c.VelXGround[7+dodgeDelay] = landVel
		c.PosX = filledFloat(len(frames), -12)
	})
}

func TestWavedashesDetected(t *testing.T) {
	own := wavedashColumns(t, 0, 1.8)
	opp := buildTimeline(t, seqFrames(0, 40), func(c *timeline.Columns) {
		c.PosX = filledFloat(40, 50)
	})

	wds := Wavedashes(taxonomy.Default(), own, opp, DefaultWavedashParams())
	if len(wds) != 1 {
		t.Fatalf("got %d wavedashes, want 1", len(wds))
	}

	w := wds[0]
	if w.StartFrame != 2 {
		t.Errorf("got start frame %d, want 2 (jumpsquat entry)", w.StartFrame)
	}
	if w.LandFrame != 7 {
		t.Errorf("got land frame %d, want 7", w.LandFrame)
	}
	if w.LateFrames != 0 || w.IsLate {
		t.Errorf("got late_frames=%d is_late=%v, want frame-perfect", w.LateFrames, w.IsLate)
	}
	if !w.Forward {
		t.Error("positive slide while facing right should be forward")
	}
	if w.Angle != AngleFlat {
		t.Errorf("got angle %q, want %q for velocity 1.8", w.Angle, AngleFlat)
	}
	if !almostEqual(w.SlideVel, 1.8) || !almostEqual(w.Velocity, 1.8) {
		t.Errorf("got velocity %.2f slide %.2f, want 1.8", w.Velocity, w.SlideVel)
	}
	if w.TowardOpp == nil || !*w.TowardOpp {
		t.Error("slide right toward an opponent at x=50 should be toward")
	}
}

func TestWavedashesLateInput(t *testing.T) {
	own := wavedashColumns(t, 3, -1.0)
	wds := Wavedashes(taxonomy.Default(), own, nil, DefaultWavedashParams())
	if len(wds) != 1 {
		t.Fatalf("got %d wavedashes, want 1", len(wds))
	}
	if wds[0].LateFrames != 3 || !wds[0].IsLate {
		t.Errorf("got late_frames=%d is_late=%v, want 3 frames late", wds[0].LateFrames, wds[0].IsLate)
	}
	if wds[0].Forward {
		t.Error("negative slide while facing right should not be forward")
	}
	if wds[0].Angle != AngleModerate {
		t.Errorf("got angle %q, want %q for velocity 1.0", wds[0].Angle, AngleModerate)
	}
	if wds[0].TowardOpp != nil {
		t.Error("toward_opponent must stay unset without an opponent timeline")
	}
}

func TestWavedashesNoiseFloor(t *testing.T) {
	own := wavedashColumns(t, 0, 0.3)
	wds := Wavedashes(taxonomy.Default(), own, nil, DefaultWavedashParams())
	if len(wds) != 0 {
		t.Fatalf("got %d wavedashes, want 0 for a near-vertical stall", len(wds))
	}
}

func TestWavedashesOrdinaryJumpIgnored(t *testing.T) {
	// Jumpsquat into a normal jump with no air dodge.
	frames := seqFrames(0, 40)
	own := buildTimeline(t, frames, func(c *timeline.Columns) {
		c.States[2] = taxonomy.StateKneeBend
		for i := 3; i < 20; i++ {
			c.States[i] = 25 // jump
		}
		c.States[20] = 42
		c.VelXGround = filledFloat(len(frames), 2.0)
	})

	wds := Wavedashes(taxonomy.Default(), own, nil, DefaultWavedashParams())
	if len(wds) != 0 {
		t.Fatalf("got %d wavedashes, want 0 for an ordinary jump", len(wds))
	}
}

func TestWavedashesDodgeOutsideWindow(t *testing.T) {
	// Air dodge 8 frames after becoming airborne: past the window.
	own := wavedashColumns(t, 8, 1.8)
	wds := Wavedashes(taxonomy.Default(), own, nil, DefaultWavedashParams())
	if len(wds) != 0 {
		t.Fatalf("got %d wavedashes, want 0 for a late air dodge", len(wds))
	}
}

func TestWavedashesNoLandingInWindow(t *testing.T) {
	frames := seqFrames(0, 60)
	own := buildTimeline(t, frames, func(c *timeline.Columns) {
		c.States[2] = taxonomy.StateKneeBend
		c.States[3] = taxonomy.StateEscapeAir
		// Falling for far longer than the landing window.
		for i := 4; i < len(frames); i++ {
			c.States[i] = 29
		}
		c.VelXGround = filledFloat(len(frames), 2.0)
	})

	wds := Wavedashes(taxonomy.Default(), own, nil, DefaultWavedashParams())
	if len(wds) != 0 {
		t.Fatalf("got %d wavedashes, want 0 when no landing follows", len(wds))
	}
}
