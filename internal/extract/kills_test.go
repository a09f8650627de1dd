package extract

import (
	"testing"

	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

func TestKills(t *testing.T) {
	frames := seqFrames(0, 100)
	attacker := buildTimeline(t, frames, func(c *timeline.Columns) {
		c.LastAttack = filledInt(len(frames), 10)
	})
	victim := buildTimeline(t, frames, func(c *timeline.Columns) {
		for i := 0; i < 50; i++ {
			c.Percent[i] = 120
		}
		for i := 50; i < len(frames); i++ {
			c.Stocks[i] = 3
			c.States[i] = 2 // dead right
		}
	})

	kills := Kills(taxonomy.Default(), attacker, victim)
	if len(kills) != 1 {
		t.Fatalf("got %d kills, want 1", len(kills))
	}

	k := kills[0]
	if k.Frame != 49 {
		t.Errorf("got frame %d, want 49 (last frame alive)", k.Frame)
	}
	if !almostEqual(k.DeathPercent, 120) {
		t.Errorf("got death percent %.1f, want 120", k.DeathPercent)
	}
	if k.Blastzone != "right" {
		t.Errorf("got blastzone %q, want right", k.Blastzone)
	}
	if k.MoveID != 10 {
		t.Errorf("got killing move %d, want 10", k.MoveID)
	}
}

func TestKillsNilAttacker(t *testing.T) {
	frames := seqFrames(0, 10)
	victim := buildTimeline(t, frames, func(c *timeline.Columns) {
		for i := 5; i < len(frames); i++ {
			c.Stocks[i] = 3
			c.States[i] = 4 // star KO
		}
	})

	kills := Kills(taxonomy.Default(), nil, victim)
	if len(kills) != 1 {
		t.Fatalf("got %d kills, want 1", len(kills))
	}
	if kills[0].MoveID != 0 {
		t.Errorf("got move %d, want 0 without an attacker", kills[0].MoveID)
	}
	if kills[0].Blastzone != "top" {
		t.Errorf("got blastzone %q, want top", kills[0].Blastzone)
	}
}

func TestBlastzone(t *testing.T) {
	tests := []struct {
		state int
		want  string
	}{
		{0, "bottom"},
		{1, "left"},
		{2, "right"},
		{3, "top"},
		{10, "top"},
		{14, ""},
	}
	for _, tt := range tests {
		if got := Blastzone(tt.state); got != tt.want {
			t.Errorf("Blastzone(%d) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
