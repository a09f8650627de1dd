package extract

import (
	"testing"

	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// hangThen puts the player on the ledge for indices 2-5 and then plays
// the given states.
func hangThen(t *testing.T, after ...int) *timeline.Timeline {
	t.Helper()
	frames := seqFrames(0, 40)
	return buildTimeline(t, frames, func(c *timeline.Columns) {
		for i := 2; i <= 5; i++ {
			c.States[i] = taxonomy.StateCliffWait
		}
		for j, s := range after {
			if 6+j < len(frames) {
				c.States[6+j] = s
			}
		}
		c.Percent = filledFloat(len(frames), 30)
	})
}

func TestLedgeExitsNamedOptions(t *testing.T) {
	tests := []struct {
		name  string
		state int
		want  LedgeOption
	}{
		{"getup", 254, LedgeGetup},
		{"getup slow", 255, LedgeGetupSlow},
		{"attack", 256, LedgeAttack},
		{"roll", 258, LedgeRoll},
		{"jump", 260, LedgeJump},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			own := hangThen(t, tt.state)
			exits := LedgeExits(taxonomy.Default(), own, DefaultLedgeParams())
			if len(exits) != 1 {
				t.Fatalf("got %d exits, want 1", len(exits))
			}
			if exits[0].Option != tt.want {
				t.Errorf("got option %q, want %q", exits[0].Option, tt.want)
			}
			if exits[0].Frame != 5 {
				t.Errorf("got frame %d, want 5 (last hang frame)", exits[0].Frame)
			}
			if !almostEqual(exits[0].Percent, 30) {
				t.Errorf("got percent %.1f, want 30", exits[0].Percent)
			}
		})
	}
}

func TestLedgeExitsDropVariants(t *testing.T) {
	tests := []struct {
		name  string
		after []int
		want  LedgeOption
	}{
		{"drop then double jump", []int{29, 29, taxonomy.StateJumpAerialF}, LedgeDropJump},
		{"ledgedash", []int{29, taxonomy.StateKneeBend, taxonomy.StateEscapeAir}, Ledgedash},
		{"regrab", []int{29, 29, taxonomy.StateCliffWait}, LedgeRegrab},
		{"hit off stage", []int{29, 29, 84}, LedgeHitOff},
		{"drop into nothing", []int{29, 29, 29}, LedgeDropOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			own := hangThen(t, tt.after...)
			exits := LedgeExits(taxonomy.Default(), own, DefaultLedgeParams())
			if len(exits) < 1 {
				t.Fatalf("got no exits, want at least 1")
			}
			if exits[0].Option != tt.want {
				t.Errorf("got option %q, want %q", exits[0].Option, tt.want)
			}
		})
	}
}
