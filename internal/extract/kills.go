package extract

import (
	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// blastzones maps a death state to the blast zone the player crossed.
var blastzones = map[int]string{
	0: "bottom",
	1: "left",
	2: "right",
}

// Blastzone names the blast zone for a death state. Everything from the
// star-KO and screen-hit variants upward is the top zone.
func Blastzone(deathState int) string {
	if z, ok := blastzones[deathState]; ok {
		return z
	}
	if deathState >= 3 && deathState <= 10 {
		return "top"
	}
	return ""
}

// Kill is one stock loss on the victim's timeline.
type Kill struct {
	Frame        int     `json:"frame"` // last frame alive
	DeathPercent float64 `json:"death_percent"`
	DeathState   int     `json:"death_state"`
	Blastzone    string  `json:"blastzone,omitempty"`
	MoveID       int     `json:"killing_move_id"`
	Move         string  `json:"killing_move"`
	DeathX       float64 `json:"death_x,omitempty"`
	DeathY       float64 `json:"death_y,omitempty"`
}

// Event wraps the kill in the flat event envelope.
func (k Kill) Event() Event {
	return Event{Kind: KindKill, StartFrame: k.Frame, EndFrame: k.Frame, Killed: true, Data: k}
}

// Kills finds every stock loss on the victim's timeline. The killing
// move is read from the attacker's timeline at the victim's last frame
// alive; move 0 when the attacker has no record there. attacker may be
// nil, in which case the move stays unknown.
func Kills(tax *taxonomy.Taxonomy, attacker, victim *timeline.Timeline) []Kill {
	var out []Kill

	for i := 1; i < victim.Len(); i++ {
		stocks, okStocks := victim.StocksAt(i)
		prevStocks, okPrev := victim.StocksAt(i - 1)
		if !okStocks || !okPrev || stocks >= prevStocks {
			continue
		}

		// i-1 is the last frame alive; i carries the death state.
		frame := victim.FrameAt(i - 1)
		pct, _ := victim.PercentAt(i - 1)
		deathState, _ := victim.StateAt(i)

		moveID := 0
		if attacker != nil {
			moveID = attacker.LastAttackAtFrame(frame)
		}

		k := Kill{
			Frame:        frame,
			DeathPercent: round1(pct),
			DeathState:   deathState,
			Blastzone:    Blastzone(deathState),
			MoveID:       moveID,
			Move:         tax.MoveName(moveID),
		}
		if x, ok := victim.PosXAt(i); ok {
			k.DeathX = x
		}
		if y, ok := victim.PosYAt(i); ok {
			k.DeathY = y
		}
		out = append(out, k)
	}

	return out
}
