package extract

import (
	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// Roll is one standing roll, classified relative to the opponent.
type Roll struct {
	Frame     int                `json:"frame"`
	Direction timeline.Direction `json:"direction"`
	Forward   bool               `json:"forward"` // forward vs backward roll
	Percent   float64            `json:"percent"`
}

// Event wraps the roll in the flat event envelope.
func (r Roll) Event() Event {
	return Event{Kind: KindRoll, StartFrame: r.Frame, EndFrame: r.Frame, Data: r}
}

// Rolls finds standing rolls on the player's own timeline and labels
// each toward or away from the opponent. Rolls with no opponent position
// at that frame are skipped.
func Rolls(tax *taxonomy.Taxonomy, own, opp *timeline.Timeline) []Roll {
	var out []Roll

	rollSet := tax.Category(taxonomy.CatRoll)
	for _, i := range own.Entries(rollSet) {
		s, _ := own.StateAt(i)
		isFwd := s == taxonomy.StateEscapeF
		dir, ok := directionAt(own, opp, i, isFwd)
		if !ok {
			continue
		}
		pct, _ := own.PercentAt(i)
		out = append(out, Roll{
			Frame:     own.FrameAt(i),
			Direction: dir,
			Forward:   isFwd,
			Percent:   round1(pct),
		})
	}

	return out
}

// HitTaken is one hit landed on the player, seen from the victim's side.
type HitTaken struct {
	Frame   int     `json:"frame"`
	MoveID  int     `json:"move_id"`
	Move    string  `json:"move"`
	Damage  float64 `json:"damage"`
	Percent float64 `json:"percent"` // before the hit
}

// Event wraps the hit in the flat event envelope.
func (h HitTaken) Event() Event {
	return Event{Kind: KindHitTaken, StartFrame: h.Frame, EndFrame: h.Frame, Data: h}
}

// HitsTaken enumerates every hit the opponent lands on the player:
// percent increases with the stock count unchanged, with the move read
// from the opponent's timeline at the same frame. Hits with no
// attributable move are dropped; they are respawn percent artifacts more
// often than real hits.
func HitsTaken(tax *taxonomy.Taxonomy, own, opp *timeline.Timeline) []HitTaken {
	var out []HitTaken

	for i := 1; i < own.Len(); i++ {
		pct, okPct := own.PercentAt(i)
		prevPct, okPrev := own.PercentAt(i - 1)
		if !okPct || !okPrev || pct <= prevPct {
			continue
		}
		stocks, okStocks := own.StocksAt(i)
		prevStocks, okPrevStocks := own.StocksAt(i - 1)
		if !okStocks || !okPrevStocks || stocks != prevStocks {
			continue
		}

		frame := own.FrameAt(i)
		moveID := opp.LastAttackAtFrame(frame)
		if moveID == 0 {
			continue
		}
		out = append(out, HitTaken{
			Frame:   frame,
			MoveID:  moveID,
			Move:    tax.MoveName(moveID),
			Damage:  round1(round1(pct) - round1(prevPct)),
			Percent: round1(prevPct),
		})
	}

	return out
}

// CrouchCancel is one hit absorbed while crouching on the previous
// frame, plus the matching non-crouching hits for rate comparison.
type CrouchCancel struct {
	Frame         int     `json:"frame"`
	WasCrouching  bool    `json:"was_crouching"`
	Damage        float64 `json:"damage"`
	PercentBefore float64 `json:"percent_before"`
}

// Event wraps the record in the flat event envelope.
func (c CrouchCancel) Event() Event {
	return Event{Kind: KindCrouchCancel, StartFrame: c.Frame, EndFrame: c.Frame, Data: c}
}

// CrouchCancels finds hitstun entries with a damage increase and labels
// whether the player was crouching on the frame before. Both crouching
// and non-crouching entries are emitted so callers can compute rates.
func CrouchCancels(tax *taxonomy.Taxonomy, own *timeline.Timeline) []CrouchCancel {
	var out []CrouchCancel

	damageSet := tax.Category(taxonomy.CatDamage)
	crouchSet := tax.Category(taxonomy.CatCrouch)

	for i := 1; i < own.Len(); i++ {
		s, okS := own.StateAt(i)
		prev, okPrev := own.StateAt(i - 1)
		if !okS || !okPrev || !damageSet.Contains(s) || damageSet.Contains(prev) {
			continue
		}

		pct, okPct := own.PercentAt(i)
		prevPct, okPrevPct := own.PercentAt(i - 1)
		if !okPct || !okPrevPct {
			continue
		}
		damage := round1(pct) - round1(prevPct)
		if damage <= 0 {
			continue
		}

		out = append(out, CrouchCancel{
			Frame:         own.FrameAt(i),
			WasCrouching:  crouchSet.Contains(prev),
			Damage:        round1(damage),
			PercentBefore: round1(prevPct),
		})
	}

	return out
}
