package extract

import (
	"sort"

	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// KnockdownOption is the player's classified response to a knockdown.
type KnockdownOption string

const (
	OptTechInPlace  KnockdownOption = "tech in place"
	OptTechToward   KnockdownOption = "tech toward"
	OptTechAway     KnockdownOption = "tech away"
	OptGetup        KnockdownOption = "getup"
	OptGetupAttack  KnockdownOption = "getup attack"
	OptRollToward   KnockdownOption = "roll toward"
	OptRollAway     KnockdownOption = "roll away"
	OptSlideoff     KnockdownOption = "slideoff"
	OptHitWhileDown KnockdownOption = "hit while down"
)

// KnockdownParams bounds the missed-tech resolution search.
type KnockdownParams struct {
	// ResolveWindow is how many frames past the bounce to search for the
	// first post-knockdown decision.
	ResolveWindow int
}

// DefaultKnockdownParams returns the standard window.
func DefaultKnockdownParams() KnockdownParams {
	return KnockdownParams{ResolveWindow: 300}
}

// Knockdown is one classified knockdown situation. Percent is read at the
// knockdown frame, not at the resolution frame: the reported metric is
// "percent when knocked down".
type Knockdown struct {
	Frame         int             `json:"frame"`
	ResolvedFrame int             `json:"resolved_frame"`
	Option        KnockdownOption `json:"option"`
	Percent       float64         `json:"percent"`
}

// Event wraps the knockdown in the flat event envelope.
func (k Knockdown) Event() Event {
	return Event{Kind: KindKnockdown, StartFrame: k.Frame, EndFrame: k.ResolvedFrame, Data: k}
}

// Knockdowns enumerates every knockdown situation on the player's own
// timeline and classifies the chosen response.
//
// Two independent trigger paths are scanned: successful tech entries
// (classified immediately from the tech variant and position versus the
// opponent) and missed-tech bounces (resolved by the first qualifying
// state after the bounce/lying sub-states — only the first decision
// counts). Results are merged in frame order.
func Knockdowns(tax *taxonomy.Taxonomy, own, opp *timeline.Timeline, p KnockdownParams) []Knockdown {
	var out []Knockdown

	techSet := tax.Category(taxonomy.CatTech)
	boundSet := tax.Category(taxonomy.CatMissedBound)
	waitSet := tax.Category(taxonomy.CatMissedWait)
	hitDownSet := tax.Category(taxonomy.CatHitDown).Union(tax.Category(taxonomy.CatDamage))
	getupSet := tax.Category(taxonomy.CatGetup)
	getupAttackSet := tax.Category(taxonomy.CatGetupAttack)
	rollFSet := tax.Category(taxonomy.CatDownRollF)
	rollBSet := tax.Category(taxonomy.CatDownRollB)
	fallSet := tax.Category(taxonomy.CatFall)

	// Path (a): successful tech entries.
	for _, i := range own.Entries(techSet) {
		s, _ := own.StateAt(i)
		pct, _ := own.PercentAt(i)
		frame := own.FrameAt(i)

		if s == taxonomy.StatePassive {
			out = append(out, Knockdown{Frame: frame, ResolvedFrame: frame, Option: OptTechInPlace, Percent: round1(pct)})
			continue
		}
		dir, ok := directionAt(own, opp, i, s == taxonomy.StatePassiveF)
		if !ok {
			continue
		}
		opt := OptTechAway
		if dir == timeline.Toward {
			opt = OptTechToward
		}
		out = append(out, Knockdown{Frame: frame, ResolvedFrame: frame, Option: opt, Percent: round1(pct)})
	}

	// Path (b): missed-tech bounces resolved by the first qualifying
	// follow-up state.
	for _, i := range own.Entries(boundSet) {
		pct, _ := own.PercentAt(i) // percent at time of knockdown
		frame := own.FrameAt(i)

		j, found := own.Lookahead(i, p.ResolveWindow, func(j int) bool {
			return !own.InSet(j, boundSet) && !own.InSet(j, waitSet)
		})
		if !found {
			continue
		}

		s, ok := own.StateAt(j)
		if !ok {
			continue
		}
		resolved := own.FrameAt(j)

		var opt KnockdownOption
		switch {
		case fallSet.Contains(s) && airborneAt(own, j):
			// Slid off the platform during the fall-state window. When a
			// frame is both airborne-fall and damaged, it classifies as
			// slideoff (the airborne check runs first).
			opt = OptSlideoff
		case hitDownSet.Contains(s):
			opt = OptHitWhileDown
		case getupSet.Contains(s):
			opt = OptGetup
		case getupAttackSet.Contains(s):
			opt = OptGetupAttack
		case rollFSet.Contains(s) || rollBSet.Contains(s):
			dir, ok := directionAt(own, opp, j, rollFSet.Contains(s))
			if !ok {
				continue
			}
			opt = OptRollAway
			if dir == timeline.Toward {
				opt = OptRollToward
			}
		default:
			continue
		}

		out = append(out, Knockdown{Frame: frame, ResolvedFrame: resolved, Option: opt, Percent: round1(pct)})
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].Frame != out[b].Frame {
			return out[a].Frame < out[b].Frame
		}
		return out[a].ResolvedFrame < out[b].ResolvedFrame
	})
	return out
}

// directionAt classifies the action at index i on own as toward or away
// from the opponent, using the opponent's position at the same frame.
func directionAt(own, opp *timeline.Timeline, i int, isForward bool) (timeline.Direction, bool) {
	myX, okX := own.PosXAt(i)
	facing, okF := own.FacingAt(i)
	oppX, okOpp := opp.PosXAtFrame(own.FrameAt(i))
	if !okX || !okF || !okOpp {
		return "", false
	}
	return timeline.ClassifyDirection(myX, oppX, facing, isForward), true
}

func airborneAt(t *timeline.Timeline, i int) bool {
	a, ok := t.AirborneAt(i)
	return ok && a
}
