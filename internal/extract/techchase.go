package extract

import (
	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// TechChaseParams bounds the follow-up search.
type TechChaseParams struct {
	// Knockdown bounds the opponent's option resolution.
	Knockdown KnockdownParams
	// FollowupWindow is how many frames after the opponent's chosen option
	// a hit still counts as the chase follow-up.
	FollowupWindow int
}

// DefaultTechChaseParams returns the standard windows.
func DefaultTechChaseParams() TechChaseParams {
	return TechChaseParams{Knockdown: DefaultKnockdownParams(), FollowupWindow: 90}
}

// TechChase is one knockdown of the opponent and whether the player
// converted it into a follow-up hit.
type TechChase struct {
	KnockdownFrame int             `json:"knockdown_frame"`
	OptionFrame    int             `json:"option_frame"`
	Option         KnockdownOption `json:"option"`
	KnockdownPct   float64         `json:"knockdown_pct"`
	FollowupHit    bool            `json:"followup_hit"`
	FollowupMoveID int             `json:"followup_move_id,omitempty"`
	FollowupMove   string          `json:"followup_move,omitempty"`
}

// Event wraps the tech chase in the flat event envelope.
func (t TechChase) Event() Event {
	return Event{Kind: KindTechChase, StartFrame: t.KnockdownFrame, EndFrame: t.OptionFrame, Data: t}
}

// TechChases finds every knockdown of the opponent and checks for a
// follow-up hit within FollowupWindow frames of the opponent's chosen
// option. The follow-up move is read from the chaser's own timeline at
// the hit frame.
func TechChases(tax *taxonomy.Taxonomy, own, opp *timeline.Timeline, p TechChaseParams) []TechChase {
	var out []TechChase

	for _, kd := range Knockdowns(tax, opp, own, p.Knockdown) {
		tc := TechChase{
			KnockdownFrame: kd.Frame,
			OptionFrame:    kd.ResolvedFrame,
			Option:         kd.Option,
			KnockdownPct:   kd.Percent,
		}

		start := opp.NearestIndex(kd.ResolvedFrame)
		for j := start + 1; j < opp.Len(); j++ {
			frame := opp.FrameAt(j)
			if frame > kd.ResolvedFrame+p.FollowupWindow {
				break
			}
			pct, okPct := opp.PercentAt(j)
			prevPct, okPrev := opp.PercentAt(j - 1)
			if !okPct || !okPrev || round1(pct)-round1(prevPct) <= 0 {
				continue
			}
			tc.FollowupHit = true
			tc.FollowupMoveID = own.LastAttackAtFrame(frame)
			tc.FollowupMove = tax.MoveName(tc.FollowupMoveID)
			break
		}

		out = append(out, tc)
	}

	return out
}
