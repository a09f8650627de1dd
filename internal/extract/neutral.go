package extract

import (
	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// NeutralOutcome says which side ended the neutral window with a hit,
// from the perspective of the player whose timeline is scanned first.
type NeutralOutcome string

const (
	NeutralWon  NeutralOutcome = "won"
	NeutralLost NeutralOutcome = "lost"
)

// NeutralParams bounds which windows count.
type NeutralParams struct {
	// MinFrames is the shortest both-free-to-act stretch that counts as
	// neutral. Brief respites between combo hits fall below it.
	MinFrames int
}

// DefaultNeutralParams returns the standard minimum.
func DefaultNeutralParams() NeutralParams {
	return NeutralParams{MinFrames: 15}
}

// Neutral is one neutral window that ended with a hit.
type Neutral struct {
	StartFrame  int            `json:"start_frame"`
	EndFrame    int            `json:"end_frame"`
	Frames      int            `json:"frames"`
	Outcome     NeutralOutcome `json:"outcome"`
	OpenerID    int            `json:"opener_id"`
	OpenerMove  string         `json:"opener_move"`
	OpenerGroup string         `json:"opener_group"`
	MyPct       float64        `json:"my_pct"`  // at window start
	OppPct      float64        `json:"opp_pct"` // at window start
	MyPosX      float64        `json:"my_pos_x"`
}

// Event wraps the neutral window in the flat event envelope.
func (n Neutral) Event() Event {
	return Event{Kind: KindNeutral, StartFrame: n.StartFrame, EndFrame: n.EndFrame, Data: n}
}

// Neutrals finds windows where both players are simultaneously free to
// act (neither in hitstun, grabbed, dead, or spawning) for at least
// MinFrames, and classifies how each ends. Windows whose end is
// ambiguous (both or neither side in hitstun) are discarded. The opener
// move is read from the winner's own timeline at the ending frame.
// Frames with a missing state on either side count as non-neutral.
func Neutrals(tax *taxonomy.Taxonomy, own, opp *timeline.Timeline, p NeutralParams) []Neutral {
	var out []Neutral

	busy := tax.Categories(taxonomy.CatDamage, taxonomy.CatGrabbed, taxonomy.CatDead, taxonomy.CatSpawn)
	damageSet := tax.Category(taxonomy.CatDamage)

	startFrame := -1
	var startMyPct, startOppPct, startMyX float64

	for i := 0; i < own.Len(); i++ {
		frame := own.FrameAt(i)
		oi, ok := opp.Index(frame)
		if !ok {
			continue
		}

		myState, okMy := own.StateAt(i)
		oppState, okOpp := opp.StateAt(oi)
		bothFree := okMy && okOpp && !busy.Contains(myState) && !busy.Contains(oppState)

		if bothFree {
			if startFrame < 0 {
				startFrame = frame
				startMyPct = orZero(own.PercentAt(i))
				startOppPct = orZero(opp.PercentAt(oi))
				startMyX = orZero(own.PosXAt(i))
			}
			continue
		}

		if startFrame >= 0 && frame-startFrame >= p.MinFrames {
			myHit := okMy && damageSet.Contains(myState)
			oppHit := okOpp && damageSet.Contains(oppState)

			var outcome NeutralOutcome
			var moveID int
			switch {
			case myHit && !oppHit:
				outcome = NeutralLost
				moveID = opp.LastAttackAtFrame(frame)
			case oppHit && !myHit:
				outcome = NeutralWon
				moveID = own.LastAttackAtFrame(frame)
			default:
				// Both or neither damaged: ambiguous end, discard.
				startFrame = -1
				continue
			}

			out = append(out, Neutral{
				StartFrame:  startFrame,
				EndFrame:    frame,
				Frames:      frame - startFrame,
				Outcome:     outcome,
				OpenerID:    moveID,
				OpenerMove:  tax.MoveName(moveID),
				OpenerGroup: tax.MoveGroup(moveID),
				MyPct:       startMyPct,
				OppPct:      startOppPct,
				MyPosX:      startMyX,
			})
		}
		startFrame = -1
	}

	return out
}

func orZero(v float64, ok bool) float64 {
	if !ok {
		return 0
	}
	return v
}
