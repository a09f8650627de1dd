package extract

import (
	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// ConfirmOutcome selects what counts as a conversion after a trigger.
type ConfirmOutcome string

const (
	// OutcomeStockLoss converts when the reactor loses a stock within the
	// window.
	OutcomeStockLoss ConfirmOutcome = "stock_loss"
	// OutcomeMoveLands converts when a named move lands on the reactor
	// within the window.
	OutcomeMoveLands ConfirmOutcome = "move_lands"
	// OutcomeNone just enumerates triggers; converted is always false.
	OutcomeNone ConfirmOutcome = "none"
)

// ConfirmParams is the parameterized trigger/outcome scan the bespoke
// extractors specialize. Exactly one trigger applies: TriggerStates when
// non-nil, otherwise TriggerMoveID.
type ConfirmParams struct {
	// TriggerMoveID triggers when a hit on the reactor is attributed to
	// this move on the actor's timeline.
	TriggerMoveID int
	// TriggerStates triggers when the actor enters any of these states.
	TriggerStates taxonomy.StateSet
	Outcome       ConfirmOutcome
	// OutcomeMoveID names the converting move for OutcomeMoveLands.
	OutcomeMoveID int
	// Window is the outcome search bound in frames after the trigger.
	Window int
}

// DefaultConfirmWindow is the standard outcome search bound.
const DefaultConfirmWindow = 150

// Confirmation is one trigger occurrence and whether it converted.
type Confirmation struct {
	Frame        int     `json:"frame"`
	Converted    bool    `json:"converted"`
	OutcomeFrame int     `json:"outcome_frame,omitempty"` // 0 when not converted
	ReactorPct   float64 `json:"reactor_pct"`             // at trigger time
}

// Event wraps the confirmation in the flat event envelope.
func (c Confirmation) Event() Event {
	end := c.Frame
	if c.Converted {
		end = c.OutcomeFrame
	}
	return Event{Kind: KindConfirmation, StartFrame: c.Frame, EndFrame: end, Data: c}
}

// Confirmations runs the parameterized trigger-to-outcome scan: one
// record per trigger occurrence, converted when the configured outcome
// happens on the reactor within the window. Triggers with no qualifying
// outcome frame simply yield converted=false.
func Confirmations(actor, reactor *timeline.Timeline, p ConfirmParams) []Confirmation {
	var out []Confirmation
	if p.Window <= 0 {
		p.Window = DefaultConfirmWindow
	}

	for _, frame := range triggerFrames(actor, reactor, p) {
		ri := reactor.NearestIndex(frame)
		pct, _ := reactor.PercentAt(ri)

		c := Confirmation{Frame: frame, ReactorPct: round1(pct)}
		switch p.Outcome {
		case OutcomeStockLoss:
			if j, ok := reactor.LookaheadStockLoss(ri, p.Window); ok {
				c.Converted = true
				c.OutcomeFrame = reactor.FrameAt(j)
			}
		case OutcomeMoveLands:
			if j, ok := hitByMove(actor, reactor, ri, p.Window, p.OutcomeMoveID); ok {
				c.Converted = true
				c.OutcomeFrame = reactor.FrameAt(j)
			}
		}
		out = append(out, c)
	}

	return out
}

// triggerFrames enumerates trigger occurrences in frame order.
func triggerFrames(actor, reactor *timeline.Timeline, p ConfirmParams) []int {
	var frames []int

	if p.TriggerStates != nil {
		for _, i := range actor.Entries(p.TriggerStates) {
			frames = append(frames, actor.FrameAt(i))
		}
		return frames
	}

	for i := 1; i < reactor.Len(); i++ {
		pct, okPct := reactor.PercentAt(i)
		prevPct, okPrev := reactor.PercentAt(i - 1)
		if !okPct || !okPrev || round1(pct)-round1(prevPct) <= 0 {
			continue
		}
		frame := reactor.FrameAt(i)
		if actor.LastAttackAtFrame(frame) == p.TriggerMoveID {
			frames = append(frames, frame)
		}
	}
	return frames
}

// hitByMove finds the first hit on the reactor after index i, within the
// window, attributed to the named move on the actor's timeline.
func hitByMove(actor, reactor *timeline.Timeline, i, window, moveID int) (int, bool) {
	return reactor.Lookahead(i, window, func(j int) bool {
		if j == 0 {
			return false
		}
		pct, okPct := reactor.PercentAt(j)
		prevPct, okPrev := reactor.PercentAt(j - 1)
		if !okPct || !okPrev || round1(pct)-round1(prevPct) <= 0 {
			return false
		}
		return actor.LastAttackAtFrame(reactor.FrameAt(j)) == moveID
	})
}
