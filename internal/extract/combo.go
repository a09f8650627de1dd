package extract

import (
	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// Strictness presets for combo grouping. Each substitutes the gap
// tolerance without changing the algorithm.
const (
	StrictnessTrueCombo  = 0 // continuous hitstun
	StrictnessDefault    = 1 // slippi-js style
	StrictnessTechChase  = 2
	StrictnessLedgeguard = 3 // scramble / ledgeguard
)

var strictnessGaps = map[int]int{
	StrictnessTrueCombo:  0,
	StrictnessDefault:    45,
	StrictnessTechChase:  90,
	StrictnessLedgeguard: 180,
}

// GapForStrictness maps a strictness preset to its gap tolerance in
// frames. Unknown levels fall back to the default.
func GapForStrictness(level int) int {
	if gap, ok := strictnessGaps[level]; ok {
		return gap
	}
	return strictnessGaps[StrictnessDefault]
}

// ComboParams are the tunable combo-grouping thresholds. These are
// empirical, character-sensitive constants; keep them overridable.
type ComboParams struct {
	// GapFrames is the maximum idle frames between hits before the open
	// combo closes.
	GapFrames int
	// KillWindow is the maximum frames between a combo's last hit and a
	// stock loss for the loss to be attributed to the combo. Blast-zone
	// travel can take 100+ frames after the final hit.
	KillWindow int
}

// DefaultComboParams returns the standard thresholds.
func DefaultComboParams() ComboParams {
	return ComboParams{GapFrames: 45, KillWindow: 150}
}

// Combo is one grouped sequence of hits on the defender.
type Combo struct {
	StartFrame  int     `json:"start_frame"`
	EndFrame    int     `json:"end_frame"`
	Damage      float64 `json:"damage"`
	NumHits     int     `json:"num_hits"`
	StartedByID int     `json:"started_by_id"`
	StartedBy   string  `json:"started_by"`
	EndedByID   int     `json:"ended_by_id"`
	EndedBy     string  `json:"ended_by"`
	Killed      bool    `json:"killed"`
	StartPct    float64 `json:"start_pct"`
	EndPct      float64 `json:"end_pct"`
}

// Event wraps the combo in the flat event envelope.
func (c Combo) Event() Event {
	return Event{Kind: KindCombo, StartFrame: c.StartFrame, EndFrame: c.EndFrame, Killed: c.Killed, Data: c}
}

// Combos walks the defender's timeline and groups percent increases into
// combos. A combo starts on the first hit and ends when GapFrames pass
// with no new hit or the defender loses a stock. A stock loss shortly
// after a combo's natural close (within KillWindow frames, with no new
// combo opened in between) retroactively marks that combo killed and
// extends its end frame to the death frame.
//
// The move attributed to each hit is read from the attacker's timeline at
// the defender's exact hit frame; move 0 ("unknown") when the attacker has
// no record there. Frames with missing percent or stocks are skipped
// without breaking an open combo.
func Combos(tax *taxonomy.Taxonomy, attacker, defender *timeline.Timeline, p ComboParams) []Combo {
	var combos []Combo

	inCombo := false
	var startFrame, lastHitFrame, numHits, startedBy, endedBy int
	var startPct, currentPct float64

	closeCombo := func(endFrame int, killed bool) {
		combos = append(combos, Combo{
			StartFrame:  startFrame,
			EndFrame:    endFrame,
			Damage:      round1(round1(currentPct) - round1(startPct)),
			NumHits:     numHits,
			StartedByID: startedBy,
			StartedBy:   tax.MoveName(startedBy),
			EndedByID:   endedBy,
			EndedBy:     tax.MoveName(endedBy),
			Killed:      killed,
			StartPct:    round1(startPct),
			EndPct:      round1(currentPct),
		})
		inCombo = false
	}

	for i := 1; i < defender.Len(); i++ {
		pct, okPct := defender.PercentAt(i)
		prevPct, okPrev := defender.PercentAt(i - 1)
		if !okPct || !okPrev {
			continue
		}

		frame := defender.FrameAt(i)
		hit := round1(pct)-round1(prevPct) > 0

		stocks, okStocks := defender.StocksAt(i)
		prevStocks, okPrevStocks := defender.StocksAt(i - 1)
		stockLost := okStocks && okPrevStocks && stocks < prevStocks

		if hit {
			moveID := attacker.LastAttackAtFrame(frame)
			if !inCombo {
				inCombo = true
				startFrame = frame
				startPct = prevPct
				startedBy = moveID
				numHits = 1
			} else {
				numHits++
			}
			endedBy = moveID
			lastHitFrame = frame
			currentPct = pct
		}

		if inCombo && stockLost {
			// Stock lost while the combo is still active: clear kill.
			closeCombo(frame, true)
			continue
		}

		if !inCombo && stockLost && len(combos) > 0 {
			// Stock lost shortly after a combo ended: retroactive kill.
			last := &combos[len(combos)-1]
			if !last.Killed && frame-last.EndFrame <= p.KillWindow {
				last.Killed = true
				last.EndFrame = frame
			}
			continue
		}

		if inCombo && !hit && frame-lastHitFrame > p.GapFrames {
			closeCombo(lastHitFrame, false)
		}
	}

	// Close any combo left open at end of data.
	if inCombo {
		closeCombo(lastHitFrame, false)
	}

	return combos
}
