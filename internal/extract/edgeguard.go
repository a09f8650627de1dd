package extract

import (
	"math"

	"github.com/meleetools/framescan/internal/timeline"
)

// EdgeguardParams are the grouping thresholds.
type EdgeguardParams struct {
	// EdgeX is the stage's ledge x-coordinate. Frames with |x| beyond it
	// are off-stage.
	EdgeX float64
	// BelowStageY is the y threshold under which a player counts as
	// off-stage regardless of x.
	BelowStageY float64
	// MergeGap is the maximum frames between off-stage hits in the same
	// edgeguard attempt.
	MergeGap int
	// KillWindow is the maximum frames between a group's last hit and a
	// stock loss for the kill to credit the edgeguard.
	KillWindow int
}

// DefaultEdgeguardParams returns the standard thresholds for a given
// stage edge.
func DefaultEdgeguardParams(edgeX float64) EdgeguardParams {
	return EdgeguardParams{EdgeX: edgeX, BelowStageY: -10, MergeGap: 60, KillWindow: 150}
}

// Edgeguard is one grouped sequence of off-stage hits on the opponent.
type Edgeguard struct {
	StartFrame int     `json:"start_frame"`
	EndFrame   int     `json:"end_frame"`
	NumHits    int     `json:"num_hits"`
	Damage     float64 `json:"damage"`
	Killed     bool    `json:"killed"`
}

// Event wraps the edgeguard in the flat event envelope.
func (e Edgeguard) Event() Event {
	return Event{Kind: KindEdgeguard, StartFrame: e.StartFrame, EndFrame: e.EndFrame, Killed: e.Killed, Data: e}
}

// Edgeguards walks the opponent's timeline and groups off-stage percent
// increases into edgeguard attempts. Hits within MergeGap frames of each
// other merge into one group. A stock loss while a group is open, or
// within KillWindow frames of the previous group's last hit, marks that
// group killed. Groups with no hits are never emitted.
func Edgeguards(opp *timeline.Timeline, p EdgeguardParams) []Edgeguard {
	var out []Edgeguard

	open := false
	var startFrame, lastHitFrame, numHits int
	var damage float64

	closeGroup := func(endFrame int, killed bool) {
		out = append(out, Edgeguard{
			StartFrame: startFrame,
			EndFrame:   endFrame,
			NumHits:    numHits,
			Damage:     round1(damage),
			Killed:     killed,
		})
		open = false
	}

	for i := 1; i < opp.Len(); i++ {
		frame := opp.FrameAt(i)

		stocks, okStocks := opp.StocksAt(i)
		prevStocks, okPrevStocks := opp.StocksAt(i - 1)
		stockLost := okStocks && okPrevStocks && stocks < prevStocks

		if stockLost {
			if open {
				closeGroup(frame, true)
			} else if len(out) > 0 {
				last := &out[len(out)-1]
				if !last.Killed && frame-last.EndFrame <= p.KillWindow {
					last.Killed = true
					last.EndFrame = frame
				}
			}
			continue
		}

		if open && frame-lastHitFrame > p.MergeGap {
			closeGroup(lastHitFrame, false)
		}

		x, okX := opp.PosXAt(i)
		y, okY := opp.PosYAt(i)
		offstage := (okX && math.Abs(x) > p.EdgeX) || (okY && y < p.BelowStageY)
		if !offstage {
			continue
		}

		pct, okPct := opp.PercentAt(i)
		prevPct, okPrev := opp.PercentAt(i - 1)
		if !okPct || !okPrev {
			continue
		}
		dmg := round1(pct) - round1(prevPct)
		if dmg <= 0 {
			continue
		}

		if !open {
			open = true
			startFrame = frame
			numHits = 0
			damage = 0
		}
		numHits++
		damage += dmg
		lastHitFrame = frame
	}

	if open {
		closeGroup(lastHitFrame, false)
	}

	return out
}
