// Package extract turns per-frame player timelines into semantic events:
// combos, knockdown options, wavedashes, edgeguards, neutral windows, and
// trigger-to-outcome confirmations.
//
// Every extractor is a pure, synchronous scan over read-only timelines.
// Events within one result sequence are ordered by start frame; events are
// never mutated after an extractor returns them (retroactive kill
// attribution is applied to the internal buffer before return).
package extract

import "math"

// Event kinds, used when events are persisted or exported as opaque
// records.
const (
	KindCombo        = "combo"
	KindKnockdown    = "knockdown"
	KindWavedash     = "wavedash"
	KindEdgeguard    = "edgeguard"
	KindNeutral      = "neutral"
	KindConfirmation = "confirmation"
	KindKill         = "kill"
	KindRoll         = "roll"
	KindHitTaken     = "hit_taken"
	KindLedgeOption  = "ledge_option"
	KindCrouchCancel = "crouch_cancel"
	KindTechChase    = "tech_chase"
)

// Event is the flat envelope consumers (store, clip export) see. Data
// holds the kind-specific record.
type Event struct {
	Kind       string      `json:"kind"`
	StartFrame int         `json:"start_frame"`
	EndFrame   int         `json:"end_frame"`
	Killed     bool        `json:"killed,omitempty"`
	Data       interface{} `json:"data"`
}

// round1 rounds to one decimal. Percent values are rounded independently
// before subtracting so single-frame deltas do not compound float error.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
