package extract

import (
	"math"

	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// AngleCategory buckets a wavedash by slide velocity. Flatter angles
// convert more of the air dodge into horizontal slide.
type AngleCategory string

const (
	AngleFlat     AngleCategory = "flat"
	AngleModerate AngleCategory = "moderate"
	AngleSteep    AngleCategory = "steep"
)

// WavedashParams are the detection thresholds. All of them are empirical
// and character-sensitive; they must stay overridable.
type WavedashParams struct {
	// AirdodgeWindow is the maximum frames between becoming airborne and
	// the air-dodge input for the motion to count.
	AirdodgeWindow int
	// LandingWindow is the maximum frames between the air dodge and a
	// ground state.
	LandingWindow int
	// NoiseFloor is the minimum horizontal ground speed at landing; below
	// it the motion is treated as a near-vertical stall and discarded.
	NoiseFloor float64
	// FlatVelocity and ModerateVelocity are the angle-bucket boundaries.
	FlatVelocity     float64
	ModerateVelocity float64
}

// DefaultWavedashParams returns the standard thresholds.
func DefaultWavedashParams() WavedashParams {
	return WavedashParams{
		AirdodgeWindow:   6,
		LandingWindow:    20,
		NoiseFloor:       0.5,
		FlatVelocity:     1.5,
		ModerateVelocity: 0.8,
	}
}

// Wavedash is one detected jump-cancel-into-air-dodge ground slide.
type Wavedash struct {
	StartFrame int     `json:"start_frame"` // jumpsquat entry
	LandFrame  int     `json:"land_frame"`
	PosX       float64 `json:"pos_x"`
	Velocity   float64 `json:"velocity"` // signed ground velocity at landing
	SlideVel   float64 `json:"slide_velocity"`
	Forward    bool    `json:"forward"` // slide matches facing at jumpsquat
	TowardOpp  *bool   `json:"toward_opponent,omitempty"`
	LateFrames int     `json:"late_frames"` // 0 = frame-perfect air dodge
	IsLate     bool    `json:"is_late"`
	Angle      AngleCategory `json:"angle_category"`
}

// Event wraps the wavedash in the flat event envelope.
func (w Wavedash) Event() Event {
	return Event{Kind: KindWavedash, StartFrame: w.StartFrame, EndFrame: w.LandFrame, Data: w}
}

// Wavedashes detects the three-phase motion on the player's own timeline:
// jumpsquat, then an air-dodge input within AirdodgeWindow frames of
// becoming airborne, then a ground landing with non-trivial horizontal
// velocity within LandingWindow frames. opp may be nil; TowardOpp is set
// only when the opponent's position at the landing frame is available.
func Wavedashes(tax *taxonomy.Taxonomy, own, opp *timeline.Timeline, p WavedashParams) []Wavedash {
	var out []Wavedash

	jsSet := tax.Category(taxonomy.CatJumpsquat)
	airdodgeSet := tax.Category(taxonomy.CatAirdodge)
	groundSet := tax.Category(taxonomy.CatGrounded).Union(tax.Category(taxonomy.CatLanding))

	for _, i := range own.Entries(jsSet) {
		facing, okFacing := own.FacingAt(i)

		// Advance through consecutive jumpsquat frames to the first
		// airborne record.
		air := i + 1
		for air < own.Len() && own.InSet(air, jsSet) {
			air++
		}
		if air >= own.Len() || own.InSet(air, groundSet) {
			continue
		}

		// Air dodge within the window; a ground state first means this was
		// an ordinary jump.
		dodge := -1
		abandoned := false
		airFrame := own.FrameAt(air)
		for j := air; j < own.Len() && own.FrameAt(j)-airFrame <= p.AirdodgeWindow; j++ {
			if own.InSet(j, airdodgeSet) {
				dodge = j
				break
			}
			if own.InSet(j, groundSet) {
				abandoned = true
				break
			}
		}
		if dodge < 0 || abandoned {
			continue
		}
		lateFrames := own.FrameAt(dodge) - airFrame

		land, found := own.LookaheadSet(dodge, p.LandingWindow, groundSet)
		if !found {
			continue
		}

		vel, okVel := own.VelXGroundAt(land)
		if !okVel || math.Abs(vel) < p.NoiseFloor {
			// Near-vertical stall, not a slide.
			continue
		}

		landFrame := own.FrameAt(land)
		posX, _ := own.PosXAt(land)
		slide := math.Abs(vel)

		wd := Wavedash{
			StartFrame: own.FrameAt(i),
			LandFrame:  landFrame,
			PosX:       posX,
			Velocity:   vel,
			SlideVel:   slide,
			Forward:    okFacing && (vel > 0) == (facing > 0),
			LateFrames: lateFrames,
			IsLate:     lateFrames > 0,
			Angle:      angleFor(slide, p),
		}
		if opp != nil {
			if oppX, ok := opp.PosXAtFrame(landFrame); ok {
				toward := (oppX > posX) == (vel > 0)
				wd.TowardOpp = &toward
			}
		}
		out = append(out, wd)
	}

	return out
}

func angleFor(slide float64, p WavedashParams) AngleCategory {
	switch {
	case slide >= p.FlatVelocity:
		return AngleFlat
	case slide >= p.ModerateVelocity:
		return AngleModerate
	default:
		return AngleSteep
	}
}
