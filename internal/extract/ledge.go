package extract

import (
	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// LedgeOption is the player's classified exit from a ledge hang.
type LedgeOption string

const (
	LedgeGetup      LedgeOption = "getup"
	LedgeGetupSlow  LedgeOption = "getup_slow"
	LedgeAttack     LedgeOption = "attack"
	LedgeAttackSlow LedgeOption = "attack_slow"
	LedgeRoll       LedgeOption = "roll"
	LedgeRollSlow   LedgeOption = "roll_slow"
	LedgeJump       LedgeOption = "jump"
	LedgeDropJump   LedgeOption = "drop_jump"
	Ledgedash       LedgeOption = "ledgedash"
	LedgeRegrab     LedgeOption = "re_grab"
	LedgeHitOff     LedgeOption = "hit_offstage"
	LedgeDropOther  LedgeOption = "drop_other"
	LedgeOther      LedgeOption = "other"
)

// namedLedgeExits are the direct from-hang states.
var namedLedgeExits = map[int]LedgeOption{
	254: LedgeGetup,
	255: LedgeGetupSlow,
	256: LedgeAttack,
	257: LedgeAttackSlow,
	258: LedgeRoll,
	259: LedgeRollSlow,
	260: LedgeJump,
	261: LedgeJump,
	262: LedgeJump,
	263: LedgeJump,
}

// LedgeParams bounds the drop classification.
type LedgeParams struct {
	// DropWindow is how many records past a ledge drop to search for the
	// drop's real intent (double jump, ledgedash, regrab).
	DropWindow int
}

// DefaultLedgeParams returns the standard window.
func DefaultLedgeParams() LedgeParams {
	return LedgeParams{DropWindow: 20}
}

// LedgeExit is one classified exit from a ledge hang.
type LedgeExit struct {
	Frame   int         `json:"frame"` // last hang frame
	Option  LedgeOption `json:"option"`
	Percent float64     `json:"percent"`
}

// Event wraps the ledge exit in the flat event envelope.
func (l LedgeExit) Event() Event {
	return Event{Kind: KindLedgeOption, StartFrame: l.Frame, EndFrame: l.Frame, Data: l}
}

// LedgeExits classifies every exit from a ledge hang on the player's own
// timeline. Named options (getup, attack, roll, jump and their slow
// variants) read directly from the first post-hang state; drops are
// resolved by scanning ahead for a double jump (drop_jump), a
// jumpsquat-then-airdodge sequence (ledgedash), a return to the ledge
// (re_grab), or hitstun (hit_offstage).
func LedgeExits(tax *taxonomy.Taxonomy, own *timeline.Timeline, p LedgeParams) []LedgeExit {
	var out []LedgeExit

	hangSet := tax.Category(taxonomy.CatLedgeHang)
	fallSet := tax.Category(taxonomy.CatFall)
	damageSet := tax.Category(taxonomy.CatDamage)
	jumpAerial := taxonomy.NewStateSet(taxonomy.StateJumpAerialF, taxonomy.StateJumpAerialB)

	for _, i := range own.Exits(hangSet) {
		next := i + 1
		if next >= own.Len() {
			continue
		}
		s, ok := own.StateAt(next)
		if !ok {
			continue
		}
		pct, _ := own.PercentAt(i)

		var option LedgeOption
		switch {
		case namedLedgeExits[s] != "":
			option = namedLedgeExits[s]
		case fallSet.Contains(s):
			option = classifyLedgeDrop(own, next, p.DropWindow, jumpAerial, hangSet, damageSet)
		default:
			option = LedgeOther
		}

		out = append(out, LedgeExit{
			Frame:   own.FrameAt(i),
			Option:  option,
			Percent: round1(pct),
		})
	}

	return out
}

func classifyLedgeDrop(t *timeline.Timeline, next, window int, jumpAerial, hangSet, damageSet taxonomy.StateSet) LedgeOption {
	sawJumpsquat := false
	for j := next + 1; j < t.Len() && j <= next+window; j++ {
		s, ok := t.StateAt(j)
		if !ok {
			continue
		}
		switch {
		case jumpAerial.Contains(s):
			return LedgeDropJump
		case s == taxonomy.StateKneeBend:
			sawJumpsquat = true
		case sawJumpsquat && s == taxonomy.StateEscapeAir:
			return Ledgedash
		case hangSet.Contains(s):
			return LedgeRegrab
		case damageSet.Contains(s):
			return LedgeHitOff
		}
	}
	return LedgeDropOther
}
