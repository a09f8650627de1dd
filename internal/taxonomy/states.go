// Package taxonomy holds the static lookup tables the extractors classify
// against: action-state categories, move names, and stage geometry.
//
// All tables are immutable process-lifetime data. Callers obtain a Taxonomy
// once at startup (Default, optionally overlaid from config) and pass it by
// reference into extractors; nothing here is a mutable global.
package taxonomy

// StateSet is a set of raw action-state IDs.
type StateSet map[int]struct{}

// NewStateSet builds a StateSet from a list of IDs.
func NewStateSet(ids ...int) StateSet {
	s := make(StateSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set.
func (s StateSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Union returns a new set containing every ID from s and each of others.
func (s StateSet) Union(others ...StateSet) StateSet {
	out := make(StateSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	for _, o := range others {
		for id := range o {
			out[id] = struct{}{}
		}
	}
	return out
}

func stateRange(lo, hi int) StateSet {
	s := make(StateSet, hi-lo+1)
	for id := lo; id <= hi; id++ {
		s[id] = struct{}{}
	}
	return s
}

// Individual action-state IDs referenced directly by the extractors.
// Names follow the common Melee action-state naming.
const (
	StateWait        = 14
	StateKneeBend    = 24 // jumpsquat
	StateDamageElec  = 357
	StateGuardOn     = 178
	StateGuard       = 179
	StateGuardOff    = 180
	StatePassive     = 199 // tech in place
	StatePassiveF    = 200 // tech roll forward
	StatePassiveB    = 201 // tech roll backward
	StateEscapeF     = 233 // roll forward
	StateEscapeB     = 234 // roll backward
	StateEscape      = 235 // spot dodge
	StateEscapeAir   = 236 // air dodge
	StateCliffWait   = 253 // ledge hang
	StateCliffWait1  = 362
	StateCliffWait2  = 363
	StateDownBoundU  = 183 // missed tech, face up
	StateDownBoundD  = 191 // missed tech, face down
	StateJumpAerialF = 27
	StateJumpAerialB = 28
)

// Category names used by the extractors. Categories may overlap; a state
// can belong to "damage" and to a finer subset at the same time.
const (
	CatDead         = "dead"
	CatSpawn        = "spawn"
	CatIdle         = "idle"
	CatDashRun      = "dash_run"
	CatJumpsquat    = "jumpsquat"
	CatJump         = "jump"
	CatFall         = "fall"
	CatCrouch       = "crouch"
	CatLanding      = "landing"
	CatJab          = "jab"
	CatDashAttack   = "dash_attack"
	CatFtilt        = "ftilt"
	CatUtilt        = "utilt"
	CatDtilt        = "dtilt"
	CatFsmash       = "fsmash"
	CatUsmash       = "usmash"
	CatDsmash       = "dsmash"
	CatNair         = "nair"
	CatFair         = "fair"
	CatBair         = "bair"
	CatUair         = "uair"
	CatDair         = "dair"
	CatAerial       = "aerial"
	CatGroundAttack = "ground_attack"
	CatDamage       = "damage"
	CatShield       = "shield"
	CatRoll         = "roll"
	CatSpotdodge    = "spotdodge"
	CatAirdodge     = "airdodge"
	CatGrab         = "grab"
	CatGrabbed      = "grabbed"
	CatTech         = "tech"
	CatMissedBound  = "missed_bound"
	CatMissedWait   = "missed_wait"
	CatHitDown      = "hit_down"
	CatGetup        = "getup"
	CatGetupAttack  = "getup_attack"
	CatDownRollF    = "down_roll_f"
	CatDownRollB    = "down_roll_b"
	CatLedgeHang    = "ledge_hang"
	CatLedgeGetup   = "ledge_getup"
	CatLedgeAttack  = "ledge_attack"
	CatLedgeRoll    = "ledge_roll"
	CatLedgeJump    = "ledge_jump"
	CatGrounded     = "grounded"
)

func defaultCategories() map[string]StateSet {
	damage := stateRange(75, 91).Union(NewStateSet(StateDamageElec))
	return map[string]StateSet{
		CatDead:       stateRange(0, 10),
		CatSpawn:      NewStateSet(11, 12, 13, 322, 323, 324),
		CatIdle:       NewStateSet(14, 341, 342, 343, 344, 345),
		CatDashRun:    NewStateSet(20, 21, 22, 23),
		CatJumpsquat:  NewStateSet(StateKneeBend),
		CatJump:       NewStateSet(25, 26, 27, 28),
		CatFall:       NewStateSet(29, 30, 31, 32, 33, 34),
		CatCrouch:     NewStateSet(39, 40, 41, 346, 347, 348),
		CatLanding:    NewStateSet(42, 43),
		CatJab:        NewStateSet(44, 45, 46, 47, 48, 49),
		CatDashAttack: NewStateSet(50),
		CatFtilt:      NewStateSet(51, 52, 53, 54, 55),
		CatUtilt:      NewStateSet(56),
		CatDtilt:      NewStateSet(57),
		CatFsmash:     NewStateSet(58, 59, 60, 61, 62, 351),
		CatUsmash:     NewStateSet(63),
		CatDsmash:     NewStateSet(64),
		CatNair:       NewStateSet(65),
		CatFair:       NewStateSet(66),
		CatBair:       NewStateSet(67),
		CatUair:       NewStateSet(68),
		CatDair:       NewStateSet(69),
		CatAerial:     NewStateSet(65, 66, 67, 68, 69),
		CatGroundAttack: stateRange(44, 64),
		CatDamage:       damage,
		CatShield:       NewStateSet(178, 179, 180, 349),
		CatRoll:         NewStateSet(StateEscapeF, StateEscapeB),
		CatSpotdodge:    NewStateSet(235, 350),
		CatAirdodge:     NewStateSet(StateEscapeAir),
		CatGrab:         NewStateSet(212, 213, 214, 215),
		CatGrabbed:      stateRange(223, 232).Union(NewStateSet(211, 212, 213, 214)),
		CatTech:         NewStateSet(StatePassive, StatePassiveF, StatePassiveB),
		CatMissedBound:  NewStateSet(StateDownBoundU, StateDownBoundD),
		CatMissedWait:   NewStateSet(184, 192),
		CatHitDown:      NewStateSet(185, 193),
		CatGetup:        NewStateSet(186, 194),
		CatGetupAttack:  NewStateSet(187, 195),
		CatDownRollF:    NewStateSet(188, 196),
		CatDownRollB:    NewStateSet(189, 197),
		CatLedgeHang:    NewStateSet(StateCliffWait, StateCliffWait1, StateCliffWait2),
		CatLedgeGetup:   NewStateSet(254, 255),
		CatLedgeAttack:  NewStateSet(256, 257),
		CatLedgeRoll:    NewStateSet(258, 259),
		CatLedgeJump:    NewStateSet(260, 261, 262, 263),
		// Grounded actionable states: idle, dash/run, crouch.
		CatGrounded: NewStateSet(14, 20, 21, 22, 23, 39, 40, 41),
	}
}

// Friendly names for the states that show up in event output. This is
// attribution metadata only; classification never depends on it.
var stateNames = map[int]string{
	14: "Idle",
	20: "Dash", 21: "Run",
	24:  "Jumpsquat",
	29:  "Fall", 35: "Helpless fall", 38: "Tumble",
	40:  "Crouching",
	42:  "Landing",
	50:  "Dash attack",
	53:  "F-tilt", 56: "Up tilt", 57: "Down tilt",
	60:  "F-smash", 63: "Up smash", 64: "Down smash",
	65:  "Nair", 66: "Fair", 67: "Bair", 68: "Up air", 69: "Down air",
	179: "Shielding", 182: "Powershield",
	183: "Missed tech (face up)", 191: "Missed tech (face down)",
	186: "Getup (face up)", 194: "Getup (face down)",
	187: "Getup attack (face up)", 195: "Getup attack (face down)",
	199: "Tech in place", 200: "Tech roll forward", 201: "Tech roll backward",
	212: "Grab", 214: "Dash grab",
	219: "Forward throw", 220: "Back throw", 221: "Up throw", 222: "Down throw",
	233: "Roll forward", 234: "Roll backward", 235: "Spot dodge", 236: "Air dodge",
	252: "Ledge grab", 253: "Ledge hang",
	254: "Ledge getup", 255: "Ledge getup (slow)",
	256: "Ledge attack", 257: "Ledge attack (slow)",
	258: "Ledge roll", 259: "Ledge roll (slow)",
}

// Taxonomy bundles the static classification tables. Immutable after
// construction.
type Taxonomy struct {
	categories map[string]StateSet
	moves      map[int]string
	stages     map[int]Stage
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return &Taxonomy{
		categories: defaultCategories(),
		moves:      defaultMoves(),
		stages:     defaultStages(),
	}
}

// Category returns the state set for a named category, or an empty set if
// the name is unknown.
func (t *Taxonomy) Category(name string) StateSet {
	if s, ok := t.categories[name]; ok {
		return s
	}
	return StateSet{}
}

// Categories returns the union of several named categories.
func (t *Taxonomy) Categories(names ...string) StateSet {
	out := StateSet{}
	for _, n := range names {
		out = out.Union(t.Category(n))
	}
	return out
}

// StateName returns a friendly name for a state ID, or "" if none is known.
func StateName(id int) string {
	return stateNames[id]
}
