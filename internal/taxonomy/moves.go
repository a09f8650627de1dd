package taxonomy

import "fmt"

// Move IDs from the last_attack_landed frame field. These are NOT action
// state IDs; they are a separate ID space for attack types.
const (
	MoveUnknown int = 0
	MoveJab         = 2
	MoveDashAttack  = 6
	MoveFsmash      = 10
	MoveNair        = 13
	MoveFair        = 14
	MoveBair        = 15
	MoveUair        = 16
	MoveDair        = 17
)

func defaultMoves() map[int]string {
	return map[int]string{
		1:  "Misc",
		2:  "Jab",
		3:  "Jab 2",
		4:  "Jab 3",
		5:  "Rapid Jabs",
		6:  "Dash Attack",
		7:  "F-tilt",
		8:  "U-tilt",
		9:  "D-tilt",
		10: "F-smash",
		11: "U-smash",
		12: "D-smash",
		13: "Nair",
		14: "Fair",
		15: "Bair",
		16: "Uair",
		17: "Dair",
		18: "Neutral B",
		19: "Side B",
		20: "Up B",
		21: "Down B",
		50: "Getup Attack",
		51: "Getup Attack (Slow)",
		52: "Pummel",
		53: "F-throw",
		54: "B-throw",
		55: "U-throw",
		56: "D-throw",
		61: "Edge Attack (Slow)",
		62: "Edge Attack",
	}
}

// MoveName resolves a move ID to a human-readable name.
func (t *Taxonomy) MoveName(id int) string {
	if name, ok := t.moves[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (%d)", id)
}

// MoveGroup maps a move ID to a broad opener category used by the neutral
// extractor: grab, aerial, projectile, jab, tilt, dash_attack, smash, other.
func (t *Taxonomy) MoveGroup(id int) string {
	switch {
	case id >= 53 && id <= 56:
		return "grab"
	case id >= 13 && id <= 17:
		return "aerial"
	case id == 18 || id == 19:
		return "projectile"
	case id >= 2 && id <= 5:
		return "jab"
	case id >= 7 && id <= 9:
		return "tilt"
	case id == 6:
		return "dash_attack"
	case id >= 10 && id <= 12:
		return "smash"
	default:
		return "other"
	}
}
