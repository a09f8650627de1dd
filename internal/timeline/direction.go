package timeline

// Direction labels an action relative to the opponent's position.
type Direction string

const (
	Toward Direction = "toward"
	Away   Direction = "away"
)

// ClassifyDirection labels a directional action as toward or away from the
// opponent. facing is the actor's facing direction (1.0 = right, -1.0 =
// left); isForward is whether the action goes in the facing direction.
//
// The classification is antisymmetric in isForward: for any positions with
// myX != oppX, flipping isForward flips the label.
func ClassifyDirection(myX, oppX, facing float64, isForward bool) Direction {
	oppInFacingDir := (facing > 0 && oppX > myX) || (facing < 0 && oppX < myX)
	if oppInFacingDir == isForward {
		return Toward
	}
	return Away
}
