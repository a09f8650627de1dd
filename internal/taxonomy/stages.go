package taxonomy

// Stage carries the per-stage geometry the edgeguard extractor needs.
// A player is off-stage when abs(position_x) > EdgeX or position_y drops
// below the off-stage vertical threshold.
type Stage struct {
	ID    int
	Name  string
	EdgeX float64
}

func defaultStages() map[int]Stage {
	return map[int]Stage{
		2:  {ID: 2, Name: "Fountain of Dreams", EdgeX: 63.35},
		3:  {ID: 3, Name: "Pokemon Stadium", EdgeX: 87.75},
		8:  {ID: 8, Name: "Yoshi's Story", EdgeX: 56.0},
		28: {ID: 28, Name: "Dream Land N64", EdgeX: 77.27},
		31: {ID: 31, Name: "Battlefield", EdgeX: 68.4},
		32: {ID: 32, Name: "Final Destination", EdgeX: 85.57},
	}
}

// Stage looks up geometry for a stage ID. The second return is false for
// stages without known geometry; callers skip edgeguard extraction then.
func (t *Taxonomy) Stage(id int) (Stage, bool) {
	s, ok := t.stages[id]
	return s, ok
}

// WithStageOverrides returns a copy of the taxonomy with edge coordinates
// replaced or added from the given map (stage ID -> edge X). Used to apply
// config-file overrides without mutating the shared default tables.
func (t *Taxonomy) WithStageOverrides(edges map[int]float64) *Taxonomy {
	if len(edges) == 0 {
		return t
	}
	stages := make(map[int]Stage, len(t.stages))
	for id, s := range t.stages {
		stages[id] = s
	}
	for id, x := range edges {
		s, ok := stages[id]
		if !ok {
			s = Stage{ID: id, Name: "Custom"}
		}
		s.EdgeX = x
		stages[id] = s
	}
	return &Taxonomy{categories: t.categories, moves: t.moves, stages: stages}
}
