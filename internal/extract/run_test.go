package extract

import (
	"encoding/json"
	"testing"

	"github.com/meleetools/framescan/internal/match"
	"github.com/meleetools/framescan/internal/taxonomy"
)

// testGame builds a decoded match document with one hit landed by port 1
// on port 2 at frame 105.
func testGame(t *testing.T, stageID int) *match.Game {
	t.Helper()

	doc := `{
		"filename": "game.slp",
		"stage_id": ` + itoa(stageID) + `,
		"players": [
			{
				"port": 1, "character_id": 19, "character_name": "Sheik",
				"frame": [100, 101, 105, 110, 200],
				"state": [14, 14, 65, 14, 14],
				"percent": [0, 0, 0, 0, 0],
				"stocks": [4, 4, 4, 4, 4],
				"position_x": [0, 0, 0, 0, 0],
				"position_y": [0, 0, 0, 0, 0],
				"facing": [1, 1, 1, 1, 1],
				"last_attack_landed": [0, 0, 13, 13, 13],
				"airborne": [false, false, true, false, false]
			},
			{
				"port": 2, "character_id": 2, "character_name": "Fox",
				"frame": [100, 101, 105, 110, 200],
				"state": [14, 14, 75, 14, 14],
				"percent": [0, 0, 12, 12, 12],
				"stocks": [4, 4, 4, 4, 4],
				"position_x": [10, 10, 10, 10, 10],
				"position_y": [0, 0, 0, 0, 0],
				"facing": [-1, -1, -1, -1, -1],
				"last_attack_landed": [0, 0, 0, 0, 0],
				"airborne": [false, false, false, false, false]
			}
		]
	}`

	var g match.Game
	if err := json.Unmarshal([]byte(doc), &g); err != nil {
		t.Fatalf("failed to build test game: %v", err)
	}
	return &g
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestRunExtractsBothPlayers(t *testing.T) {
	g := testGame(t, 31) // Battlefield
	res, err := Run(taxonomy.Default(), g, DefaultOptions())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Filename != "game.slp" {
		t.Errorf("got filename %q", res.Filename)
	}
	if res.Stage == "" {
		t.Error("known stage should resolve a name")
	}

	p0 := res.Players[0]
	if len(p0.Combos) != 1 {
		t.Fatalf("got %d combos for port 1, want 1", len(p0.Combos))
	}
	if p0.Combos[0].StartedByID != 13 {
		t.Errorf("got combo move %d, want 13", p0.Combos[0].StartedByID)
	}
	if len(res.Players[1].Combos) != 0 {
		t.Errorf("port 2 landed no hits, got %d combos", len(res.Players[1].Combos))
	}
	if len(res.Players[1].HitsTaken) != 1 {
		t.Errorf("got %d hits taken for port 2, want 1", len(res.Players[1].HitsTaken))
	}
}

func TestRunUnknownStageSkipsEdgeguards(t *testing.T) {
	g := testGame(t, 999)
	res, err := Run(taxonomy.Default(), g, DefaultOptions())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stage != "" {
		t.Errorf("got stage %q, want empty for unknown id", res.Stage)
	}
	for _, p := range res.Players {
		if len(p.Edgeguards) != 0 {
			t.Error("edgeguards must be skipped without geometry")
		}
	}
}

func TestRunStrictnessOverridesGap(t *testing.T) {
	g := testGame(t, 31)
	opts := DefaultOptions()
	s := StrictnessTrueCombo
	opts.Strictness = &s
	opts.Combo.GapFrames = 999 // must be ignored

	res, err := Run(taxonomy.Default(), g, opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// With gap 0 the single hit still forms a one-hit combo.
	if len(res.Players[0].Combos) != 1 {
		t.Fatalf("got %d combos, want 1", len(res.Players[0].Combos))
	}
	if res.Players[0].Combos[0].NumHits != 1 {
		t.Errorf("got %d hits, want 1", res.Players[0].Combos[0].NumHits)
	}
}

func TestPlayerEventsOrdered(t *testing.T) {
	g := testGame(t, 31)
	res, err := Run(taxonomy.Default(), g, DefaultOptions())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, p := range res.Players {
		events := p.Events()
		for i := 1; i < len(events); i++ {
			if events[i].StartFrame < events[i-1].StartFrame {
				t.Fatal("events out of start-frame order")
			}
		}
	}
}

func TestRunRejectsBadPlayerCount(t *testing.T) {
	g := testGame(t, 31)
	g.Players = g.Players[:1]
	if _, err := Run(taxonomy.Default(), g, DefaultOptions()); err == nil {
		t.Fatal("expected an error for a non-1v1 match")
	}
}
