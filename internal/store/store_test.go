package store

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/meleetools/framescan/internal/extract"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testResult() *extract.Result {
	return &extract.Result{
		Filename: "game_1.slp",
		StageID:  31,
		Stage:    "Battlefield",
		Players: [2]*extract.PlayerEvents{
			{
				Port: 1,
				Combos: []extract.Combo{
					{StartFrame: 100, EndFrame: 160, Damage: 32.4, NumHits: 3, Killed: true},
				},
				Wavedashes: []extract.Wavedash{
					{StartFrame: 40, LandFrame: 47},
				},
			},
			{
				Port: 2,
				Knockdowns: []extract.Knockdown{
					{Frame: 120, ResolvedFrame: 123},
				},
			},
		},
	}
}

func TestCreateRun(t *testing.T) {
	s := newTestStore(t)

	run, err := s.CreateRun(45, "weekly batch")
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if run.RunID == "" {
		t.Error("run has no ID")
	}
	if run.GapFrames != 45 || run.Notes != "weekly batch" {
		t.Errorf("got %+v", run)
	}
}

func TestStoreResultRoundTrip(t *testing.T) {
	s := newTestStore(t)

	run, err := s.CreateRun(45, "")
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	matchID, err := s.StoreResult(run.RunID, testResult())
	if err != nil {
		t.Fatalf("StoreResult failed: %v", err)
	}

	matches, err := s.ListMatches(run.RunID)
	if err != nil {
		t.Fatalf("ListMatches failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.MatchID != matchID || m.Filename != "game_1.slp" || m.Stage != "Battlefield" {
		t.Errorf("got %+v", m)
	}

	events, err := s.MatchEvents(matchID, "")
	if err != nil {
		t.Fatalf("MatchEvents failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	// Start-frame order across both players.
	if events[0].Kind != extract.KindWavedash || events[0].StartFrame != 40 {
		t.Errorf("got first event %+v", events[0])
	}

	combos, err := s.MatchEvents(matchID, extract.KindCombo)
	if err != nil {
		t.Fatalf("MatchEvents(combo) failed: %v", err)
	}
	if len(combos) != 1 {
		t.Fatalf("got %d combos, want 1", len(combos))
	}
	c := combos[0]
	if c.Port != 1 || !c.Killed || c.EndFrame != 160 {
		t.Errorf("got %+v", c)
	}

	var payload extract.Combo
	if err := json.Unmarshal(c.Payload, &payload); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if payload.Damage != 32.4 || payload.NumHits != 3 {
		t.Errorf("got payload %+v", payload)
	}
}

func TestCountEventsByKind(t *testing.T) {
	s := newTestStore(t)

	run, err := s.CreateRun(45, "")
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if _, err := s.StoreResult(run.RunID, testResult()); err != nil {
		t.Fatalf("StoreResult failed: %v", err)
	}
	if _, err := s.StoreResult(run.RunID, testResult()); err != nil {
		t.Fatalf("StoreResult failed: %v", err)
	}

	counts, err := s.CountEventsByKind(run.RunID)
	if err != nil {
		t.Fatalf("CountEventsByKind failed: %v", err)
	}
	if counts[extract.KindCombo] != 2 || counts[extract.KindWavedash] != 2 || counts[extract.KindKnockdown] != 2 {
		t.Errorf("got counts %v", counts)
	}

	// Other runs do not leak in.
	other, err := s.CreateRun(90, "")
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	counts, err = s.CountEventsByKind(other.RunID)
	if err != nil {
		t.Fatalf("CountEventsByKind failed: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("empty run has counts %v", counts)
	}
}

func TestListMatchesEmptyRun(t *testing.T) {
	s := newTestStore(t)
	matches, err := s.ListMatches("no-such-run")
	if err != nil {
		t.Fatalf("ListMatches failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}
