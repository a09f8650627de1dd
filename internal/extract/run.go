package extract

import (
	"sort"

	"github.com/meleetools/framescan/internal/logger"
	"github.com/meleetools/framescan/internal/match"
	"github.com/meleetools/framescan/internal/taxonomy"
	"github.com/meleetools/framescan/internal/timeline"
)

// Options bundles every extractor's parameters for a full-match run.
// Strictness, when set to a valid preset, overrides Combo.GapFrames.
type Options struct {
	Strictness *int
	Combo      ComboParams
	Knockdown  KnockdownParams
	Wavedash   WavedashParams
	Edgeguard  EdgeguardParams // EdgeX is filled from stage geometry
	Neutral    NeutralParams
	TechChase  TechChaseParams
}

// DefaultOptions returns every extractor's standard parameters.
func DefaultOptions() Options {
	return Options{
		Combo:     DefaultComboParams(),
		Knockdown: DefaultKnockdownParams(),
		Wavedash:  DefaultWavedashParams(),
		Edgeguard: DefaultEdgeguardParams(0),
		Neutral:   DefaultNeutralParams(),
		TechChase: DefaultTechChaseParams(),
	}
}

// PlayerEvents is everything extracted for one player of a match.
// Combos and edgeguards are the ones the player performed; knockdowns,
// hits taken, and ledge exits are the ones they suffered or chose.
type PlayerEvents struct {
	Port          int            `json:"port"`
	CharacterID   int            `json:"character_id"`
	CharacterName string         `json:"character_name"`
	Combos        []Combo        `json:"combos"`
	Knockdowns    []Knockdown    `json:"knockdowns"`
	Wavedashes    []Wavedash     `json:"wavedashes"`
	Edgeguards    []Edgeguard    `json:"edgeguards"`
	Neutrals      []Neutral      `json:"neutrals"`
	Kills         []Kill         `json:"kills"` // stocks this player took
	Rolls         []Roll         `json:"rolls"`
	HitsTaken     []HitTaken     `json:"hits_taken"`
	LedgeExits    []LedgeExit    `json:"ledge_exits"`
	CrouchCancels []CrouchCancel `json:"crouch_cancels"`
	TechChases    []TechChase    `json:"tech_chases"`
}

// Events flattens every extracted record into one sequence ordered by
// start frame.
func (p *PlayerEvents) Events() []Event {
	var out []Event
	for _, c := range p.Combos {
		out = append(out, c.Event())
	}
	for _, k := range p.Knockdowns {
		out = append(out, k.Event())
	}
	for _, w := range p.Wavedashes {
		out = append(out, w.Event())
	}
	for _, e := range p.Edgeguards {
		out = append(out, e.Event())
	}
	for _, n := range p.Neutrals {
		out = append(out, n.Event())
	}
	for _, k := range p.Kills {
		out = append(out, k.Event())
	}
	for _, r := range p.Rolls {
		out = append(out, r.Event())
	}
	for _, h := range p.HitsTaken {
		out = append(out, h.Event())
	}
	for _, l := range p.LedgeExits {
		out = append(out, l.Event())
	}
	for _, c := range p.CrouchCancels {
		out = append(out, c.Event())
	}
	for _, t := range p.TechChases {
		out = append(out, t.Event())
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].StartFrame < out[b].StartFrame
	})
	return out
}

// Result is the full extraction output for one match.
type Result struct {
	Filename string           `json:"filename"`
	StageID  int              `json:"stage_id"`
	Stage    string           `json:"stage,omitempty"`
	Players  [2]*PlayerEvents `json:"players"`
}

// Run extracts every event kind for both players of a decoded match.
// Unknown stage geometry disables the edgeguard extractor for the match;
// everything else still runs.
func Run(tax *taxonomy.Taxonomy, g *match.Game, opts Options) (*Result, error) {
	t0, t1, err := g.Timelines()
	if err != nil {
		return nil, err
	}

	if opts.Strictness != nil {
		opts.Combo.GapFrames = GapForStrictness(*opts.Strictness)
	}

	res := &Result{Filename: g.Filename, StageID: g.StageID}

	stage, hasStage := tax.Stage(g.StageID)
	if hasStage {
		res.Stage = stage.Name
		opts.Edgeguard.EdgeX = stage.EdgeX
	} else {
		logger.Debug().
			Str("file", g.Filename).
			Int("stage_id", g.StageID).
			Msg("no edge geometry for stage, skipping edgeguards")
	}

	timelines := [2]*timeline.Timeline{t0, t1}
	for i := 0; i < 2; i++ {
		own, opp := timelines[i], timelines[1-i]
		p := &g.Players[i]

		pe := &PlayerEvents{
			Port:          p.Port,
			CharacterID:   p.CharacterID,
			CharacterName: p.CharacterName,
			Combos:        Combos(tax, own, opp, opts.Combo),
			Knockdowns:    Knockdowns(tax, own, opp, opts.Knockdown),
			Wavedashes:    Wavedashes(tax, own, opp, opts.Wavedash),
			Neutrals:      Neutrals(tax, own, opp, opts.Neutral),
			Kills:         Kills(tax, own, opp),
			Rolls:         Rolls(tax, own, opp),
			HitsTaken:     HitsTaken(tax, own, opp),
			LedgeExits:    LedgeExits(tax, own, DefaultLedgeParams()),
			CrouchCancels: CrouchCancels(tax, own),
			TechChases:    TechChases(tax, own, opp, opts.TechChase),
		}
		if hasStage {
			pe.Edgeguards = Edgeguards(opp, opts.Edgeguard)
		}
		res.Players[i] = pe
	}

	logger.Debug().
		Str("file", g.Filename).
		Int("p0_combos", len(res.Players[0].Combos)).
		Int("p1_combos", len(res.Players[1].Combos)).
		Msg("match extraction complete")

	return res, nil
}
