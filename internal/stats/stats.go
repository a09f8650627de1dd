// Package stats computes per-game and per-stock summaries from player
// timelines and extracted events.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/meleetools/framescan/internal/extract"
	"github.com/meleetools/framescan/internal/timeline"
)

// PlayerStats are whole-game figures for one player.
type PlayerStats struct {
	StocksLost     int     `json:"stocks_lost"`
	DamageReceived float64 `json:"damage_received"`
	DurationFrames int     `json:"duration_frames"`
}

// Compute derives the whole-game stats from one player's timeline.
// Damage received sums every percent increase; respawn resets to zero do
// not subtract.
func Compute(t *timeline.Timeline) PlayerStats {
	s := PlayerStats{
		DurationFrames: t.LastFrame() - t.FirstFrame(),
	}

	firstStocks, lastStocks := math.NaN(), math.NaN()
	prevPct := math.NaN()
	var received float64

	for i := 0; i < t.Len(); i++ {
		if v, ok := t.StocksAt(i); ok {
			if math.IsNaN(firstStocks) {
				firstStocks = v
			}
			lastStocks = v
		}
		if v, ok := t.PercentAt(i); ok {
			if !math.IsNaN(prevPct) && v > prevPct {
				received += v - prevPct
			}
			prevPct = v
		}
	}

	if !math.IsNaN(firstStocks) {
		s.StocksLost = int(firstStocks) - int(lastStocks)
	}
	s.DamageReceived = math.Round(received*10) / 10
	return s
}

// StockEvent is one lost stock.
type StockEvent struct {
	StockNumber     int     `json:"stock_number"`
	DeathFrame      int     `json:"death_frame"`
	DeathPercent    float64 `json:"death_percent"`
	DurationFrames  int     `json:"stock_duration_frames"`
	DurationSeconds float64 `json:"stock_duration_seconds"`
}

// StockEvents lists each stock the player lost, with the percent it died
// at and how long it lived.
func StockEvents(t *timeline.Timeline) []StockEvent {
	var out []StockEvent

	stockStart := -1
	prevStocks := math.NaN()
	var startingStocks int

	for i := 0; i < t.Len(); i++ {
		v, ok := t.StocksAt(i)
		if !ok {
			continue
		}
		if math.IsNaN(prevStocks) {
			startingStocks = int(v)
			stockStart = i
			prevStocks = v
			continue
		}
		if v < prevStocks {
			// Death recorded between the previous valid index and here;
			// report the last frame alive.
			deathFrame := t.FrameAt(i - 1)
			pct, _ := t.PercentAt(i - 1)
			dur := deathFrame - t.FrameAt(stockStart)
			out = append(out, StockEvent{
				StockNumber:     startingStocks - len(out),
				DeathFrame:      deathFrame,
				DeathPercent:    math.Round(pct*10) / 10,
				DurationFrames:  dur,
				DurationSeconds: math.Round(float64(dur)/60*100) / 100,
			})
			stockStart = i
		}
		prevStocks = v
	}

	return out
}

// Summary is a five-number-plus-mean description of a sample.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes the summary of a sample. Zero-length samples yield
// a zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return Summary{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// ComboDamage summarizes the damage of a combo list.
func ComboDamage(combos []extract.Combo) Summary {
	vals := make([]float64, 0, len(combos))
	for _, c := range combos {
		vals = append(vals, c.Damage)
	}
	return Summarize(vals)
}

// NeutralWinRate is the share of neutral windows the player won. The
// second return is false when there were no decided windows.
func NeutralWinRate(neutrals []extract.Neutral) (float64, bool) {
	if len(neutrals) == 0 {
		return 0, false
	}
	won := 0
	for _, n := range neutrals {
		if n.Outcome == extract.NeutralWon {
			won++
		}
	}
	return float64(won) / float64(len(neutrals)), true
}
