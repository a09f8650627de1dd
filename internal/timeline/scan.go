package timeline

import "github.com/meleetools/framescan/internal/taxonomy"

// InSet reports whether the state at index i belongs to the set. Missing
// states never match.
func (t *Timeline) InSet(i int, set taxonomy.StateSet) bool {
	s, ok := t.StateAt(i)
	return ok && set.Contains(s)
}

// Entries returns every index where the state enters the set: the state at
// that index is in the set and the state at the previous index is not.
func (t *Timeline) Entries(set taxonomy.StateSet) []int {
	var out []int
	prev := false
	for i := 0; i < t.Len(); i++ {
		cur := t.InSet(i, set)
		if cur && !prev {
			out = append(out, i)
		}
		prev = cur
	}
	return out
}

// Exits returns the last index of every contiguous run of states in the
// set.
func (t *Timeline) Exits(set taxonomy.StateSet) []int {
	var out []int
	for i := 0; i < t.Len(); i++ {
		if !t.InSet(i, set) {
			continue
		}
		if i+1 == t.Len() || !t.InSet(i+1, set) {
			out = append(out, i)
		}
	}
	return out
}

// Lookahead scans forward from the index after start, visiting records
// whose frame distance from the start record is at most window frames, and
// returns the first index satisfying pred. Returns ok=false when the
// window is exhausted without a match.
func (t *Timeline) Lookahead(start, window int, pred func(i int) bool) (int, bool) {
	base := t.FrameAt(start)
	for i := start + 1; i < t.Len(); i++ {
		if t.FrameAt(i)-base > window {
			break
		}
		if pred(i) {
			return i, true
		}
	}
	return 0, false
}

// LookaheadSet is Lookahead specialized to category membership.
func (t *Timeline) LookaheadSet(start, window int, set taxonomy.StateSet) (int, bool) {
	return t.Lookahead(start, window, func(i int) bool { return t.InSet(i, set) })
}

// LookaheadPercentIncrease finds the first index in the window where the
// percent increases versus the immediately preceding record. Records with
// missing percent on either side are skipped.
func (t *Timeline) LookaheadPercentIncrease(start, window int) (int, bool) {
	return t.Lookahead(start, window, func(i int) bool {
		if i == 0 {
			return false
		}
		cur, okCur := t.PercentAt(i)
		prev, okPrev := t.PercentAt(i - 1)
		return okCur && okPrev && cur > prev
	})
}

// LookaheadStockLoss finds the first index in the window where the stock
// count decreases versus the immediately preceding record.
func (t *Timeline) LookaheadStockLoss(start, window int) (int, bool) {
	return t.Lookahead(start, window, func(i int) bool {
		if i == 0 {
			return false
		}
		cur, okCur := t.StocksAt(i)
		prev, okPrev := t.StocksAt(i - 1)
		return okCur && okPrev && cur < prev
	})
}
