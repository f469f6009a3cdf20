package analysis

import (
	"slices"
	"sort"

	"github.com/SeamusWaldron/twisty"
)

// NGram is a move sequence that occurs more than once.
type NGram struct {
	N        int      `json:"n"`
	Sequence []string `json:"sequence"`
	Count    int      `json:"count"`
	Starts   []int    `json:"starts"` // first ten start indexes
}

const maxStarts = 10

// tokens numbers the legal moves so sequences hash as small integers.
var tokens = func() map[twisty.Move]uint8 {
	m := make(map[twisty.Move]uint8)
	for i, mv := range twisty.LegalMoves() {
		m[mv] = uint8(i + 1)
	}
	return m
}()

// rollingHash is a Rabin-Karp hash over a fixed-size window.
type rollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1)
	window []uint8
	n      int
}

func newRollingHash(n int) *rollingHash {
	rh := &rollingHash{base: 131, n: n, window: make([]uint8, 0, n), pow: 1}
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

func (rh *rollingHash) push(tok uint8) {
	if len(rh.window) == rh.n {
		old := rh.window[0]
		rh.hash -= uint64(old) * rh.pow
		copy(rh.window, rh.window[1:])
		rh.window = rh.window[:rh.n-1]
	}
	rh.window = append(rh.window, tok)
	rh.hash = rh.hash*rh.base + uint64(tok)
}

func (rh *rollingHash) ready() bool { return len(rh.window) == rh.n }

// MineNGrams finds the topK most frequent repeated sequences for each
// length in [minN, maxN]. Ties keep first-occurrence order.
func MineNGrams(moves []twisty.Move, minN, maxN, topK int) map[int][]NGram {
	out := make(map[int][]NGram)
	toks := make([]uint8, len(moves))
	for i, m := range moves {
		toks[i] = tokens[m]
	}
	for n := max(minN, 1); n <= maxN && n <= len(moves); n++ {
		if grams := mineN(moves, toks, n, topK); len(grams) > 0 {
			out[n] = grams
		}
	}
	return out
}

type entry struct {
	tokens []uint8
	first  int
	count  int
	starts []int
}

func mineN(moves []twisty.Move, toks []uint8, n, topK int) []NGram {
	buckets := make(map[uint64][]*entry)
	var all []*entry
	rh := newRollingHash(n)

	for i, tok := range toks {
		rh.push(tok)
		if !rh.ready() {
			continue
		}
		start := i - n + 1
		var e *entry
		for _, cand := range buckets[rh.hash] {
			if slices.Equal(cand.tokens, rh.window) {
				e = cand
				break
			}
		}
		if e == nil {
			e = &entry{tokens: slices.Clone(rh.window), first: start}
			buckets[rh.hash] = append(buckets[rh.hash], e)
			all = append(all, e)
		}
		e.count++
		if len(e.starts) < maxStarts {
			e.starts = append(e.starts, start)
		}
	}

	var repeated []*entry
	for _, e := range all {
		if e.count >= 2 {
			repeated = append(repeated, e)
		}
	}
	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].count > repeated[j].count
	})
	if len(repeated) > topK {
		repeated = repeated[:topK]
	}

	result := make([]NGram, len(repeated))
	for i, e := range repeated {
		seq := make([]string, n)
		for j := range seq {
			seq[j] = moves[e.first+j].Notation()
		}
		result[i] = NGram{N: n, Sequence: seq, Count: e.count, Starts: e.starts}
	}
	return result
}
