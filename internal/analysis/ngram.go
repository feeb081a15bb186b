package analysis

import (
	"sort"
)

// maxOccurrences caps the sample positions kept per n-gram.
const maxOccurrences = 10

// NGram is a move sequence that occurs more than once.
type NGram struct {
	N           int   `json:"n"`
	Moves       []int `json:"moves"`
	Count       int   `json:"count"`
	Occurrences []int `json:"occurrences,omitempty"`
}

// NGramReport holds the most frequent n-grams keyed by length.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"`
}

// RollingHash is a Rabin-Karp hash over a fixed-size window of move ids.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1)
	window []int
	n      int
}

// NewRollingHash creates a rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   1000003,
		n:      n,
		window: make([]int, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Roll appends id, dropping the oldest id once the window is full.
func (rh *RollingHash) Roll(id int) {
	tok := uint64(id) + 1
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, id)
		rh.hash = rh.hash*rh.base + tok
		return
	}

	old := uint64(rh.window[0]) + 1
	rh.hash = (rh.hash-old*rh.pow)*rh.base + tok

	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = id
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []int {
	result := make([]int, len(rh.window))
	copy(result, rh.window)
	return result
}

// Ready reports whether the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

type ngramEntry struct {
	moves       []int
	first       int
	count       int
	occurrences []int
}

// MineNGrams finds the topK most frequent repeated n-grams for each n in
// [minN, maxN]. Ties go to the sequence seen first.
func MineNGrams(moves []int, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	if minN < 1 {
		minN = 1
	}
	for n := minN; n <= maxN && n <= len(moves); n++ {
		if ngrams := mineNGramsForN(moves, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

func mineNGramsForN(moves []int, n, topK int) []NGram {
	// Buckets per hash; collisions keep separate entries.
	buckets := make(map[uint64][]*ngramEntry)
	var entries []*ngramEntry
	rh := NewRollingHash(n)

	for i, id := range moves {
		rh.Roll(id)
		if !rh.Ready() {
			continue
		}

		start := i - n + 1
		window := rh.Window()
		var found *ngramEntry
		for _, e := range buckets[rh.Hash()] {
			if slicesEqual(e.moves, window) {
				found = e
				break
			}
		}

		if found == nil {
			found = &ngramEntry{moves: window, first: start}
			buckets[rh.Hash()] = append(buckets[rh.Hash()], found)
			entries = append(entries, found)
		}
		found.count++
		if len(found.occurrences) < maxOccurrences {
			found.occurrences = append(found.occurrences, start)
		}
	}

	repeated := entries[:0]
	for _, e := range entries {
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
		result[i] = NGram{
			N:           n,
			Moves:       e.moves,
			Count:       e.count,
			Occurrences: e.occurrences,
		}
	}
	return result
}

func slicesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
