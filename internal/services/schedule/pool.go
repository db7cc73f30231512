package schedule

import (
	"sort"

	"github.com/kunalgolani-work/kachuful-backend/internal/dependencies/random"
)

// Pool places special-event slots onto eligible round numbers, honoring
// spacing constraints between consecutive placements.
type Pool struct {
	random random.Random
}

// NewPool creates a Pool backed by the given random source
func NewPool(rnd random.Random) *Pool {
	return &Pool{random: rnd}
}

// Place picks up to slots round numbers from [lo, hi] minus excluded.
//
// Slots are placed greedily left to right. Each slot prefers a candidate in
// the window [last+minGap, last+maxGap]; when that window is empty the
// smallest remaining value above last is taken instead, trading spacing for
// progress. When nothing above last remains, placement stops early and the
// partial result is returned. An undersized pool yields an empty result:
// infeasibility is a degraded outcome, not an error.
func (p *Pool) Place(slots int, excluded map[int]bool, lo, hi, minGap, maxGap int) []int {
	pool := make([]int, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		if !excluded[r] {
			pool = append(pool, r)
		}
	}
	if len(pool) < slots {
		return nil
	}

	placed := make([]int, 0, slots)
	last := 0
	for i := 0; i < slots; i++ {
		minNext := last + minGap
		maxNext := last + maxGap

		candidates := make([]int, 0, len(pool))
		for _, r := range pool {
			if r >= minNext && r <= maxNext {
				candidates = append(candidates, r)
			}
		}

		var pick int
		if len(candidates) == 0 {
			pick = -1
			for _, r := range pool {
				if r > last {
					pick = r
					break
				}
			}
			if pick == -1 {
				break
			}
		} else {
			pick = candidates[p.random.Pick(len(candidates))]
		}

		placed = append(placed, pick)
		last = pick
		pool = removeValue(pool, pick)
	}

	sort.Ints(placed)
	return placed
}

func removeValue(pool []int, v int) []int {
	for i, r := range pool {
		if r == v {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}
