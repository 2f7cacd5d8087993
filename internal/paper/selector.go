package paper

import (
	"math/rand"
	"sort"
	"time"

	"github.com/paperforge/paperforge/internal/question"
)

// Selector picks from a candidate list the selection that best matches a
// target mark value: an exact single match, a pair summing to the target, or
// the closest single question.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector builds a selector around the given random source. A nil source
// gets a time-seeded one; tests inject a fixed seed for exact outcomes.
func NewSelector(rnd *rand.Rand) *Selector {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rnd: rnd}
}

// Pick returns exactly one selection for any non-empty candidate list.
// The bool is false only on an empty input, which callers rule out; it is a
// defensive guard, not a reachable outcome.
func (s *Selector) Pick(candidates []question.Question, target int) (Selection, bool) {
	if len(candidates) == 0 {
		return Selection{}, false
	}

	// 1) Exact match: uniform among all candidates at the target weight.
	var exact []question.Question
	maxMarks := candidates[0].Marks
	for _, q := range candidates {
		if q.Marks == target {
			exact = append(exact, q)
		}
		if q.Marks > maxMarks {
			maxMarks = q.Marks
		}
	}
	if len(exact) > 0 {
		return Selection{First: exact[s.rnd.Intn(len(exact))]}, true
	}

	// 2) Combination: only when the target exceeds every single candidate.
	// All unordered pairs of distinct candidates summing exactly to target.
	if target > maxMarks {
		type pair struct{ a, b int }
		var pairs []pair
		for i := 0; i < len(candidates); i++ {
			for j := i + 1; j < len(candidates); j++ {
				if candidates[i].Marks+candidates[j].Marks == target {
					pairs = append(pairs, pair{i, j})
				}
			}
		}
		if len(pairs) > 0 {
			p := pairs[s.rnd.Intn(len(pairs))]
			second := candidates[p.b]
			return Selection{First: candidates[p.a], Second: &second}, true
		}
	}

	// 3) Closest fit: minimal absolute distance from the target. The stable
	// sort over a mark-ascending list breaks ties toward the lower mark.
	sorted := make([]question.Question, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Marks < sorted[j].Marks })
	sort.SliceStable(sorted, func(i, j int) bool {
		return absDiff(sorted[i].Marks, target) < absDiff(sorted[j].Marks, target)
	})
	return Selection{First: sorted[0]}, true
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
