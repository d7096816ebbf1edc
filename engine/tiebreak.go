package engine

// Source is the uniform random source used to break ties. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Source interface {
	Intn(n int) int
}

// SelectIndex picks uniformly among the indices whose score equals max. If no
// score equals max it picks uniformly among all indices. scores must not be
// empty.
func SelectIndex(rng Source, scores []int, max int) int {
	best := make([]int, 0, len(scores))
	for i, s := range scores {
		if s == max {
			best = append(best, i)
		}
	}
	if len(best) == 0 {
		return rng.Intn(len(scores))
	}
	return best[rng.Intn(len(best))]
}
