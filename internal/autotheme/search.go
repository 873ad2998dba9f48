package autotheme

// Tier records how a role's colour was chosen.
type Tier int

const (
	// TierNone means the role has not been assigned.
	TierNone Tier = iota
	// TierBest is a candidate that met every hard constraint.
	TierBest
	// TierClosest is the relaxed fallback when nothing met the hard constraints.
	TierClosest
	// TierLoosest is the last resort: the lowest score in the pool.
	TierLoosest
	// TierOverride is a user-supplied colour; no search ran.
	TierOverride
	// TierFirst is the first entry of an ordered candidate list.
	TierFirst
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierBest:
		return "best"
	case TierClosest:
		return "closest"
	case TierLoosest:
		return "loosest"
	case TierOverride:
		return "override"
	case TierFirst:
		return "first"
	default:
		return "none"
	}
}

// verdict is one candidate's evaluation by a stage.
type verdict struct {
	score  float64
	strict bool
	close  bool
}

// pick is the outcome of a search.
type pick struct {
	index int
	tier  Tier
	score float64
}

// search scans pool in ascending index order and returns the lowest-scoring
// strict candidate, else the lowest-scoring relaxed candidate, else the
// lowest-scoring candidate overall. Whether a tier was found is tracked
// explicitly, so a score of exactly zero is an ordinary winner. Ties keep the
// earlier index. An empty pool yields index -1.
func search(pool indexSet, eval func(i int) verdict) pick {
	best := pick{index: -1, tier: TierBest}
	closest := pick{index: -1, tier: TierClosest}
	loosest := pick{index: -1, tier: TierLoosest}

	for _, i := range pool.indices() {
		v := eval(i)
		if v.strict && (best.index < 0 || v.score < best.score) {
			best.index, best.score = i, v.score
		}
		if v.close && (closest.index < 0 || v.score < closest.score) {
			closest.index, closest.score = i, v.score
		}
		if loosest.index < 0 || v.score < loosest.score {
			loosest.index, loosest.score = i, v.score
		}
	}

	switch {
	case best.index >= 0:
		return best
	case closest.index >= 0:
		return closest
	case loosest.index >= 0:
		return loosest
	}
	return pick{index: -1, tier: TierNone}
}
