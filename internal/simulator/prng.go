package simulator

// prng is a Park-Miller linear congruential generator. All simulator
// randomness flows through one instance so a run is fully reproducible
// from its seed.
type prng struct {
	state int64
}

const (
	lcgMultiplier = 16807
	lcgModulus    = 2147483647
)

func newPRNG(seed int64) *prng {
	seed %= lcgModulus
	if seed <= 0 {
		seed += lcgModulus - 1
	}
	return &prng{state: seed}
}

// Float64 returns the next draw in [0, 1).
func (p *prng) Float64() float64 {
	p.state = p.state * lcgMultiplier % lcgModulus
	return float64(p.state-1) / float64(lcgModulus-1)
}

// IntBetween returns a uniform draw in [lo, hi] inclusive.
func (p *prng) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(p.Float64()*float64(hi-lo+1))
}
