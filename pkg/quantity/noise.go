package quantity

// The measurement-noise generator reproduces the linear congruential scheme
// of the original plant benchmark so that sensor traces are bit-for-bit
// reproducible for a given seed.

const (
	prngMultiplier = 9228907
	prngModulus    = 4294967296
)

// PRNG produces a value in [-1, 1] and the advanced seed.
func PRNG(seed uint64) (float64, uint64) {
	seed = (seed * prngMultiplier) % prngModulus
	return 2*float64(seed)/prngModulus - 1, seed
}

// PRNGPos produces a value in [0, 1] and the advanced seed.
func PRNGPos(seed uint64) (float64, uint64) {
	seed = (seed * prngMultiplier) % prngModulus
	return float64(seed) / prngModulus, seed
}

// Noise draws an approximately normal sample with the given standard
// deviation by summing twelve uniform draws. The advanced seed is returned.
func Noise(stdv float64, seed uint64) (float64, uint64) {
	sum := 0.0
	for i := 0; i < 12; i++ {
		var v float64
		v, seed = PRNGPos(seed)
		sum += v
	}
	return (sum - 6) * stdv, seed
}
