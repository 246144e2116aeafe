package units

// FlashResult holds the vapor/liquid partition of an equilibrium flash.
type FlashResult struct {
	// VaporFraction is the molar fraction of the feed leaving as vapor.
	VaporFraction float64
	// Vapor and Liquid are the phase compositions over the component slate.
	Vapor  []float64
	Liquid []float64
}

// Flash solves the Rachford-Rice equation for a feed composition z and
// equilibrium ratios K, by bisection on the vapor fraction. The edge cases
// (all-liquid, all-vapor) are detected from the bracket endpoints.
func Flash(z, k []float64) FlashResult {
	n := len(z)

	rr := func(psi float64) float64 {
		sum := 0.0
		for i := 0; i < n; i++ {
			if z[i] <= 0 {
				continue
			}
			sum += z[i] * (k[i] - 1) / (1 + psi*(k[i]-1))
		}
		return sum
	}

	switch {
	case rr(0) <= 0:
		// Subcooled: everything stays liquid.
		return FlashResult{VaporFraction: 0, Vapor: equilibriumVapor(z, k), Liquid: vec(z)}
	case rr(1) >= 0:
		// Superheated: everything flashes.
		return FlashResult{VaporFraction: 1, Vapor: vec(z), Liquid: equilibriumLiquid(z, k)}
	}

	lo, hi := 0.0, 1.0
	for i := 0; i < 80; i++ {
		mid := (lo + hi) / 2
		if rr(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	psi := (lo + hi) / 2

	liquid := make([]float64, n)
	vapor := make([]float64, n)
	for i := 0; i < n; i++ {
		if z[i] <= 0 {
			continue
		}
		liquid[i] = z[i] / (1 + psi*(k[i]-1))
		vapor[i] = k[i] * liquid[i]
	}
	normalize(liquid)
	normalize(vapor)
	return FlashResult{VaporFraction: psi, Vapor: vapor, Liquid: liquid}
}

// equilibriumVapor is the composition of an incipient vapor bubble over an
// all-liquid feed; only used as a phase tag helper.
func equilibriumVapor(z, k []float64) []float64 {
	out := make([]float64, len(z))
	for i := range z {
		out[i] = z[i] * k[i]
	}
	normalize(out)
	return out
}

func equilibriumLiquid(z, k []float64) []float64 {
	out := make([]float64, len(z))
	for i := range z {
		if k[i] > 0 {
			out[i] = z[i] / k[i]
		}
	}
	normalize(out)
	return out
}

func vec(z []float64) []float64 {
	out := make([]float64, len(z))
	copy(out, z)
	return out
}

func normalize(x []float64) {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	if sum <= 0 {
		return
	}
	for i := range x {
		x[i] /= sum
	}
}
