package queueing

import "math"

// ratioUnityEps bounds |1-r| below which the rational closed forms for the
// geometric sums lose all significant digits to cancellation. Inside the
// band the exact r=1 limits are used instead.
const ratioUnityEps = 1e-12

// GeomSum returns Sum_{k=0}^{m} r^k.
//
// For r away from 1 this is (1 - r^(m+1)) / (1 - r); at r -> 1 that
// expression is 0/0, so the limit m+1 is returned directly.
func GeomSum(r float64, m int) float64 {
	if m < 0 {
		return 0
	}
	if math.Abs(1-r) < ratioUnityEps {
		return float64(m + 1)
	}
	return (1 - math.Pow(r, float64(m+1))) / (1 - r)
}

// GeomWeightedSum returns Sum_{k=1}^{m} k*r^k.
//
//	r * (1 - (m+1)*r^m + m*r^(m+1)) / (1-r)^2
//
// with the r -> 1 limit m(m+1)/2 substituted inside the cancellation band.
func GeomWeightedSum(r float64, m int) float64 {
	if m <= 0 {
		return 0
	}
	if math.Abs(1-r) < ratioUnityEps {
		return float64(m) * float64(m+1) / 2
	}
	rm := math.Pow(r, float64(m))
	return r * (1 - float64(m+1)*rm + float64(m)*rm*r) / ((1 - r) * (1 - r))
}
