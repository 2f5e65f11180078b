package brahe

import (
	"math"
)

const (
	keplerTol     = 1e-12
	keplerMaxIter = 100
)

// AnomalyMeanToEccentric solves Kepler's equation M = E - e·sinE for the
// eccentric anomaly by Newton-Raphson. Convergence is checked against a fixed
// 1e-12 tolerance with a bounded iteration budget.
func AnomalyMeanToEccentric(meanAnom, ecc float64, useDegrees bool) (float64, error) {
	if useDegrees {
		meanAnom *= d2r
	}
	E, err := solveKepler(meanAnom, ecc, keplerTol, keplerMaxIter)
	if err != nil {
		return 0, err
	}
	if useDegrees {
		E *= r2d
	}
	return E, nil
}

func solveKepler(M, e, tol float64, maxIter int) (float64, error) {
	if e < 0 || e >= 1 || math.IsNaN(e) {
		return 0, DomainError{Op: "AnomalyMeanToEccentric", Msg: "eccentricity must be in [0, 1)"}
	}
	// Standard starter: M itself is close enough except for high
	// eccentricities, where π behaves better.
	E := M
	if e > 0.8 {
		E = math.Pi
	}
	for i := 0; i < maxIter; i++ {
		f := E - e*math.Sin(E) - M
		if math.Abs(f) < tol {
			return E, nil
		}
		E -= f / (1 - e*math.Cos(E))
	}
	return 0, ConvergenceError{Op: "AnomalyMeanToEccentric", Iterations: maxIter, Tolerance: tol}
}

// AnomalyEccentricToMean converts an eccentric anomaly to the mean anomaly.
func AnomalyEccentricToMean(eccAnom, ecc float64, useDegrees bool) float64 {
	if useDegrees {
		eccAnom *= d2r
	}
	M := eccAnom - ecc*math.Sin(eccAnom)
	if useDegrees {
		M *= r2d
	}
	return M
}

// AnomalyEccentricToTrue converts an eccentric anomaly to the true anomaly.
func AnomalyEccentricToTrue(eccAnom, ecc float64, useDegrees bool) float64 {
	if useDegrees {
		eccAnom *= d2r
	}
	sE, cE := math.Sincos(eccAnom)
	ν := math.Atan2(math.Sqrt(1-ecc*ecc)*sE, cE-ecc)
	if useDegrees {
		ν *= r2d
	}
	return ν
}

// AnomalyTrueToEccentric converts a true anomaly to the eccentric anomaly.
func AnomalyTrueToEccentric(trueAnom, ecc float64, useDegrees bool) float64 {
	if useDegrees {
		trueAnom *= d2r
	}
	sν, cν := math.Sincos(trueAnom)
	E := math.Atan2(math.Sqrt(1-ecc*ecc)*sν, cν+ecc)
	if useDegrees {
		E *= r2d
	}
	return E
}
