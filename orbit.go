package brahe

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

// Osculating element vectors are ordered [a, e, i, Ω, ω, M]: semi-major axis
// in meters, eccentricity, inclination, right ascension of the ascending
// node, argument of perigee, and mean anomaly. Angles are radians unless the
// useDegrees flag says otherwise. Only closed orbits (0 ≤ e < 1) are
// supported.

const (
	nearCircularε   = 1e-8
	nearEquatorialε = 1e-8
	// Mean rate of the node for a sun-synchronous orbit, 360° per tropical
	// year, in rad/s.
	sunSyncNodeRate = 1.99096871e-7
)

// mod2pi wraps an angle into [0, 2π).
func mod2pi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// ElementsToCartesian converts osculating elements to the inertial Cartesian
// state [rx, ry, rz, vx, vy, vz] in meters and meters per second. The
// perifocal state is computed from the eccentric anomaly, then rotated into
// the inertial frame by Rz(-Ω)·Rx(-i)·Rz(-ω).
func (m EarthModel) ElementsToCartesian(oe []float64, useDegrees bool) ([]float64, error) {
	if len(oe) != 6 {
		return nil, DomainError{Op: "ElementsToCartesian", Msg: fmt.Sprintf("expected 6 elements, got %d", len(oe))}
	}
	a, e := oe[0], oe[1]
	i, Ω, ω, M := oe[2], oe[3], oe[4], oe[5]
	if useDegrees {
		i *= d2r
		Ω *= d2r
		ω *= d2r
		M *= d2r
	}
	if a <= 0 || math.IsNaN(a) {
		return nil, DomainError{Op: "ElementsToCartesian", Msg: fmt.Sprintf("semi-major axis %f must be positive", a)}
	}
	if e < 0 || e >= 1 || math.IsNaN(e) {
		return nil, DomainError{Op: "ElementsToCartesian", Msg: fmt.Sprintf("eccentricity %f must be in [0, 1)", e)}
	}
	E, err := solveKepler(mod2pi(M), e, keplerTol, keplerMaxIter)
	if err != nil {
		return nil, err
	}
	sE, cE := math.Sincos(E)
	b := math.Sqrt(1 - e*e)
	n := m.MeanMotion(a)
	rPQW := []float64{a * (cE - e), a * b * sE, 0}
	denom := 1 - e*cE
	vPQW := []float64{-a * n * sE / denom, a * n * b * cE / denom, 0}

	var inner, rot mat64.Dense
	inner.Mul(Rx(-i, false), Rz(-ω, false))
	rot.Mul(Rz(-Ω, false), &inner)
	R := MxV33(&rot, rPQW)
	V := MxV33(&rot, vPQW)
	return []float64{R[0], R[1], R[2], V[0], V[1], V[2]}, nil
}

// CartesianToElements converts an inertial Cartesian state to osculating
// elements, following the classic RV2COE derivation (angular momentum, node
// and eccentricity vectors, quadrant checks on each angle). Near-circular or
// near-equatorial orbits leave ω or Ω ill-defined and are rejected with a
// DomainError instead of returning an arbitrary angle.
func (m EarthModel) CartesianToElements(x []float64, useDegrees bool) ([]float64, error) {
	if len(x) != 6 {
		return nil, DomainError{Op: "CartesianToElements", Msg: fmt.Sprintf("expected a 6-element state, got %d", len(x))}
	}
	R, V := x[:3], x[3:]
	r := norm(R)
	if r < 1e-9 {
		return nil, DomainError{Op: "CartesianToElements", Msg: "zero position vector"}
	}
	v := norm(V)
	hVec := cross(R, V)
	h := norm(hVec)
	if h < 1e-9 {
		return nil, DomainError{Op: "CartesianToElements", Msg: "zero angular momentum (radial trajectory)"}
	}
	ξ := v*v/2 - m.GM/r
	if ξ >= 0 {
		return nil, DomainError{Op: "CartesianToElements", Msg: "state is not a closed orbit"}
	}
	a := -m.GM / (2 * ξ)
	eVec := make([]float64, 3)
	rv := dot(R, V)
	for k := 0; k < 3; k++ {
		eVec[k] = ((v*v-m.GM/r)*R[k] - rv*V[k]) / m.GM
	}
	e := norm(eVec)
	if e >= 1 {
		return nil, DomainError{Op: "CartesianToElements", Msg: fmt.Sprintf("eccentricity %f: open orbits are out of scope", e)}
	}
	i := math.Acos(hVec[2] / h)
	if e < nearCircularε {
		return nil, DomainError{Op: "CartesianToElements", Msg: "near-circular orbit: argument of perigee is ill-defined"}
	}
	if i < nearEquatorialε {
		return nil, DomainError{Op: "CartesianToElements", Msg: "near-equatorial orbit: RAAN is ill-defined"}
	}
	nVec := cross([]float64{0, 0, 1}, hVec)
	nn := norm(nVec)
	Ω := math.Acos(clamp1(nVec[0] / nn))
	if nVec[1] < 0 {
		Ω = 2*math.Pi - Ω
	}
	ω := math.Acos(clamp1(dot(nVec, eVec) / (nn * e)))
	if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}
	ν := math.Acos(clamp1(dot(eVec, R) / (e * r)))
	if rv < 0 {
		ν = 2*math.Pi - ν
	}
	E := AnomalyTrueToEccentric(ν, e, false)
	M := mod2pi(AnomalyEccentricToMean(E, e, false))
	i, Ω, ω = mod2pi(i), mod2pi(Ω), mod2pi(ω)
	if useDegrees {
		i *= r2d
		Ω *= r2d
		ω *= r2d
		M *= r2d
	}
	return []float64{a, e, i, Ω, ω, M}, nil
}

// clamp1 pins a cosine to [-1, 1] so rounding noise cannot turn Acos into NaN.
func clamp1(c float64) float64 {
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}

// MeanMotion returns the mean angular rate in rad/s of an orbit with the
// provided semi-major axis.
func (m EarthModel) MeanMotion(a float64) float64 {
	return math.Sqrt(m.GM / (a * a * a))
}

// SemimajorAxisFromMeanMotion is the inverse of MeanMotion.
func (m EarthModel) SemimajorAxisFromMeanMotion(n float64) float64 {
	return math.Cbrt(m.GM / (n * n))
}

// OrbitalPeriod returns the Keplerian period in seconds.
func (m EarthModel) OrbitalPeriod(a float64) float64 {
	return 2 * math.Pi / m.MeanMotion(a)
}

// PerigeeVelocity returns the speed at perigee.
func (m EarthModel) PerigeeVelocity(a, e float64) float64 {
	return math.Sqrt(m.GM/a) * math.Sqrt((1+e)/(1-e))
}

// ApogeeVelocity returns the speed at apogee.
func (m EarthModel) ApogeeVelocity(a, e float64) float64 {
	return math.Sqrt(m.GM/a) * math.Sqrt((1-e)/(1+e))
}

// SunSyncInclination returns the inclination for which the J2 nodal
// precession matches the mean motion of the Sun, for the provided semi-major
// axis and eccentricity.
func (m EarthModel) SunSyncInclination(a, e float64, useDegrees bool) float64 {
	cosi := -2 * sunSyncNodeRate * math.Pow(a, 3.5) * math.Pow(1-e*e, 2) /
		(3 * m.J2 * m.A * m.A * math.Sqrt(m.GM))
	i := math.Acos(cosi)
	if useDegrees {
		i *= r2d
	}
	return i
}
