package brahe

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

// GMST returns the Greenwich Mean Sidereal Time in radians for the provided
// instant, in [0, 2π). Uses the IAU-82 model on the UT1 Julian date
// (Vallado Eq 3-47).
func GMST(ts *TimeSystem, e Epoch) float64 {
	tUT1 := (ts.JulianDate(e, UT1) - JDJ2000) / 36525.0

	// GMST in seconds of time; 876600h is 3155760000 seconds.
	gmstSec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1

	gmstSec = math.Mod(gmstSec, SecondsPerDay)
	if gmstSec < 0 {
		gmstSec += SecondsPerDay
	}
	return gmstSec / SecondsPerDay * 2 * math.Pi
}

// ECIToECEFRotation returns the rotation taking inertial coordinates to the
// Earth-fixed frame at the provided instant.
func (m EarthModel) ECIToECEFRotation(ts *TimeSystem, e Epoch) *mat64.Dense {
	return Rz(GMST(ts, e), false)
}

// ECEFToECIRotation returns the rotation taking Earth-fixed coordinates to the
// inertial frame at the provided instant. It is the transpose of
// ECIToECEFRotation.
func (m EarthModel) ECEFToECIRotation(ts *TimeSystem, e Epoch) *mat64.Dense {
	return Rz(-GMST(ts, e), false)
}

// ECIToECEFState maps a full inertial state (position and velocity) to the
// Earth-fixed frame. The Earth-fixed frame rotates, so the velocity picks up
// the -ω⊕×r correction on top of the rotation.
func (m EarthModel) ECIToECEFState(ts *TimeSystem, e Epoch, x []float64) ([]float64, error) {
	if len(x) != 6 {
		return nil, DomainError{Op: "ECIToECEFState", Msg: fmt.Sprintf("expected a 6-element state, got %d", len(x))}
	}
	rot := m.ECIToECEFRotation(ts, e)
	r := MxV33(rot, x[:3])
	v := MxV33(rot, x[3:])
	ωxr := cross([]float64{0, 0, m.RotationRate}, r)
	return []float64{r[0], r[1], r[2], v[0] - ωxr[0], v[1] - ωxr[1], v[2] - ωxr[2]}, nil
}

// ECEFToECIState maps a full Earth-fixed state to the inertial frame. Exact
// inverse of ECIToECEFState.
func (m EarthModel) ECEFToECIState(ts *TimeSystem, e Epoch, x []float64) ([]float64, error) {
	if len(x) != 6 {
		return nil, DomainError{Op: "ECEFToECIState", Msg: fmt.Sprintf("expected a 6-element state, got %d", len(x))}
	}
	rot := m.ECEFToECIRotation(ts, e)
	ωxr := cross([]float64{0, 0, m.RotationRate}, x[:3])
	r := MxV33(rot, x[:3])
	v := MxV33(rot, []float64{x[3] + ωxr[0], x[4] + ωxr[1], x[5] + ωxr[2]})
	return []float64{r[0], r[1], r[2], v[0], v[1], v[2]}, nil
}
