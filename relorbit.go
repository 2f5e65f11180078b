package brahe

import (
	"fmt"

	"github.com/gonum/matrix/mat64"
)

// rtnTriad returns the RTN unit vectors of a chief state, or a DomainError
// when the radial or orbit-normal direction is undefined.
func rtnTriad(chief []float64) (rHat, tHat, nHat []float64, err error) {
	if len(chief) != 6 {
		return nil, nil, nil, DomainError{Op: "RTN", Msg: fmt.Sprintf("expected a 6-element chief state, got %d", len(chief))}
	}
	r, v := chief[:3], chief[3:]
	if norm(r) < 1e-9 {
		return nil, nil, nil, DomainError{Op: "RTN", Msg: "chief position is zero"}
	}
	h := cross(r, v)
	if norm(h) < 1e-9 {
		return nil, nil, nil, DomainError{Op: "RTN", Msg: "chief angular momentum is zero (radial orbit)"}
	}
	rHat = unit(r)
	nHat = unit(h)
	tHat = cross(nHat, rHat)
	return rHat, tHat, nHat, nil
}

// RTNToECIRotation returns the rotation from the chief's radial-transverse-
// normal frame to the inertial frame; its columns are the RTN unit vectors.
func RTNToECIRotation(chief []float64) (*mat64.Dense, error) {
	rHat, tHat, nHat, err := rtnTriad(chief)
	if err != nil {
		return nil, err
	}
	return mat64.NewDense(3, 3, []float64{
		rHat[0], tHat[0], nHat[0],
		rHat[1], tHat[1], nHat[1],
		rHat[2], tHat[2], nHat[2],
	}), nil
}

// ECIToRTNRotation returns the rotation from the inertial frame to the
// chief's RTN frame, the exact transpose of RTNToECIRotation.
func ECIToRTNRotation(chief []float64) (*mat64.Dense, error) {
	rHat, tHat, nHat, err := rtnTriad(chief)
	if err != nil {
		return nil, err
	}
	return mat64.NewDense(3, 3, []float64{
		rHat[0], rHat[1], rHat[2],
		tHat[0], tHat[1], tHat[2],
		nHat[0], nHat[1], nHat[2],
	}), nil
}

// ECIToRTNState expresses a target's inertial state relative to the chief in
// the chief's RTN frame. RTN rotates with the chief, so the relative velocity
// carries the -ω×Δr correction with ω the chief's orbital angular velocity.
func ECIToRTNState(chief, target []float64) ([]float64, error) {
	rot, err := ECIToRTNRotation(chief)
	if err != nil {
		return nil, err
	}
	if len(target) != 6 {
		return nil, DomainError{Op: "ECIToRTNState", Msg: fmt.Sprintf("expected a 6-element target state, got %d", len(target))}
	}
	rc, vc := chief[:3], chief[3:]
	rc2 := dot(rc, rc)
	ωECI := cross(rc, vc)
	for k := 0; k < 3; k++ {
		ωECI[k] /= rc2
	}
	ω := MxV33(rot, ωECI)

	Δr := MxV33(rot, []float64{target[0] - chief[0], target[1] - chief[1], target[2] - chief[2]})
	Δv := MxV33(rot, []float64{target[3] - chief[3], target[4] - chief[4], target[5] - chief[5]})
	ωxΔr := cross(ω, Δr)
	return []float64{Δr[0], Δr[1], Δr[2], Δv[0] - ωxΔr[0], Δv[1] - ωxΔr[1], Δv[2] - ωxΔr[2]}, nil
}

// RTNToECIState maps a relative RTN state back to the target's absolute
// inertial state. Exact inverse of ECIToRTNState.
func RTNToECIState(chief, rel []float64) ([]float64, error) {
	rot, err := RTNToECIRotation(chief)
	if err != nil {
		return nil, err
	}
	if len(rel) != 6 {
		return nil, DomainError{Op: "RTNToECIState", Msg: fmt.Sprintf("expected a 6-element relative state, got %d", len(rel))}
	}
	rc, vc := chief[:3], chief[3:]
	rc2 := dot(rc, rc)
	ωECI := cross(rc, vc)
	for k := 0; k < 3; k++ {
		ωECI[k] /= rc2
	}
	// ω expressed in RTN, like the relative state.
	var rotT mat64.Dense
	rotT.Clone(rot.T())
	ω := MxV33(&rotT, ωECI)

	Δr := rel[:3]
	ωxΔr := cross(ω, Δr)
	ΔrECI := MxV33(rot, Δr)
	ΔvECI := MxV33(rot, []float64{rel[3] + ωxΔr[0], rel[4] + ωxΔr[1], rel[5] + ωxΔr[2]})
	return []float64{
		chief[0] + ΔrECI[0], chief[1] + ΔrECI[1], chief[2] + ΔrECI[2],
		chief[3] + ΔvECI[0], chief[4] + ΔvECI[1], chief[5] + ΔvECI[2],
	}, nil
}
