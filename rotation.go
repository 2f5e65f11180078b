package brahe

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// Rx returns the passive rotation matrix about the first axis. The convention
// is right-handed aerospace (frame rotation, not vector rotation):
//
//	Rx(θ) = [[1,0,0],[0,cosθ,sinθ],[0,-sinθ,cosθ]]
func Rx(angle float64, useDegrees bool) *mat64.Dense {
	if useDegrees {
		angle *= d2r
	}
	s, c := math.Sincos(angle)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// Ry returns the passive rotation matrix about the second axis.
func Ry(angle float64, useDegrees bool) *mat64.Dense {
	if useDegrees {
		angle *= d2r
	}
	s, c := math.Sincos(angle)
	return mat64.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// Rz returns the passive rotation matrix about the third axis.
func Rz(angle float64, useDegrees bool) *mat64.Dense {
	if useDegrees {
		angle *= d2r
	}
	s, c := math.Sincos(angle)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a 3x3 matrix with a 3x1 vector. Note that there is no
// dimension check!
func MxV33(m *mat64.Dense, v []float64) []float64 {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}
