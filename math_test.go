package brahe

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestCross(t *testing.T) {
	i := []float64{1, 0, 0}
	j := []float64{0, 1, 0}
	k := []float64{0, 0, 1}
	if !vectorsEqualTol(cross(i, j), k, 1e-15) {
		t.Fatal("i x j != k")
	}
	if !vectorsEqualTol(cross(j, k), i, 1e-15) {
		t.Fatal("j x k != i")
	}
	if !vectorsEqualTol(cross([]float64{2, 3, 4}, []float64{5, 6, 7}), []float64{-3, 6, -3}, 1e-15) {
		t.Fatal("cross product failed")
	}
}

func TestDotNormUnit(t *testing.T) {
	a := []float64{3, 4, 12}
	if dot(a, a) != 169 {
		t.Fatalf("dot(a,a) = %f", dot(a, a))
	}
	if norm(a) != 13 {
		t.Fatalf("norm(a) = %f", norm(a))
	}
	u := unit(a)
	if !floats.EqualWithinAbs(norm(u), 1, 1e-15) {
		t.Fatalf("unit vector norm = %f", norm(u))
	}
	if !vectorsEqualTol(unit([]float64{0, 0, 0}), []float64{0, 0, 0}, 0) {
		t.Fatal("unit of the zero vector must be the zero vector")
	}
}

func TestAngles(t *testing.T) {
	if !floats.EqualWithinAbs(Deg2rad(180), math.Pi, 1e-15) {
		t.Fatal("Deg2rad(180) != π")
	}
	if !floats.EqualWithinAbs(Rad2deg(math.Pi), 180, 1e-13) {
		t.Fatal("Rad2deg(π) != 180")
	}
	if !floats.EqualWithinAbs(Deg2rad(-90), 3*math.Pi/2, 1e-13) {
		t.Fatal("Deg2rad(-90) should wrap positive")
	}
	if !floats.EqualWithinAbs(Rad2deg(-math.Pi/2), 270, 1e-13) {
		t.Fatal("Rad2deg(-π/2) should wrap positive")
	}
}
