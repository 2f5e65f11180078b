package brahe

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestElementsToCartesianCircularEquatorial(t *testing.T) {
	a := WGS84.A + 500e3
	x, err := WGS84.ElementsToCartesian([]float64{a, 0, 0, 0, 0, 0}, true)
	if err != nil {
		t.Fatal(err)
	}
	vCirc := math.Sqrt(WGS84.GM / a)
	if !vectorsEqualTol(x, []float64{a, 0, 0, 0, vCirc, 0}, 1e-6) {
		t.Fatalf("circular equatorial state: %v", x)
	}
}

func TestElementsRoundTrip(t *testing.T) {
	cases := [][]float64{
		{7000e3, 0.01, 45, 30, 60, 100},
		{6878137, 0.001, 97.8, 310.2, 45.5, 359.0},
		{26560e3, 0.02, 55, 120, 200, 10},
		{42164e3, 0.0003, 0.5, 75, 330, 180},
	}
	for _, oe := range cases {
		x, err := WGS84.ElementsToCartesian(oe, true)
		if err != nil {
			t.Fatal(err)
		}
		back, err := WGS84.CartesianToElements(x, true)
		if err != nil {
			t.Fatalf("oe %v: %s", oe, err)
		}
		if !floats.EqualWithinAbs(back[0], oe[0], 1e-3) {
			t.Fatalf("semi-major axis: %f vs %f", back[0], oe[0])
		}
		if !floats.EqualWithinAbs(back[1], oe[1], 1e-9) {
			t.Fatalf("eccentricity: %f vs %f", back[1], oe[1])
		}
		for k := 2; k < 6; k++ {
			if !floats.EqualWithinAbs(back[k], oe[k], 1e-6) {
				t.Fatalf("oe %v: element %d: %f vs %f", oe, k, back[k], oe[k])
			}
		}
	}
}

func TestCartesianToElementsRejectsDegenerate(t *testing.T) {
	var domErr DomainError
	// Zero position.
	if _, err := WGS84.CartesianToElements([]float64{0, 0, 0, 1, 2, 3}, true); !errors.As(err, &domErr) {
		t.Fatal("zero position accepted")
	}
	// Radial trajectory: velocity parallel to position.
	if _, err := WGS84.CartesianToElements([]float64{7e6, 0, 0, 1e3, 0, 0}, true); !errors.As(err, &domErr) {
		t.Fatal("radial trajectory accepted")
	}
	// Hyperbolic speed.
	if _, err := WGS84.CartesianToElements([]float64{7e6, 0, 0, 0, 10e4, 0}, true); !errors.As(err, &domErr) {
		t.Fatal("unbound orbit accepted")
	}
	// Near-circular and near-equatorial states leave angles ill-defined.
	circ, err := WGS84.ElementsToCartesian([]float64{7000e3, 0, 45, 30, 0, 10}, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := WGS84.CartesianToElements(circ, true); !errors.As(err, &domErr) {
		t.Fatal("near-circular orbit accepted")
	}
	eq, err := WGS84.ElementsToCartesian([]float64{7000e3, 0.01, 0, 0, 30, 10}, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := WGS84.CartesianToElements(eq, true); !errors.As(err, &domErr) {
		t.Fatal("near-equatorial orbit accepted")
	}
}

func TestElementsToCartesianRejectsDegenerate(t *testing.T) {
	var domErr DomainError
	if _, err := WGS84.ElementsToCartesian([]float64{-7000e3, 0.01, 45, 30, 60, 100}, true); !errors.As(err, &domErr) {
		t.Fatal("negative semi-major axis accepted")
	}
	if _, err := WGS84.ElementsToCartesian([]float64{7000e3, 1.2, 45, 30, 60, 100}, true); !errors.As(err, &domErr) {
		t.Fatal("hyperbolic eccentricity accepted")
	}
	if _, err := WGS84.ElementsToCartesian([]float64{7000e3, 0.01, 45}, true); !errors.As(err, &domErr) {
		t.Fatal("3-element vector accepted")
	}
}

func TestOrbitScalars(t *testing.T) {
	a := 7000e3
	n := WGS84.MeanMotion(a)
	if !floats.EqualWithinAbs(WGS84.SemimajorAxisFromMeanMotion(n), a, 1e-4) {
		t.Fatal("MeanMotion and SemimajorAxisFromMeanMotion are not inverses")
	}
	if !floats.EqualWithinAbs(WGS84.OrbitalPeriod(a), 2*math.Pi/n, 1e-9) {
		t.Fatal("OrbitalPeriod inconsistent with MeanMotion")
	}
	// Circular orbit: perigee and apogee speeds collapse to the circular speed.
	vc := math.Sqrt(WGS84.GM / a)
	if !floats.EqualWithinAbs(WGS84.PerigeeVelocity(a, 0), vc, 1e-9) ||
		!floats.EqualWithinAbs(WGS84.ApogeeVelocity(a, 0), vc, 1e-9) {
		t.Fatal("circular apsis velocities differ from the circular speed")
	}
	// Vis-viva check at perigee for an eccentric orbit.
	e := 0.1
	rp := a * (1 - e)
	vp := math.Sqrt(WGS84.GM * (2/rp - 1/a))
	if !floats.EqualWithinAbs(WGS84.PerigeeVelocity(a, e), vp, 1e-6) {
		t.Fatalf("perigee velocity %f, vis-viva gives %f", WGS84.PerigeeVelocity(a, e), vp)
	}
	// A 500 km sun-synchronous orbit sits near 97.4 degrees.
	if i := WGS84.SunSyncInclination(WGS84.A+500e3, 0, true); math.Abs(i-97.4) > 0.3 {
		t.Fatalf("sun-sync inclination at 500 km = %f deg", i)
	}
}
