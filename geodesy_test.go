package brahe

import (
	"errors"
	"testing"

	"github.com/gonum/floats"
)

func TestGeodeticToECEFOrigin(t *testing.T) {
	r, err := WGS84.GeodeticToECEF(0, 0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if !vectorsEqualTol(r, []float64{WGS84.A, 0, 0}, 1e-6) {
		t.Fatalf("lat=lon=alt=0 gave %v", r)
	}
}

func TestGeodeticToECEFPole(t *testing.T) {
	r, err := WGS84.GeodeticToECEF(90, 0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if !vectorsEqualTol(r, []float64{0, 0, WGS84.PolarRadius()}, 1e-6) {
		t.Fatalf("north pole gave %v", r)
	}
}

func TestGeodeticRoundTrip(t *testing.T) {
	sites := [][]float64{
		{37.4, -122.1, 250},
		{-33.86, 151.2, 10},
		{78.23, 15.39, 450},
		{-89.5, 0, 2800},
		{0.0001, 179.99, 0},
	}
	for _, site := range sites {
		r, err := WGS84.GeodeticToECEF(site[0], site[1], site[2], true)
		if err != nil {
			t.Fatal(err)
		}
		back, err := WGS84.ECEFToGeodetic(r, true)
		if err != nil {
			t.Fatal(err)
		}
		if !floats.EqualWithinAbs(back[0], site[0], 1e-9) || !floats.EqualWithinAbs(back[1], site[1], 1e-9) {
			t.Fatalf("site %v round-tripped to %v", site, back)
		}
		if !floats.EqualWithinAbs(back[2], site[2], 1e-3) {
			t.Fatalf("altitude of %v round-tripped to %f", site, back[2])
		}
	}
}

func TestECEFToGeodeticPolarAxis(t *testing.T) {
	g, err := WGS84.ECEFToGeodetic([]float64{0, 0, -(WGS84.PolarRadius() + 1000)}, true)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(g[0], -90, 1e-9) || !floats.EqualWithinAbs(g[2], 1000, 1e-6) {
		t.Fatalf("south polar axis gave %v", g)
	}
}

func TestGeodeticPointToECEF(t *testing.T) {
	full, err := WGS84.GeodeticPointToECEF([]float64{10, 20, 0}, true)
	if err != nil {
		t.Fatal(err)
	}
	short, err := WGS84.GeodeticPointToECEF([]float64{10, 20}, true)
	if err != nil {
		t.Fatal(err)
	}
	if !vectorsEqualTol(full, short, 1e-9) {
		t.Fatal("2-element point must default to zero altitude")
	}
	var domErr DomainError
	if _, err := WGS84.GeodeticPointToECEF([]float64{10}, true); !errors.As(err, &domErr) {
		t.Fatal("1-element point accepted")
	}
}

func TestGeodeticDomainErrors(t *testing.T) {
	var domErr DomainError
	if _, err := WGS84.GeodeticToECEF(95, 0, 0, true); !errors.As(err, &domErr) {
		t.Fatal("latitude beyond the pole accepted")
	}
	if _, err := WGS84.ECEFToGeodetic([]float64{1, 2}, true); !errors.As(err, &domErr) {
		t.Fatal("2-element ECEF vector accepted")
	}
}
