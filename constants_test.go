package brahe

import (
	"testing"

	"github.com/gonum/floats"
	"github.com/spf13/viper"
)

func TestWGS84Derived(t *testing.T) {
	if !floats.EqualWithinAbs(WGS84.EccentricitySquared(), 6.69437999014e-3, 1e-11) {
		t.Fatalf("e² = %g", WGS84.EccentricitySquared())
	}
	if !floats.EqualWithinAbs(WGS84.PolarRadius(), 6356752.314245, 1e-4) {
		t.Fatalf("polar radius = %f", WGS84.PolarRadius())
	}
}

func TestLoadEarthModelDefaults(t *testing.T) {
	m := LoadEarthModel(viper.New())
	if m != WGS84 {
		t.Fatalf("defaults differ from WGS84: %+v", m)
	}
}

func TestLoadEarthModelOverride(t *testing.T) {
	v := viper.New()
	v.Set("earth.name", "sphere")
	v.Set("earth.flattening", 0.0)
	m := LoadEarthModel(v)
	if m.Name != "sphere" || m.F != 0 {
		t.Fatalf("override ignored: %+v", m)
	}
	if m.A != WGS84.A || m.GM != WGS84.GM {
		t.Fatalf("unset keys must fall back to WGS84: %+v", m)
	}
	if m.EccentricitySquared() != 0 {
		t.Fatal("spherical model must have zero eccentricity")
	}
	if !floats.EqualWithinAbs(m.PolarRadius(), m.A, 1e-9) {
		t.Fatal("spherical model must have equal radii")
	}
}
