package brahe

import "github.com/spf13/viper"

const (
	// JDJ2000 is the Julian Date of the J2000 reference epoch.
	JDJ2000 = 2451545.0
	// MJDOffset converts a Julian Date to a Modified Julian Date.
	MJDOffset = 2400000.5
	// SecondsPerDay is the number of SI seconds in one day.
	SecondsPerDay = 86400.0
	// TTMinusTAI is the fixed offset between Terrestrial Time and TAI, in seconds.
	TTMinusTAI = 32.184
	// TAIMinusGPS is the fixed offset between TAI and GPS time, in seconds.
	TAIMinusGPS = 19.0
)

// EarthModel gathers the ellipsoid and gravity constants every frame and orbit
// computation needs. It is an immutable value: build one at process start and
// pass it to whatever needs it instead of relying on package globals, so
// alternate ellipsoids stay testable.
type EarthModel struct {
	Name         string
	A            float64 // equatorial radius [m]
	F            float64 // flattening
	GM           float64 // standard gravitational parameter [m^3/s^2]
	RotationRate float64 // [rad/s]
	J2           float64 // second zonal harmonic
}

// EccentricitySquared returns the first eccentricity squared of the ellipsoid.
func (m EarthModel) EccentricitySquared() float64 {
	return m.F * (2 - m.F)
}

// PolarRadius returns the semi-minor axis of the ellipsoid.
func (m EarthModel) PolarRadius() float64 {
	return m.A * (1 - m.F)
}

// WGS84 is the default Earth model.
var WGS84 = EarthModel{
	Name:         "WGS84",
	A:            6378137.0,
	F:            1 / 298.257223563,
	GM:           3.986004418e14,
	RotationRate: 7.292115146706979e-5,
	J2:           1.0826358e-3,
}

// LoadEarthModel builds an EarthModel from a viper configuration, falling back
// to WGS84 for any key left unset. Expected keys live under `earth.`:
// name, radius, flattening, gm, rotation_rate, j2.
func LoadEarthModel(v *viper.Viper) EarthModel {
	v.SetDefault("earth.name", WGS84.Name)
	v.SetDefault("earth.radius", WGS84.A)
	v.SetDefault("earth.flattening", WGS84.F)
	v.SetDefault("earth.gm", WGS84.GM)
	v.SetDefault("earth.rotation_rate", WGS84.RotationRate)
	v.SetDefault("earth.j2", WGS84.J2)
	return EarthModel{
		Name:         v.GetString("earth.name"),
		A:            v.GetFloat64("earth.radius"),
		F:            v.GetFloat64("earth.flattening"),
		GM:           v.GetFloat64("earth.gm"),
		RotationRate: v.GetFloat64("earth.rotation_rate"),
		J2:           v.GetFloat64("earth.j2"),
	}
}
