package brahe

import (
	"fmt"
	"math"
)

const (
	geodeticTol     = 1e-12
	geodeticMaxIter = 100
)

// GeodeticToECEF converts a geodetic point (latitude, longitude, altitude
// above the ellipsoid in meters) to the Earth-fixed Cartesian frame.
func (m EarthModel) GeodeticToECEF(lat, lon, alt float64, useDegrees bool) ([]float64, error) {
	if useDegrees {
		lat *= d2r
		lon *= d2r
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsNaN(alt) {
		return nil, DomainError{Op: "GeodeticToECEF", Msg: "non-finite input"}
	}
	if math.Abs(lat) > math.Pi/2 {
		return nil, DomainError{Op: "GeodeticToECEF", Msg: fmt.Sprintf("latitude %f rad out of [-π/2, π/2]", lat)}
	}
	e2 := m.EccentricitySquared()
	sLat, cLat := math.Sincos(lat)
	sLon, cLon := math.Sincos(lon)
	// Prime vertical radius of curvature.
	N := m.A / math.Sqrt(1-e2*sLat*sLat)
	return []float64{
		(N + alt) * cLat * cLon,
		(N + alt) * cLat * sLon,
		(N*(1-e2) + alt) * sLat,
	}, nil
}

// GeodeticPointToECEF is GeodeticToECEF on a [lat, lon] or [lat, lon, alt]
// slice; a missing altitude defaults to zero.
func (m EarthModel) GeodeticPointToECEF(point []float64, useDegrees bool) ([]float64, error) {
	switch len(point) {
	case 2:
		return m.GeodeticToECEF(point[0], point[1], 0, useDegrees)
	case 3:
		return m.GeodeticToECEF(point[0], point[1], point[2], useDegrees)
	default:
		return nil, DomainError{Op: "GeodeticPointToECEF", Msg: fmt.Sprintf("expected 2 or 3 components, got %d", len(point))}
	}
}

// ECEFToGeodetic converts an Earth-fixed Cartesian position to geodetic
// latitude, longitude and altitude via the usual fixed-point iteration on the
// latitude. It round-trips with GeodeticToECEF to well below a millimeter.
func (m EarthModel) ECEFToGeodetic(r []float64, useDegrees bool) ([]float64, error) {
	if len(r) != 3 {
		return nil, DomainError{Op: "ECEFToGeodetic", Msg: fmt.Sprintf("expected 3 components, got %d", len(r))}
	}
	x, y, z := r[0], r[1], r[2]
	e2 := m.EccentricitySquared()
	p := math.Hypot(x, y)
	lon := math.Atan2(y, x)
	if p < 1e-9 {
		// On the polar axis the longitude is arbitrary.
		lat := math.Copysign(math.Pi/2, z)
		alt := math.Abs(z) - m.PolarRadius()
		return geodeticOut(lat, 0, alt, useDegrees), nil
	}
	lat := math.Atan2(z, p*(1-e2))
	var alt float64
	for i := 0; ; i++ {
		if i >= geodeticMaxIter {
			return nil, ConvergenceError{Op: "ECEFToGeodetic", Iterations: geodeticMaxIter, Tolerance: geodeticTol}
		}
		sLat := math.Sin(lat)
		N := m.A / math.Sqrt(1-e2*sLat*sLat)
		alt = p/math.Cos(lat) - N
		prev := lat
		lat = math.Atan2(z, p*(1-e2*N/(N+alt)))
		if math.Abs(lat-prev) < geodeticTol {
			break
		}
	}
	return geodeticOut(lat, lon, alt, useDegrees), nil
}

func geodeticOut(lat, lon, alt float64, useDegrees bool) []float64 {
	if useDegrees {
		return []float64{lat * r2d, lon * r2d, alt}
	}
	return []float64{lat, lon, alt}
}
