package brahe

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
)

// Station defines a ground site able to observe satellites. Positions are in
// meters; the ECEF site vector is derived from the geodetic coordinates at
// construction.
type Station struct {
	Name         string
	R            []float64 // site position in ECEF [m]
	V            []float64 // site inertial velocity expressed in ECEF axes [m/s]
	LatΦ, Longθ  float64   // these are stored in radians!
	Altitude     float64   // ellipsoidal altitude [m]
	MinElevation float64   // visibility mask [deg]
	// Optional Gaussian noise on simulated observations.
	RangeNoise, RangeRateNoise *distmv.Normal
	Model                      EarthModel
}

// NewStation returns a noise-free ground station. Latitude and longitude in
// degrees, altitude in meters, elevation mask in degrees.
func NewStation(model EarthModel, name string, latΦ, longθ, altitude, minElevation float64) (Station, error) {
	R, err := model.GeodeticToECEF(latΦ, longθ, altitude, true)
	if err != nil {
		return Station{}, err
	}
	V := cross([]float64{0, 0, model.RotationRate}, R)
	return Station{
		Name:         name,
		R:            R,
		V:            V,
		LatΦ:         latΦ * d2r,
		Longθ:        longθ * d2r,
		Altitude:     altitude,
		MinElevation: minElevation,
		Model:        model,
	}, nil
}

// NewNoisyStation is NewStation with Gaussian noise variances on range and
// range rate for simulated measurements.
func NewNoisyStation(model EarthModel, name string, latΦ, longθ, altitude, minElevation, σρ, σρDot float64) (Station, error) {
	s, err := NewStation(model, name, latΦ, longθ, altitude, minElevation)
	if err != nil {
		return Station{}, err
	}
	seed := rand.New(rand.NewSource(time.Now().UnixNano()))
	ρNoise, ok := distmv.NewNormal([]float64{0}, mat64.NewSymDense(1, []float64{σρ}), seed)
	if !ok {
		return Station{}, DomainError{Op: "NewNoisyStation", Msg: "range noise variance is not positive definite"}
	}
	ρDotNoise, ok := distmv.NewNormal([]float64{0}, mat64.NewSymDense(1, []float64{σρDot}), seed)
	if !ok {
		return Station{}, DomainError{Op: "NewNoisyStation", Msg: "range rate noise variance is not positive definite"}
	}
	s.RangeNoise = ρNoise
	s.RangeRateNoise = ρDotNoise
	return s, nil
}

// RangeElAz returns the slant vector (in ECEF), range, elevation and azimuth
// (in degrees) of a given position vector in ECEF. The topocentric angles come
// from the SEZ rotation Ry(90°-φ)·Rz(λ).
func (s Station) RangeElAz(rECEF []float64) (ρECEF []float64, ρ, el, az float64) {
	ρECEF = make([]float64, 3)
	for i := 0; i < 3; i++ {
		ρECEF[i] = rECEF[i] - s.R[i]
	}
	ρ = norm(ρECEF)
	rSEZ := MxV33(Rz(s.Longθ, false), ρECEF)
	rSEZ = MxV33(Ry(math.Pi/2-s.LatΦ, false), rSEZ)
	el = math.Asin(rSEZ[2]/ρ) * r2d
	az = math.Mod(2*math.Pi+math.Atan2(rSEZ[1], -rSEZ[0]), 2*math.Pi) * r2d
	return
}

// Measurement is one simulated range/range-rate observation of a satellite.
type Measurement struct {
	Visible                  bool
	Range, RangeRate         float64 // possibly noisy [m, m/s]
	TrueRange, TrueRangeRate float64
	Elevation, Azimuth       float64 // [deg]
	Epoch                    Epoch
	Station                  string
}

// Observe measures the provided inertial satellite state from the station at
// the given instant. The state is first taken to ECEF (velocity transport
// included), so the site itself is at rest in the observation frame.
func (s Station) Observe(ts *TimeSystem, e Epoch, eciState []float64) (Measurement, error) {
	ecef, err := s.Model.ECIToECEFState(ts, e, eciState)
	if err != nil {
		return Measurement{}, err
	}
	ρECEF, ρ, el, az := s.RangeElAz(ecef[:3])
	if ρ < 1e-9 {
		return Measurement{}, DomainError{Op: "Observe", Msg: "satellite is at the station"}
	}
	ρDot := dot(ρECEF, ecef[3:]) / ρ
	m := Measurement{
		Visible:       el >= s.MinElevation,
		Range:         ρ,
		RangeRate:     ρDot,
		TrueRange:     ρ,
		TrueRangeRate: ρDot,
		Elevation:     el,
		Azimuth:       az,
		Epoch:         e,
		Station:       s.Name,
	}
	if s.RangeNoise != nil {
		m.Range += s.RangeNoise.Rand(nil)[0]
	}
	if s.RangeRateNoise != nil {
		m.RangeRate += s.RangeRateNoise.Rand(nil)[0]
	}
	return m, nil
}

func (s Station) String() string {
	return fmt.Sprintf("%s (%f,%f); alt = %f m; el mask = %f deg", s.Name, s.LatΦ*r2d, s.Longθ*r2d, s.Altitude, s.MinElevation)
}
