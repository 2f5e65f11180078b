package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Ibrassow/brahe"
	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/viper"
)

// This tool reads a TOML scenario and reports the geometry at one instant:
// chief and target inertial states, the RTN relative state, and the look
// angles from a ground site.

const defaultScenario = "~~unset~~"

var (
	scenario string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "geometry scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "also log the intermediate frames")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "tool", "brahe-geom")

	if scenario == defaultScenario {
		logger.Log("err", "no scenario provided")
		os.Exit(1)
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(scenario)
	if err := v.ReadInConfig(); err != nil {
		logger.Log("err", fmt.Sprintf("./%s.toml: %s", scenario, err))
		os.Exit(1)
	}

	model := brahe.LoadEarthModel(v)
	ts, err := timeSystem(v)
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}

	scale, err := brahe.ParseTimeScale(stringOr(v, "epoch.scale", "UTC"))
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	epoch, err := ts.Parse(v.GetString("epoch.value"), scale)
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	logger.Log("epoch", v.GetString("epoch.value"), "scale", scale, "jd_utc", fmt.Sprintf("%.6f", ts.JulianDate(epoch, brahe.UTC)))

	chiefOE, err := floatSlice(v.Get("chief.elements"))
	if err != nil {
		logger.Log("err", fmt.Sprintf("chief.elements: %s", err))
		os.Exit(1)
	}
	chief, err := model.ElementsToCartesian(chiefOE, v.GetBool("chief.degrees"))
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	logger.Log("frame", "eci", "object", "chief", "state", vec(chief))

	target, err := targetState(v, model, chief)
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	logger.Log("frame", "eci", "object", "target", "state", vec(target))

	rel, err := brahe.ECIToRTNState(chief, target)
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	logger.Log("frame", "rtn", "object", "target", "state", vec(rel))

	if verbose {
		ecef, err := model.ECIToECEFState(ts, epoch, chief)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		logger.Log("frame", "ecef", "object", "chief", "state", vec(ecef), "gmst_rad", fmt.Sprintf("%.9f", brahe.GMST(ts, epoch)))
	}

	if !v.IsSet("site.latitude") {
		return
	}
	site, err := brahe.NewStation(model, stringOr(v, "site.name", "site"),
		v.GetFloat64("site.latitude"), v.GetFloat64("site.longitude"),
		v.GetFloat64("site.altitude"), v.GetFloat64("site.min_elevation"))
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	logger.Log("site", site.Name, "ecef", vec(site.R))
	obs, err := site.Observe(ts, epoch, chief)
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	logger.Log("site", site.Name, "visible", obs.Visible,
		"range_m", fmt.Sprintf("%.3f", obs.Range),
		"range_rate_ms", fmt.Sprintf("%.6f", obs.RangeRate),
		"elevation_deg", fmt.Sprintf("%.4f", obs.Elevation),
		"azimuth_deg", fmt.Sprintf("%.4f", obs.Azimuth))
}

// timeSystem builds the TimeSystem from the optional [time] section: a leap
// second table file and a DUT1 offset.
func timeSystem(v *viper.Viper) (*brahe.TimeSystem, error) {
	leaps := brahe.DefaultLeapTable()
	if path := v.GetString("time.leap_seconds"); path != "" {
		var err error
		leaps, err = brahe.LoadLeapTable(path)
		if err != nil {
			return nil, err
		}
	}
	return brahe.NewTimeSystem(leaps, v.GetFloat64("time.dut1"))
}

// targetState resolves the target either from its own orbital elements or
// from an RTN offset relative to the chief.
func targetState(v *viper.Viper, model brahe.EarthModel, chief []float64) ([]float64, error) {
	if v.IsSet("target.elements") {
		oe, err := floatSlice(v.Get("target.elements"))
		if err != nil {
			return nil, fmt.Errorf("target.elements: %s", err)
		}
		return model.ElementsToCartesian(oe, v.GetBool("target.degrees"))
	}
	if v.IsSet("target.offset_rtn") {
		rel, err := floatSlice(v.Get("target.offset_rtn"))
		if err != nil {
			return nil, fmt.Errorf("target.offset_rtn: %s", err)
		}
		return brahe.RTNToECIState(chief, rel)
	}
	return nil, fmt.Errorf("scenario defines neither target.elements nor target.offset_rtn")
}

func floatSlice(raw interface{}) ([]float64, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an array, got %T", raw)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		switch val := item.(type) {
		case float64:
			out[i] = val
		case int64:
			out[i] = float64(val)
		case int:
			out[i] = float64(val)
		default:
			return nil, fmt.Errorf("element %d: expected a number, got %T", i, item)
		}
	}
	return out, nil
}

func stringOr(v *viper.Viper, key, fallback string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}

func vec(x []float64) string {
	parts := make([]string, len(x))
	for i, val := range x {
		parts[i] = fmt.Sprintf("%.6f", val)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
