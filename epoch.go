package brahe

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/soniakeys/meeus/julian"
)

// TimeScale identifies the time scale an instant is expressed in.
type TimeScale uint8

const (
	// UTC is Coordinated Universal Time. It carries leap second
	// discontinuities, so it is never used for arithmetic directly.
	UTC TimeScale = iota
	// TAI is International Atomic Time, the continuous canonical scale.
	TAI
	// GPS is the GPS system time, TAI - 19s.
	GPS
	// TT is Terrestrial Time, TAI + 32.184s.
	TT
	// UT1 is Universal Time, UTC corrected by the measured DUT1 offset.
	UT1
)

func (s TimeScale) String() string {
	switch s {
	case UTC:
		return "UTC"
	case TAI:
		return "TAI"
	case GPS:
		return "GPS"
	case TT:
		return "TT"
	case UT1:
		return "UT1"
	default:
		return fmt.Sprintf("TimeScale(%d)", uint8(s))
	}
}

// ParseTimeScale returns the scale matching the provided name.
func ParseTimeScale(name string) (TimeScale, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UTC":
		return UTC, nil
	case "TAI":
		return TAI, nil
	case "GPS":
		return GPS, nil
	case "TT":
		return TT, nil
	case "UT1":
		return UT1, nil
	default:
		return UTC, TimeValueError{Value: name, Msg: "unknown time scale"}
	}
}

// Epoch is an instant in time. It stores the canonical continuous
// representation, TAI seconds since J2000, so arithmetic and ordering are
// immune to leap second discontinuities. Epochs are immutable values; use a
// TimeSystem to build them and to read them out in a particular scale.
type Epoch struct {
	tai float64
}

// Add returns the epoch shifted by the provided number of SI seconds.
func (e Epoch) Add(sec float64) Epoch {
	return Epoch{tai: e.tai + sec}
}

// Sub returns the signed difference e - o in SI seconds.
func (e Epoch) Sub(o Epoch) float64 {
	return e.tai - o.tai
}

// Before reports whether e is strictly earlier than o.
func (e Epoch) Before(o Epoch) bool { return e.tai < o.tai }

// After reports whether e is strictly later than o.
func (e Epoch) After(o Epoch) bool { return e.tai > o.tai }

// Equal reports whether both epochs denote the same instant.
func (e Epoch) Equal(o Epoch) bool { return e.tai == o.tai }

// TAI returns the canonical representation, TAI seconds since J2000.
func (e Epoch) TAI() float64 { return e.tai }

// TimeSystem converts between time scales. It owns the leap second table and
// the DUT1 (UT1-UTC) offset; both are fixed at construction, so a TimeSystem
// is safe for lock-free concurrent use.
type TimeSystem struct {
	leaps *LeapTable
	dut1  float64
}

// DefaultTimeSystem returns a TimeSystem on the built-in IERS leap second
// table with DUT1 = 0.
func DefaultTimeSystem() *TimeSystem {
	return &TimeSystem{leaps: DefaultLeapTable()}
}

// NewTimeSystem returns a TimeSystem on the provided table. DUT1 is the
// measured UT1-UTC offset in seconds, bounded by definition to |DUT1| < 0.9.
func NewTimeSystem(leaps *LeapTable, dut1 float64) (*TimeSystem, error) {
	if math.Abs(dut1) >= 0.9 {
		return nil, TimeValueError{Value: fmt.Sprintf("%f", dut1), Msg: "DUT1 must be within (-0.9, 0.9) seconds"}
	}
	return &TimeSystem{leaps: leaps, dut1: dut1}, nil
}

// Epoch builds an instant from Gregorian calendar fields expressed in the
// provided scale. Seconds may carry a fraction; a 60.x value is accepted only
// in UTC and only at 23:59 of a day that ends in an inserted leap second.
func (ts *TimeSystem) Epoch(year, month, day, hour, min int, sec float64, scale TimeScale) (Epoch, error) {
	if err := validateCalendar(year, month, day, hour, min, sec); err != nil {
		return Epoch{}, err
	}
	jd := julian.CalendarGregorianToJD(year, month, float64(day))
	daySec := (jd - JDJ2000) * SecondsPerDay
	scaleSec := daySec + float64(hour)*3600 + float64(min)*60 + sec
	if sec >= 60 {
		return ts.leapSecondEpoch(daySec, scaleSec, hour, min, scale)
	}
	return ts.FromSeconds(scaleSec, scale)
}

// leapSecondEpoch places a second-60 calendar reading. The inserted second
// still belongs to the old TAI-UTC bracket: 23:59:60 UTC is one second after
// 23:59:59, not an alias of the following midnight, so the offset is resolved
// strictly before the midnight boundary where the new value takes effect.
func (ts *TimeSystem) leapSecondEpoch(daySec, scaleSec float64, hour, min int, scale TimeScale) (Epoch, error) {
	if scale != UTC {
		return Epoch{}, TimeValueError{Value: scale.String(), Msg: "second 60 only exists on the UTC scale"}
	}
	boundary := daySec + SecondsPerDay
	if hour != 23 || min != 59 || !ts.leaps.insertionAt(boundary) {
		return Epoch{}, TimeValueError{Msg: "second 60 outside an inserted leap second"}
	}
	dat, err := ts.leaps.OffsetFromUTC(boundary - 1)
	if err != nil {
		return Epoch{}, err
	}
	return Epoch{tai: scaleSec + dat}, nil
}

var isoRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:[T ](\d{2}):(\d{2}):(\d{2}(?:\.\d+)?))?(Z)?$`)

// Parse builds an instant from an ISO-8601-like string, `YYYY-MM-DD` with an
// optional `Thh:mm:ss[.sss]` time and an optional `Z` suffix. The `Z` suffix
// is only valid together with the UTC scale.
func (ts *TimeSystem) Parse(value string, scale TimeScale) (Epoch, error) {
	m := isoRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return Epoch{}, TimeValueError{Value: value, Msg: "not an ISO-8601 date"}
	}
	if m[7] == "Z" && scale != UTC {
		return Epoch{}, TimeValueError{Value: value, Msg: "Z suffix requires the UTC scale"}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	var hour, min int
	var sec float64
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		min, _ = strconv.Atoi(m[5])
		sec, _ = strconv.ParseFloat(m[6], 64)
	}
	return ts.Epoch(year, month, day, hour, min, sec, scale)
}

// FromSeconds builds an instant from a continuous offset, seconds since J2000
// expressed in the provided scale.
func (ts *TimeSystem) FromSeconds(sec float64, scale TimeScale) (Epoch, error) {
	var tai float64
	switch scale {
	case TAI:
		tai = sec
	case GPS:
		tai = sec + TAIMinusGPS
	case TT:
		tai = sec - TTMinusTAI
	case UTC, UT1:
		utc := sec
		if scale == UT1 {
			utc -= ts.dut1
		}
		dat, err := ts.leaps.OffsetFromUTC(utc)
		if err != nil {
			return Epoch{}, err
		}
		tai = utc + dat
	default:
		return Epoch{}, TimeValueError{Value: scale.String(), Msg: "unknown time scale"}
	}
	if tai < ts.leaps.EarliestTAI() {
		return Epoch{}, TimeValueError{Msg: "instant precedes the leap second table"}
	}
	return Epoch{tai: tai}, nil
}

// Seconds returns the instant as a continuous offset, seconds since J2000
// expressed in the requested scale.
func (ts *TimeSystem) Seconds(e Epoch, scale TimeScale) float64 {
	switch scale {
	case TAI:
		return e.tai
	case GPS:
		return e.tai - TAIMinusGPS
	case TT:
		return e.tai + TTMinusTAI
	case UTC, UT1:
		dat, err := ts.leaps.OffsetFromTAI(e.tai)
		if err != nil {
			// Constructors reject instants before the table, so this only
			// happens for epochs shifted below it with Add. Saturate.
			dat = ts.leaps.entries[0].dat
		}
		if scale == UT1 {
			return e.tai - dat + ts.dut1
		}
		return e.tai - dat
	default:
		return e.tai
	}
}

// JulianDate returns the Julian Date of the instant in the requested scale.
func (ts *TimeSystem) JulianDate(e Epoch, scale TimeScale) float64 {
	return JDJ2000 + ts.Seconds(e, scale)/SecondsPerDay
}

// ModifiedJulianDate returns the Modified Julian Date of the instant in the
// requested scale.
func (ts *TimeSystem) ModifiedJulianDate(e Epoch, scale TimeScale) float64 {
	return ts.JulianDate(e, scale) - MJDOffset
}

// Calendar returns the instant as Gregorian calendar fields in the requested
// scale. Seconds are rounded to the microsecond to absorb the resolution of
// the Julian Date representation.
func (ts *TimeSystem) Calendar(e Epoch, scale TimeScale) (year, month, day, hour, min int, sec float64) {
	jd := ts.JulianDate(e, scale)
	dayJD := math.Floor(jd + 0.5) // Julian day number, noon of the calendar day
	sod := (jd + 0.5 - dayJD) * SecondsPerDay
	sod = math.Round(sod*1e6) / 1e6
	if sod >= SecondsPerDay {
		sod -= SecondsPerDay
		dayJD++
	}
	y, m, d := julian.JDToCalendar(dayJD - 0.5)
	year, month, day = y, m, int(math.Round(d))
	hour = int(sod / 3600)
	sod -= float64(hour) * 3600
	min = int(sod / 60)
	sec = sod - float64(min)*60
	return
}

func validateCalendar(year, month, day, hour, min int, sec float64) error {
	if month < 1 || month > 12 {
		return TimeValueError{Value: fmt.Sprintf("%d", month), Msg: "month out of range"}
	}
	if day < 1 || day > daysInMonth(year, month) {
		return TimeValueError{Value: fmt.Sprintf("%04d-%02d-%02d", year, month, day), Msg: "day out of range"}
	}
	if hour < 0 || hour > 23 {
		return TimeValueError{Value: fmt.Sprintf("%d", hour), Msg: "hour out of range"}
	}
	if min < 0 || min > 59 {
		return TimeValueError{Value: fmt.Sprintf("%d", min), Msg: "minute out of range"}
	}
	// Up to 61 to leave room for a leap second reading of 60.x.
	if sec < 0 || sec >= 61 || math.IsNaN(sec) {
		return TimeValueError{Value: fmt.Sprintf("%f", sec), Msg: "seconds out of range"}
	}
	return nil
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if julian.LeapYearGregorian(year) {
			return 29
		}
		return 28
	}
}
