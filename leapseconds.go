package brahe

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/soniakeys/meeus/julian"
)

// LeapSecond is one entry of the TAI-UTC history: the offset becomes effective
// at 00:00:00 UTC on the given calendar date and applies until the next entry.
type LeapSecond struct {
	Year, Month, Day int
	TAIMinusUTC      float64
}

type leapEntry struct {
	utc float64 // effective instant, seconds since J2000 on the UTC scale
	tai float64 // same instant on the TAI scale
	dat float64 // TAI-UTC from this instant on
}

// LeapTable answers TAI-UTC lookups. It is immutable after construction and
// safe for concurrent reads without locking.
type LeapTable struct {
	entries []leapEntry
}

// NewLeapTable builds a lookup table from a TAI-UTC history. The history does
// not need to be sorted.
func NewLeapTable(history []LeapSecond) *LeapTable {
	entries := make([]leapEntry, len(history))
	for i, ls := range history {
		utc := (julian.CalendarGregorianToJD(ls.Year, ls.Month, float64(ls.Day)) - JDJ2000) * SecondsPerDay
		entries[i] = leapEntry{utc: utc, tai: utc + ls.TAIMinusUTC, dat: ls.TAIMinusUTC}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].utc < entries[j].utc })
	return &LeapTable{entries: entries}
}

// iersHistory is the full TAI-UTC history since the start of the modern UTC
// definition on 1972-01-01.
var iersHistory = []LeapSecond{
	{1972, 1, 1, 10}, {1972, 7, 1, 11}, {1973, 1, 1, 12}, {1974, 1, 1, 13},
	{1975, 1, 1, 14}, {1976, 1, 1, 15}, {1977, 1, 1, 16}, {1978, 1, 1, 17},
	{1979, 1, 1, 18}, {1980, 1, 1, 19}, {1981, 7, 1, 20}, {1982, 7, 1, 21},
	{1983, 7, 1, 22}, {1985, 7, 1, 23}, {1988, 1, 1, 24}, {1990, 1, 1, 25},
	{1991, 1, 1, 26}, {1992, 7, 1, 27}, {1993, 7, 1, 28}, {1994, 7, 1, 29},
	{1996, 1, 1, 30}, {1997, 7, 1, 31}, {1999, 1, 1, 32}, {2006, 1, 1, 33},
	{2009, 1, 1, 34}, {2012, 7, 1, 35}, {2015, 7, 1, 36}, {2017, 1, 1, 37},
}

var defaultLeaps = NewLeapTable(iersHistory)

// DefaultLeapTable returns the built-in IERS table, covering 1972-01-01
// (TAI-UTC = 10s) through 2017-01-01 (TAI-UTC = 37s).
func DefaultLeapTable() *LeapTable {
	return defaultLeaps
}

// OffsetFromUTC returns TAI-UTC for an instant given as seconds since J2000 on
// the UTC scale. Instants before the first table entry are not representable.
func (t *LeapTable) OffsetFromUTC(utcSec float64) (float64, error) {
	if len(t.entries) == 0 || utcSec < t.entries[0].utc {
		return 0, TimeValueError{Msg: "instant precedes the leap second table"}
	}
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].utc > utcSec })
	return t.entries[i-1].dat, nil
}

// OffsetFromTAI returns TAI-UTC for an instant given as seconds since J2000 on
// the TAI scale.
func (t *LeapTable) OffsetFromTAI(taiSec float64) (float64, error) {
	if len(t.entries) == 0 || taiSec < t.entries[0].tai {
		return 0, TimeValueError{Msg: "instant precedes the leap second table"}
	}
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].tai > taiSec })
	return t.entries[i-1].dat, nil
}

// insertionAt reports whether a positive leap second is inserted immediately
// before the provided instant (seconds since J2000, UTC scale), that is,
// whether the day ending there carries a 23:59:60.
func (t *LeapTable) insertionAt(utcSec float64) bool {
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].utc >= utcSec })
	return i > 0 && i < len(t.entries) &&
		t.entries[i].utc == utcSec && t.entries[i].dat > t.entries[i-1].dat
}

// EarliestTAI returns the first representable instant as seconds since J2000
// on the TAI scale.
func (t *LeapTable) EarliestTAI() float64 {
	return t.entries[0].tai
}

// LoadLeapTable reads a leap second table from a text file with one entry per
// line, `YYYY MM DD TAI-UTC`, `#` starting a comment. This is the format of
// the usual IERS-derived tables and allows updating the table without a
// rebuild when a new leap second is announced.
func LoadLeapTable(path string) (*LeapTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var history []LeapSecond
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		var ls LeapSecond
		if _, err := fmt.Sscanf(line, "%d %d %d %f", &ls.Year, &ls.Month, &ls.Day, &ls.TAIMinusUTC); err != nil {
			return nil, TimeValueError{Value: line, Msg: fmt.Sprintf("line %d: malformed leap second entry", lineNo)}
		}
		history = append(history, ls)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, TimeValueError{Value: path, Msg: "empty leap second table"}
	}
	return NewLeapTable(history), nil
}
