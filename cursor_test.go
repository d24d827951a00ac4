package stockfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func points(entries ...string) []Point {
	out := make([]Point, 0, len(entries)/2)
	for i := 0; i < len(entries); i += 2 {
		out = append(out, Point{Date: MustParseDate(entries[i]), Value: mustD(entries[i+1])})
	}
	return out
}

func TestCursor_CarriesLastKnownValueForward(t *testing.T) {
	// Fri 2025-01-03, then Mon 2025-01-06: the weekend gap carries Friday.
	c := NewCursor(points(
		"2025-01-02", "10",
		"2025-01-03", "11",
		"2025-01-06", "12",
	))

	requireDecimal(t, "10", c.ValueAt(MustParseDate("2025-01-02")))
	requireDecimal(t, "11", c.ValueAt(MustParseDate("2025-01-03")))
	requireDecimal(t, "11", c.ValueAt(MustParseDate("2025-01-04")))
	requireDecimal(t, "11", c.ValueAt(MustParseDate("2025-01-05")))
	requireDecimal(t, "12", c.ValueAt(MustParseDate("2025-01-06")))
	requireDecimal(t, "12", c.ValueAt(MustParseDate("2025-02-01")))
}

func TestCursor_ClampsBeforeSeriesStart(t *testing.T) {
	c := NewCursor(points("2025-01-10", "10", "2025-01-11", "11"))

	requireDecimal(t, "10", c.ValueAt(MustParseDate("2024-12-01")))
	requireDecimal(t, "10", c.ValueAt(MustParseDate("2025-01-09")))
	requireDecimal(t, "10", c.ValueAt(MustParseDate("2025-01-10")))
}

func TestCursor_SameDateQueryIsIdempotent(t *testing.T) {
	c := NewCursor(points("2025-01-01", "10", "2025-01-02", "20", "2025-01-03", "30"))

	on := MustParseDate("2025-01-02")
	requireDecimal(t, "20", c.ValueAt(on))
	requireDecimal(t, "20", c.ValueAt(on))
	requireDecimal(t, "20", c.ValueAt(on))
}

func TestCursor_JumpsAcrossManyEntries(t *testing.T) {
	var pts []Point
	on := NewDate(2025, time.January, 1)
	for i := 0; i < 100; i++ {
		pts = append(pts, Point{Date: on.Add(i), Value: decimal.NewFromInt(int64(i + 1))})
	}
	c := NewCursor(pts)

	requireDecimal(t, "1", c.ValueAt(on))
	requireDecimal(t, "100", c.ValueAt(on.Add(99)))
	requireDecimal(t, "100", c.ValueAt(on.Add(500)))
}

func TestUnitRate_IsAlwaysOne(t *testing.T) {
	r := UnitRate()
	requireDecimal(t, "1", r.ValueAt(MustParseDate("1999-01-01")))
	requireDecimal(t, "1", r.ValueAt(Today()))
	require.NotNil(t, r)
}
