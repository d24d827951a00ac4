package stockfolio

import "github.com/shopspring/decimal"

// Point is one dated value in a sparse series (a closing price or an
// exchange rate). Gaps are non-trading days; consumers carry the last known
// value forward, never interpolate.
type Point struct {
	Date  Date            `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// RateSource yields the applicable value of a series on a date.
//
// Query dates must be non-decreasing over the lifetime of one source; start a
// new one to go back in time. The precondition is not guarded: a caller that
// rewinds gets the currently pointed value, not a recomputed one.
type RateSource interface {
	ValueAt(on Date) decimal.Decimal
}

// Cursor walks an ascending-by-date series forward, returning for each query
// the latest entry not later than the query date.
//
// Queries before the first entry return the first entry: the series start is
// the floor, there is no backward extrapolation. Advancing is O(1) amortized,
// one full scan over the series in total.
type Cursor struct {
	points []Point
	idx    int
}

// NewCursor builds a cursor over points, which must be sorted ascending by
// date and non-empty.
func NewCursor(points []Point) *Cursor {
	return &Cursor{points: points}
}

// ValueAt returns the value applicable on the given date. Calling it twice
// with the same date returns the same value.
func (c *Cursor) ValueAt(on Date) decimal.Decimal {
	for c.idx+1 < len(c.points) && !c.points[c.idx+1].Date.After(on) {
		c.idx++
	}
	return c.points[c.idx].Value
}

// unitRate is the identity exchange rate, used when no conversion is needed.
type unitRate struct{}

func (unitRate) ValueAt(Date) decimal.Decimal { return decimal.NewFromInt(1) }

// UnitRate returns a RateSource that is constantly 1, for series in the
// target currency already.
func UnitRate() RateSource { return unitRate{} }
