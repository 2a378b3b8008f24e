// Package date provides a day-granularity Date, a sorted date-indexed series
// with carry-forward lookup, and date ranges with the selectors used by the
// reporting views.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the canonical string representation of a date, ISO-8601.
const Format = "2006-01-02"

// readFormat is slightly permissive and accepts single-digit month/day.
const readFormat = "2006-1-2"

// Date represents a calendar day. It has no time-of-day and no timezone; two
// Date values are comparable with ==.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
// Out-of-range components wrap the way time.Date does.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// time returns the canonical time.Time for that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Time returns midnight UTC of that day.
func (d Date) Time() time.Time { return d.time() }

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 as d is before, equal to, or after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// Add returns d shifted by the given number of days.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// AddMonths returns d shifted by the given number of calendar months.
func (d Date) AddMonths(months int) Date { return New(d.y, d.m+time.Month(months), d.d) }

// Sub returns the number of days from x to d.
func (d Date) Sub(x Date) int { return int(d.time().Sub(x.time()) / (24 * time.Hour)) }

// String formats the date in its canonical format.
func (d Date) String() string { return d.time().Format(Format) }

// Layout formats the date with an arbitrary time layout.
func (d Date) Layout(layout string) string { return d.time().Format(layout) }

// Parse parses a Date. It is lenient and accepts forms like "2025-7-1".
func Parse(str string) (Date, error) {
	t, err := time.Parse(readFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. For tests and literals.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
