package date

import (
	"fmt"
	"iter"
	"strings"
)

// Range represents an inclusive range of days.
type Range struct{ From, To Date }

// Between returns the range [from, to]. Reversed bounds are swapped.
func Between(from, to Date) Range {
	if to.Before(from) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// LastMonths returns the trailing n calendar months ending today.
func LastMonths(n int, today Date) Range {
	return Range{From: today.AddMonths(-n), To: today}
}

// YearToDate returns January 1st of today's year through today.
func YearToDate(today Date) Range {
	return Range{From: New(today.Year(), 1, 1), To: today}
}

// TrailingYear returns the trailing twelve months ending today.
func TrailingYear(today Date) Range {
	return Range{From: today.AddMonths(-12), To: today}
}

// AllTime returns the range from the first recorded activity through today.
// A zero first date yields the single day range [today, today].
func AllTime(first, today Date) Range {
	if first.IsZero() || first.After(today) {
		return Range{From: today, To: today}
	}
	return Range{From: first, To: today}
}

// Contains reports whether day is within the range, boundaries included.
func (r Range) Contains(day Date) bool { return !day.Before(r.From) && !day.After(r.To) }

// Days returns the number of days in the range, boundaries included.
func (r Range) Days() int { return r.To.Sub(r.From) + 1 }

// Each returns an iterator over every calendar day in the range, in order.
func (r Range) Each() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// ParseSelector resolves one of the period selectors used across the views:
// "1m", "3m", "6m", "ytd", "1y", "all", or an explicit "FROM:TO" pair of
// dates. The first date of the transaction log anchors "all".
func ParseSelector(s string, first, today Date) (Range, error) {
	switch strings.ToLower(s) {
	case "1m":
		return LastMonths(1, today), nil
	case "3m":
		return LastMonths(3, today), nil
	case "6m":
		return LastMonths(6, today), nil
	case "ytd":
		return YearToDate(today), nil
	case "1y":
		return TrailingYear(today), nil
	case "all":
		return AllTime(first, today), nil
	}
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return Range{}, fmt.Errorf("unknown range selector %q", s)
	}
	f, err := Parse(from)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range start: %w", err)
	}
	t, err := Parse(to)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range end: %w", err)
	}
	return Between(f, t), nil
}
