package schedule

import (
	"errors"
	"time"
)

// ErrNoDays is returned when asked to spread items over zero or fewer days.
var ErrNoDays = errors.New("schedule: days must be >= 1")

// Day is one calendar day of the plan. Compressed and Labeled are filled in
// after partitioning.
type Day struct {
	Date       time.Time
	Chapters   []string
	Compressed string
	Labeled    string
}

// Plan is a gapless run of days starting at Start.
type Plan struct {
	Start time.Time
	Days  []Day
}

// Sizes returns how many items each of days slots receives: len/days each,
// with the first len%days slots taking one extra.
func Sizes(total, days int) ([]int, error) {
	if days <= 0 {
		return nil, ErrNoDays
	}
	base, extra := total/days, total%days
	sizes := make([]int, days)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes, nil
}

// Partition splits items into exactly days contiguous slices, preserving
// order. Slices share the backing array of items.
func Partition(items []string, days int) ([][]string, error) {
	sizes, err := Sizes(len(items), days)
	if err != nil {
		return nil, err
	}
	out := make([][]string, days)
	idx := 0
	for i, n := range sizes {
		out[i] = items[idx : idx+n : idx+n]
		idx += n
	}
	return out, nil
}

// Build partitions items over days consecutive dates beginning at start.
// Every calendar date is used; there is no weekend or holiday skipping.
func Build(start time.Time, items []string, days int) (Plan, error) {
	slices, err := Partition(items, days)
	if err != nil {
		return Plan{}, err
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	p := Plan{Start: start, Days: make([]Day, days)}
	for i, s := range slices {
		p.Days[i] = Day{Date: start.AddDate(0, 0, i), Chapters: s}
	}
	return p, nil
}
