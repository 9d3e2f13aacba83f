package availability

import (
	"fmt"
	"sort"

	"reparaya/models"
)

// Interval is a half-open [Start, End) range expressed in minutes from
// midnight of a single local calendar day. All interval algebra in this
// package operates on this normalized form; the "HH:mm" strings of
// models.TimeInterval are converted at the boundary.
type Interval struct {
	Start int
	End   int
}

// ParseClock converts an "HH:mm" string into minutes from midnight. All four
// positions must be digits; "08:3a" is rejected, not read as 08:03.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time %q: expected HH:mm", s)
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	if hh > 23 || mm > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return hh*60 + mm, nil
}

// FormatClock renders minutes from midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseInterval converts a models.TimeInterval into minutes form, rejecting
// zero-length and inverted ranges.
func ParseInterval(iv models.TimeInterval) (Interval, error) {
	start, err := ParseClock(iv.StartTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(iv.EndTime)
	if err != nil {
		return Interval{}, err
	}
	if start >= end {
		return Interval{}, fmt.Errorf("invalid interval %s-%s: start must be before end", iv.StartTime, iv.EndTime)
	}
	return Interval{Start: start, End: end}, nil
}

// ParseIntervals converts a list of models.TimeInterval, failing on the first
// malformed entry.
func ParseIntervals(ivs []models.TimeInterval) ([]Interval, error) {
	out := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		parsed, err := ParseInterval(iv)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

// ToTimeInterval renders an Interval back into "HH:mm" form.
func (iv Interval) ToTimeInterval() models.TimeInterval {
	return models.TimeInterval{StartTime: FormatClock(iv.Start), EndTime: FormatClock(iv.End)}
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// Overlaps reports whether a and b share any time. Half-open semantics:
// intervals that merely touch (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Subtract removes cut from base and returns the 0, 1 or 2 remaining pieces.
// A cut that misses base entirely leaves base untouched.
func Subtract(base, cut Interval) []Interval {
	if !Overlaps(base, cut) {
		return []Interval{base}
	}
	var out []Interval
	if cut.Start > base.Start {
		out = append(out, Interval{Start: base.Start, End: cut.Start})
	}
	if cut.End < base.End {
		out = append(out, Interval{Start: cut.End, End: base.End})
	}
	return out
}

// SubtractAll folds Subtract over every interval in base against every cut.
// Cuts on the same calendar day commute under this algebra, so order does
// not matter.
func SubtractAll(base []Interval, cuts []Interval) []Interval {
	remaining := base
	for _, cut := range cuts {
		var updated []Interval
		for _, iv := range remaining {
			updated = append(updated, Subtract(iv, cut)...)
		}
		remaining = updated
	}
	return remaining
}

// MergeIntervals produces a minimal ascending-sorted, non-overlapping cover
// of the input. Touching intervals (end == next start) are merged, unlike
// Overlaps which treats them as disjoint.
func MergeIntervals(list []Interval) []Interval {
	if len(list) == 0 {
		return nil
	}
	sorted := make([]Interval, len(list))
	copy(sorted, list)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// sortIntervals orders intervals by ascending start time in place.
func sortIntervals(list []Interval) {
	sort.Slice(list, func(i, j int) bool { return list[i].Start < list[j].Start })
}
