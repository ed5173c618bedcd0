package schedule

import "sort"

type span struct {
	start int
	end   int
}

// DayOccupancy tracks the claimed minute ranges of each active day as a
// sorted list of disjoint spans. It belongs to exactly one in-progress
// assignment attempt and must never be shared across attempts.
type DayOccupancy struct {
	days map[Weekday][]span
}

// NewDayOccupancy builds an empty occupancy over the given active days. Days
// outside the set are ignored by every operation.
func NewDayOccupancy(days []Weekday) *DayOccupancy {
	occupancy := &DayOccupancy{days: make(map[Weekday][]span, len(days))}
	for _, day := range days {
		occupancy.days[day] = nil
	}
	return occupancy
}

// Active reports whether day belongs to the occupancy's active set.
func (occupancy *DayOccupancy) Active(day Weekday) bool {
	_, ok := occupancy.days[day]
	return ok
}

// IsFree reports whether no previously marked range overlaps [start, end) on
// day. Inactive days are always free.
func (occupancy *DayOccupancy) IsFree(day Weekday, start, end int) bool {
	spans := occupancy.days[day]
	// First span that ends after start; only it can collide.
	i := sort.Search(len(spans), func(k int) bool { return spans[k].end > start })
	return i == len(spans) || spans[i].start >= end
}

// Mark unions [start, end) into day's occupied set, merging touching spans so
// the list stays disjoint and sorted. Marking an inactive day is a no-op.
func (occupancy *DayOccupancy) Mark(day Weekday, start, end int) {
	spans, ok := occupancy.days[day]
	if !ok {
		return
	}

	i := sort.Search(len(spans), func(k int) bool { return spans[k].end >= start })
	j := i
	merged := span{start: start, end: end}
	for j < len(spans) && spans[j].start <= end {
		if spans[j].start < merged.start {
			merged.start = spans[j].start
		}
		if spans[j].end > merged.end {
			merged.end = spans[j].end
		}
		j++
	}

	next := make([]span, 0, len(spans)-(j-i)+1)
	next = append(next, spans[:i]...)
	next = append(next, merged)
	next = append(next, spans[j:]...)
	occupancy.days[day] = next
}

// Place attempts to add a candidate section. Both intervals are checked
// before either is marked, so a rejected section leaves the occupancy
// untouched. Intervals falling on inactive days are dropped silently.
func (occupancy *DayOccupancy) Place(section Section) bool {
	for _, interval := range section.Intervals() {
		if !occupancy.Active(interval.Day) {
			continue
		}
		if !occupancy.IsFree(interval.Day, interval.Start, interval.End) {
			return false
		}
	}

	for _, interval := range section.Intervals() {
		occupancy.Mark(interval.Day, interval.Start, interval.End)
	}
	return true
}
