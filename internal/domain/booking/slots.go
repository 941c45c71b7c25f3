package booking

import (
	"time"
)

// GenerateSlots returns start times in [start, end) stepped by interval.
func GenerateSlots(start, end time.Time, interval time.Duration) []time.Time {
	if interval <= 0 {
		interval = DefaultSlotInterval
	}
	if !end.After(start) {
		return nil
	}

	var out []time.Time
	for t := start; t.Before(end); t = t.Add(interval) {
		out = append(out, t)
	}
	return out
}

// FindShift returns the first shift that fully contains candidate.
func FindShift(shifts []Interval, candidate Interval) (Interval, bool) {
	for _, s := range shifts {
		if s.Contains(candidate) {
			return s, true
		}
	}
	return Interval{}, false
}

// DetectConflict checks breaks first, then booked intervals.
func DetectConflict(candidate Interval, breaks, booked []Interval) (Reason, bool) {
	if overlapsAny(candidate, breaks) {
		return ReasonBreak, true
	}
	if overlapsAny(candidate, booked) {
		return ReasonBooked, true
	}
	return "", false
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// ResourceUsage is the business-wide occupation of one resource tag.
type ResourceUsage struct {
	Capacity int
	Busy     []Interval
}

func (u ResourceUsage) Available(candidate Interval) bool {
	capacity := u.Capacity
	if capacity <= 0 {
		capacity = 1
	}
	used := 0
	for _, b := range u.Busy {
		if candidate.Overlaps(b) {
			used++
		}
	}
	return used < capacity
}

// DayPlan is everything known about one staff member on one date.
type DayPlan struct {
	Shifts   []Interval
	Breaks   []Interval
	Booked   []Interval
	Resource *ResourceUsage
}

// Evaluate tags a single candidate start for the given duration.
func (p DayPlan) Evaluate(start time.Time, d time.Duration) TimeSlot {
	slot := TimeSlot{
		Time:  start.Format(ClockLayout),
		Start: start,
	}
	candidate := Interval{Start: start, End: start.Add(d)}

	if _, ok := FindShift(p.Shifts, candidate); !ok {
		slot.Reason = ReasonShiftUnavailable
		return slot
	}
	if reason, conflict := DetectConflict(candidate, p.Breaks, p.Booked); conflict {
		slot.Reason = reason
		return slot
	}
	if p.Resource != nil && !p.Resource.Available(candidate) {
		slot.Reason = ReasonResourceUnavailable
		return slot
	}

	slot.Available = true
	return slot
}

func (p DayPlan) Slots(grid []time.Time, d time.Duration) []TimeSlot {
	out := make([]TimeSlot, 0, len(grid))
	for _, start := range grid {
		out = append(out, p.Evaluate(start, d))
	}
	return out
}

// MergeAnyStaff combines per-staff slot lists on the same grid: a start is
// available if any staff member has it. Unavailable starts keep the first
// staff member's reason.
func MergeAnyStaff(perStaff [][]TimeSlot) []TimeSlot {
	if len(perStaff) == 0 {
		return []TimeSlot{}
	}
	out := make([]TimeSlot, len(perStaff[0]))
	copy(out, perStaff[0])
	for _, slots := range perStaff[1:] {
		for i := range out {
			if i < len(slots) && !out[i].Available && slots[i].Available {
				out[i] = slots[i]
			}
		}
	}
	return out
}
