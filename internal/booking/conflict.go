package booking

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant. Intervals that merely touch at a
// boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Slot is the minimal view of a persisted reservation needed for conflict
// checks.
type Slot struct {
	ID    string
	Start time.Time
	End   time.Time
}

// FirstConflict returns the first slot conflicting with the candidate
// interval, skipping the slot identified by excludeID. The second return
// value reports whether a conflict was found.
func FirstConflict(existing []Slot, start, end time.Time, excludeID string) (Slot, bool) {
	for _, slot := range existing {
		if excludeID != "" && slot.ID == excludeID {
			continue
		}
		if Overlaps(slot.Start, slot.End, start, end) {
			return slot, true
		}
	}
	return Slot{}, false
}
