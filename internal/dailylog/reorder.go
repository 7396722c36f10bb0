// internal/dailylog/reorder.go
package dailylog

import "fmt"

// Reorder converts slots read in ascending device address order into
// chronological order (oldest first).
//
// Sentinel slots are dropped first; the remaining slots keep their physical
// order. The ring has wrapped where the hour meter steps backwards, and the
// output starts right after that point. The input is not modified.
func Reorder(slots []Slot) ([]Slot, error) {
	valid := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.IsSentinel() {
			continue
		}
		valid = append(valid, s)
	}

	wrap := -1
	for i := 0; i+1 < len(valid); i++ {
		if valid[i].HourMeter <= valid[i+1].HourMeter {
			continue
		}
		if wrap >= 0 {
			return nil, fmt.Errorf(
				"%w: hour meter descends at positions %d and %d",
				ErrInvariantViolation, wrap, i,
			)
		}
		wrap = i
	}

	if wrap < 0 {
		return valid, nil
	}

	// One wrap point in a linear scan still hides a second one if the
	// newest physical slot is later than the oldest.
	if valid[len(valid)-1].HourMeter > valid[0].HourMeter {
		return nil, fmt.Errorf(
			"%w: hour meter %d at ring end exceeds %d at ring start",
			ErrInvariantViolation, valid[len(valid)-1].HourMeter, valid[0].HourMeter,
		)
	}

	out := make([]Slot, 0, len(valid))
	out = append(out, valid[wrap+1:]...)
	out = append(out, valid[:wrap+1]...)
	return out, nil
}
