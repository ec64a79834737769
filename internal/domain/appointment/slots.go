package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// SlotStep is the distance between consecutive candidate slot starts.
const SlotStep = 30 * time.Minute

// Window is the opening interval for one day; nil means closed.
type Window = Interval

// GenerateSlots enumerates [t, t+duration) from the window start, advancing by
// step, and drops every candidate overlapping a booked interval. Slots are
// returned in chronological order and never leave the window.
func GenerateSlots(
	window *Window,
	duration time.Duration,
	step time.Duration,
	booked []Interval,
) []TimeSlot {

	slots := []TimeSlot{}

	if window == nil {
		return slots
	}

	dur := Clock(duration / time.Minute)
	inc := Clock(step / time.Minute)
	if dur <= 0 || inc <= 0 {
		return slots
	}

	for cur := window.Start; cur+dur <= window.End; cur += inc {
		candidate := Interval{Start: cur, End: cur + dur}

		conflict := false
		for _, b := range booked {
			if candidate.Overlaps(b) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		slots = append(slots, TimeSlot{
			StartTime: candidate.Start.String(),
			EndTime:   candidate.End.String(),
			Label:     fmt.Sprintf("%s - %s", candidate.Start, candidate.End),
		})
	}

	return slots
}

// WindowFrom converts a stored availability row; a nil row is a closed day.
func WindowFrom(av *models.Availability) (*Window, error) {
	if av == nil {
		return nil, nil
	}

	start, err := ParseClock(av.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(av.EndTime)
	if err != nil {
		return nil, err
	}

	return &Window{Start: start, End: end}, nil
}

// BookedIntervals converts the day's appointments into intervals.
func BookedIntervals(aps []models.Appointment) ([]Interval, error) {
	out := make([]Interval, 0, len(aps))
	for _, ap := range aps {
		if !Status(ap.Status).BlocksSlot() {
			continue
		}
		start, err := ParseClock(ap.StartTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %s: %w", ap.ID, err)
		}
		end, err := ParseClock(ap.EndTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %s: %w", ap.ID, err)
		}
		out = append(out, Interval{Start: start, End: end})
	}
	return out, nil
}
