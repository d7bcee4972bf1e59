package stub

import (
	"fmt"
	"time"

	"github.com/findly/findly-go/internal/core/domain"
)

// slotIntervalMins is the grid step between slot start times.
const slotIntervalMins = 30

// minutesOf parses an HH:mm wall-clock string into minutes since midnight.
func minutesOf(hhmm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return h*60 + m, nil
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// generateSlots lays a 30-minute grid of duration-length slots over the
// day's working hours. A slot is unavailable when it overlaps the break,
// lies in the past (today only), or conflicts with a blocking booking.
func generateSlots(wh *domain.WorkingHours, durationMins int, existing []*domain.Booking, date string, now time.Time) ([]domain.Slot, error) {
	open, err := minutesOf(wh.StartTime)
	if err != nil {
		return nil, err
	}
	closeAt, err := minutesOf(wh.EndTime)
	if err != nil {
		return nil, err
	}

	breakStart, breakEnd := -1, -1
	if wh.BreakStart != "" && wh.BreakEnd != "" {
		if breakStart, err = minutesOf(wh.BreakStart); err != nil {
			return nil, err
		}
		if breakEnd, err = minutesOf(wh.BreakEnd); err != nil {
			return nil, err
		}
	}

	isToday := date == now.Format("2006-01-02")
	nowMins := now.Hour()*60 + now.Minute()

	var slots []domain.Slot
	for start := open; start+durationMins <= closeAt; start += slotIntervalMins {
		end := start + durationMins

		inBreak := breakStart >= 0 && start < breakEnd && end > breakStart
		inPast := isToday && start < nowMins
		conflict := hasConflict(start, end, existing)

		slots = append(slots, domain.Slot{
			StartTime: formatMinutes(start),
			EndTime:   formatMinutes(end),
			Available: !inBreak && !inPast && !conflict,
		})
	}
	return slots, nil
}

func hasConflict(start, end int, existing []*domain.Booking) bool {
	for _, b := range existing {
		bStart, err1 := minutesOf(b.StartTime)
		bEnd, err2 := minutesOf(b.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if start < bEnd && end > bStart {
			return true
		}
	}
	return false
}
