package booking

import (
	"time"

	"tablebooker/internal/models"
)

// NextSlot computes the next table slot given the latest end among paid
// bookings of the resource type (nil when none exist) and the current time.
// Paid slots are packed back to back: a new slot starts where the latest one
// ends, unless the table is already idle, in which case it starts now.
func NextSlot(latestEnd *time.Time, now time.Time) models.Slot {
	startAt := now
	if latestEnd != nil && latestEnd.After(now) {
		startAt = *latestEnd
	}

	return models.Slot{
		StartAt: startAt,
		EndAt:   startAt.Add(models.SlotDuration),
	}
}
