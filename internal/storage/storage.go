package storage

import (
	"errors"

	"tablebooker/internal/models"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrAlreadyPaid     = errors.New("booking is already paid")
	ErrManualNotFound  = errors.New("manual item not found")
)

// CommitStatus reports how a conditional slot commit resolved.
type CommitStatus int

const (
	// Committed means this caller's slot was written.
	Committed CommitStatus = iota
	// AlreadySatisfied means a concurrent confirmation already marked the
	// booking paid; Slot carries the interval that actually won.
	AlreadySatisfied
	// Conflict means the paid set of the resource type changed under the
	// proposed slot (or the transaction was aborted by the store) and the
	// caller must re-allocate before trying again.
	Conflict
)

// CommitResult is the outcome of Storage.CommitPaidSlot.
type CommitResult struct {
	Status CommitStatus
	Slot   models.Slot
}
