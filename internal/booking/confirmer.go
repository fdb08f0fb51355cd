package booking

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tablebooker/internal/models"
	"tablebooker/internal/storage"
)

var (
	ErrForbidden                 = errors.New("booking belongs to another user")
	ErrPaymentIncomplete         = errors.New("payment is not completed")
	ErrPaymentMismatch           = errors.New("payment does not match booking")
	ErrConcurrentUpdateExhausted = errors.New("too many concurrent confirmation conflicts")
)

// maxCommitAttempts bounds the allocate/commit retry loop when concurrent
// confirmations of the same resource type keep invalidating the proposed slot.
const maxCommitAttempts = 3

// VerifiedPayment is what the gateway reports about a payment reference.
// Succeeded is set only when the gateway's own terminal-success state was
// observed; Status carries the raw gateway value for logging.
type VerifiedPayment struct {
	Status         string
	Succeeded      bool
	BoundBookingID string
	AmountYen      int64
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentVerifier
type PaymentVerifier interface {
	Verify(reference string) (*VerifiedPayment, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingStore
type BookingStore interface {
	GetBooking(id string) (*models.Booking, error)
	LatestPaidEnd(resourceType string) (*time.Time, error)
	CommitPaidSlot(bookingID, resourceType string, slot models.Slot, paidAt time.Time) (storage.CommitResult, error)
}

// Confirmer drives a payment confirmation from the inbound request to the
// committed slot: ownership check, gateway verification, slot allocation and
// the conditional commit.
type Confirmer struct {
	log      *slog.Logger
	store    BookingStore
	verifier PaymentVerifier
	now      func() time.Time
}

func NewConfirmer(log *slog.Logger, store BookingStore, verifier PaymentVerifier) *Confirmer {
	return &Confirmer{
		log:      log,
		store:    store,
		verifier: verifier,
		now:      time.Now,
	}
}

// Confirm marks the booking paid and assigns it a slot. Confirming an
// already-paid booking is a success with no further side effects, so clients
// may safely retry.
func (c *Confirmer) Confirm(principalID, bookingID, reference string) error {
	b, err := c.store.GetBooking(bookingID)
	if err != nil {
		return fmt.Errorf("get booking: %w", err)
	}

	if b.OwnerID != principalID {
		return ErrForbidden
	}

	if b.PaymentStatus == models.PaymentStatusPaid {
		c.log.Info("booking already paid, skipping confirmation",
			slog.String("booking_id", bookingID),
		)
		return nil
	}

	if b.PaymentReference == "" || b.PaymentReference != reference {
		return ErrPaymentMismatch
	}

	payment, err := c.verifier.Verify(reference)
	if err != nil {
		return fmt.Errorf("verify payment: %w", err)
	}

	if payment.BoundBookingID != bookingID {
		return ErrPaymentMismatch
	}

	if !payment.Succeeded {
		c.log.Info("payment not completed yet",
			slog.String("booking_id", bookingID),
			slog.String("gateway_status", payment.Status),
		)
		return ErrPaymentIncomplete
	}

	if payment.AmountYen != b.AmountYen {
		return ErrPaymentMismatch
	}

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		now := c.now()

		latestEnd, err := c.store.LatestPaidEnd(b.ResourceType)
		if err != nil {
			return fmt.Errorf("read latest paid end: %w", err)
		}

		slot := NextSlot(latestEnd, now)

		result, err := c.store.CommitPaidSlot(bookingID, b.ResourceType, slot, now)
		if err != nil {
			return fmt.Errorf("commit paid slot: %w", err)
		}

		switch result.Status {
		case storage.Committed:
			c.log.Info("payment confirmed",
				slog.String("booking_id", bookingID),
				slog.Time("start_at", result.Slot.StartAt),
				slog.Time("end_at", result.Slot.EndAt),
			)
			return nil
		case storage.AlreadySatisfied:
			c.log.Info("booking confirmed by a concurrent request",
				slog.String("booking_id", bookingID),
			)
			return nil
		case storage.Conflict:
			c.log.Info("slot conflict, re-allocating",
				slog.String("booking_id", bookingID),
				slog.Int("attempt", attempt),
			)
		}
	}

	return ErrConcurrentUpdateExhausted
}
