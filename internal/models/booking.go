package models

import "time"

const (
	// SlotDuration is the fixed length of one paid table reservation.
	SlotDuration = 30 * time.Minute

	// PricePerHeadYen is the flat per-person rate charged for a slot.
	PricePerHeadYen = 700

	// ResourceTypeBeerpong is the one table type this deployment schedules.
	ResourceTypeBeerpong = "beerpong"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Booking struct {
	ID               string        `json:"id"`
	OwnerID          string        `json:"owner_id"`
	ResourceType     string        `json:"resource_type"`
	HeadCount        int           `json:"head_count"`
	AmountYen        int64         `json:"amount_yen"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	StartAt          *time.Time    `json:"start_at,omitempty"`
	EndAt            *time.Time    `json:"end_at,omitempty"`
	PaidAt           *time.Time    `json:"paid_at,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

// Slot is the half-open interval [StartAt, EndAt) reserved by a paid booking.
type Slot struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// AmountYenFor computes the charge for a party of the given size.
func AmountYenFor(headCount int) int64 {
	return int64(headCount) * PricePerHeadYen
}
