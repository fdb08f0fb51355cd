package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tablebooker/internal/config"
	"tablebooker/internal/models"
	"tablebooker/internal/storage"

	"github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) CreateBooking(b *models.Booking) error {
	query := `
		INSERT INTO bookings (id, owner_id, resource_type, head_count, amount_yen, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	_, err := s.DB.Exec(query,
		b.ID,
		b.OwnerID,
		b.ResourceType,
		b.HeadCount,
		b.AmountYen,
		models.PaymentStatusUnpaid,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (s *Storage) GetBooking(id string) (*models.Booking, error) {
	query := `
		SELECT id, owner_id, resource_type, head_count, amount_yen, payment_status,
		       COALESCE(payment_reference, ''), start_at, end_at, paid_at, created_at
		FROM bookings
		WHERE id = $1`

	var b models.Booking
	var startAt, endAt, paidAt sql.NullTime

	err := s.DB.QueryRow(query, id).Scan(
		&b.ID,
		&b.OwnerID,
		&b.ResourceType,
		&b.HeadCount,
		&b.AmountYen,
		&b.PaymentStatus,
		&b.PaymentReference,
		&startAt,
		&endAt,
		&paidAt,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if startAt.Valid {
		b.StartAt = &startAt.Time
	}
	if endAt.Valid {
		b.EndAt = &endAt.Time
	}
	if paidAt.Valid {
		b.PaidAt = &paidAt.Time
	}

	return &b, nil
}

// SetPaymentReference binds the gateway-side payment id to the booking.
// Only an unpaid booking may be rebound; a paid one is settled history.
func (s *Storage) SetPaymentReference(id, reference string) error {
	query := `
		UPDATE bookings
		SET payment_reference = $2
		WHERE id = $1 AND payment_status = $3`

	result, err := s.DB.Exec(query, id, reference, models.PaymentStatusUnpaid)
	if err != nil {
		return fmt.Errorf("failed to set payment reference: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set payment reference: %w", err)
	}

	if affected == 0 {
		existing, err := s.GetBooking(id)
		if err != nil {
			return err
		}
		if existing.PaymentStatus == models.PaymentStatusPaid {
			return storage.ErrAlreadyPaid
		}
		return storage.ErrBookingNotFound
	}

	return nil
}

// LatestPaidEnd returns the latest end_at among paid bookings of the resource
// type, or nil when none exist. This is the allocator's snapshot read; the
// commit re-reads the same value inside its own transaction.
func (s *Storage) LatestPaidEnd(resourceType string) (*time.Time, error) {
	query := `
		SELECT MAX(end_at)
		FROM bookings
		WHERE resource_type = $1 AND payment_status = $2`

	var latest sql.NullTime
	err := s.DB.QueryRow(query, resourceType, models.PaymentStatusPaid).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest paid end: %w", err)
	}

	if !latest.Valid {
		return nil, nil
	}

	return &latest.Time, nil
}

// CommitPaidSlot marks the booking paid with the proposed slot, inside a
// single serializable transaction that re-checks both the booking's payment
// status and the latest paid end_at of the resource type. Two concurrent
// commits against the same resource type are serialized by Postgres: one of
// them either sees the other's end_at (Conflict) or aborts with a
// serialization failure, which is also reported as Conflict so the caller can
// re-allocate and retry.
func (s *Storage) CommitPaidSlot(bookingID, resourceType string, slot models.Slot, paidAt time.Time) (storage.CommitResult, error) {
	tx, err := s.DB.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return storage.CommitResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lockQuery := `
		SELECT payment_status, start_at, end_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE`

	var status models.PaymentStatus
	var startAt, endAt sql.NullTime

	err = tx.QueryRow(lockQuery, bookingID).Scan(&status, &startAt, &endAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CommitResult{}, storage.ErrBookingNotFound
		}
		if isSerializationFailure(err) {
			return storage.CommitResult{Status: storage.Conflict}, nil
		}
		return storage.CommitResult{}, fmt.Errorf("failed to lock booking: %w", err)
	}

	if status == models.PaymentStatusPaid {
		// Another confirmation won the race; report the slot that stuck.
		result := storage.CommitResult{Status: storage.AlreadySatisfied}
		if startAt.Valid && endAt.Valid {
			result.Slot = models.Slot{StartAt: startAt.Time, EndAt: endAt.Time}
		}
		return result, nil
	}

	latestQuery := `
		SELECT MAX(end_at)
		FROM bookings
		WHERE resource_type = $1 AND payment_status = $2`

	var latest sql.NullTime
	err = tx.QueryRow(latestQuery, resourceType, models.PaymentStatusPaid).Scan(&latest)
	if err != nil {
		if isSerializationFailure(err) {
			return storage.CommitResult{Status: storage.Conflict}, nil
		}
		return storage.CommitResult{}, fmt.Errorf("failed to re-read latest paid end: %w", err)
	}

	if latest.Valid && latest.Time.After(slot.StartAt) {
		// The schedule moved under the proposed slot.
		return storage.CommitResult{Status: storage.Conflict}, nil
	}

	updateQuery := `
		UPDATE bookings
		SET payment_status = $2, paid_at = $3, start_at = $4, end_at = $5
		WHERE id = $1 AND payment_status = $6`

	result, err := tx.Exec(updateQuery,
		bookingID,
		models.PaymentStatusPaid,
		paidAt,
		slot.StartAt,
		slot.EndAt,
		models.PaymentStatusUnpaid,
	)
	if err != nil {
		if isSerializationFailure(err) {
			return storage.CommitResult{Status: storage.Conflict}, nil
		}
		return storage.CommitResult{}, fmt.Errorf("failed to commit paid slot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storage.CommitResult{}, fmt.Errorf("failed to commit paid slot: %w", err)
	}

	if affected == 0 {
		return storage.CommitResult{Status: storage.Conflict}, nil
	}

	if err = tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return storage.CommitResult{Status: storage.Conflict}, nil
		}
		return storage.CommitResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return storage.CommitResult{Status: storage.Committed, Slot: slot}, nil
}

func (s *Storage) ListPaidBookings(resourceType string) ([]models.Booking, error) {
	query := `
		SELECT id, owner_id, resource_type, head_count, amount_yen, payment_status,
		       COALESCE(payment_reference, ''), start_at, end_at, paid_at, created_at
		FROM bookings
		WHERE resource_type = $1 AND payment_status = $2
		ORDER BY start_at ASC`

	rows, err := s.DB.Query(query, resourceType, models.PaymentStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		var startAt, endAt, paidAt sql.NullTime

		err = rows.Scan(
			&b.ID,
			&b.OwnerID,
			&b.ResourceType,
			&b.HeadCount,
			&b.AmountYen,
			&b.PaymentStatus,
			&b.PaymentReference,
			&startAt,
			&endAt,
			&paidAt,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		if startAt.Valid {
			b.StartAt = &startAt.Time
		}
		if endAt.Valid {
			b.EndAt = &endAt.Time
		}
		if paidAt.Valid {
			b.PaidAt = &paidAt.Time
		}

		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

func (s *Storage) FindManualAnswer(keyword string) (*models.ManualItem, error) {
	query := `
		SELECT id, category, answer, tags, is_public
		FROM manual_items
		WHERE is_public = true AND $1 = ANY(tags)
		LIMIT 1`

	var item models.ManualItem
	err := s.DB.QueryRow(query, keyword).Scan(
		&item.ID,
		&item.Category,
		&item.Answer,
		pq.Array(&item.Tags),
		&item.IsPublic,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrManualNotFound
		}
		return nil, fmt.Errorf("failed to find manual answer: %w", err)
	}

	return &item, nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}
