// Package repository persists booking records in Postgres.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"utrippin_backend/platform/apperr"
)

// BookingRecord is one stored reservation. OrderID is the provider's key and
// the only handle later status and cancellation calls have.
type BookingRecord struct {
	OrderID            string
	PartnerOrderID     string
	HotelID            string
	GuestEmail         string
	GuestPhone         string
	TotalAmount        float64
	Currency           string
	CheckIn            string
	CheckOut           string
	PaymentStatus      string
	CancellationStatus string
	RefundedAmount     *float64
	Simulated          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Repository stores bookings in the bookings table.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a booking. A replayed partner order id upserts onto the
// existing row instead of failing.
func (r *Repository) Create(ctx context.Context, rec BookingRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO bookings (
			order_id, partner_order_id, hotel_id, guest_email, guest_phone,
			total_amount, currency, check_in, check_out,
			payment_status, cancellation_status, simulated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (partner_order_id) DO UPDATE SET
			order_id = EXCLUDED.order_id,
			payment_status = EXCLUDED.payment_status,
			updated_at = now()`,
		rec.OrderID, rec.PartnerOrderID, rec.HotelID, rec.GuestEmail, rec.GuestPhone,
		rec.TotalAmount, rec.Currency, rec.CheckIn, rec.CheckOut,
		rec.PaymentStatus, rec.CancellationStatus, rec.Simulated,
	)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "store booking", err)
	}
	return nil
}

// GetByOrderID fetches one booking.
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*BookingRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT order_id, partner_order_id, hotel_id, guest_email, guest_phone,
		       total_amount, currency, check_in, check_out,
		       payment_status, cancellation_status, refunded_amount, simulated,
		       created_at, updated_at
		FROM bookings
		WHERE order_id = $1`, orderID)

	var rec BookingRecord
	err := row.Scan(
		&rec.OrderID, &rec.PartnerOrderID, &rec.HotelID, &rec.GuestEmail, &rec.GuestPhone,
		&rec.TotalAmount, &rec.Currency, &rec.CheckIn, &rec.CheckOut,
		&rec.PaymentStatus, &rec.CancellationStatus, &rec.RefundedAmount, &rec.Simulated,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("booking")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "load booking", err)
	}
	return &rec, nil
}

// UpdateStatus refreshes the payment and cancellation state from a provider
// snapshot.
func (r *Repository) UpdateStatus(ctx context.Context, orderID, paymentStatus, cancellationStatus string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE bookings
		SET payment_status = $2, cancellation_status = $3, updated_at = now()
		WHERE order_id = $1`,
		orderID, paymentStatus, cancellationStatus)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "update booking status", err)
	}
	return nil
}

// MarkCancelled records a completed cancellation and its refund.
func (r *Repository) MarkCancelled(ctx context.Context, orderID string, refunded float64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE bookings
		SET cancellation_status = 'cancelled', refunded_amount = $2, updated_at = now()
		WHERE order_id = $1`,
		orderID, refunded)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "mark booking cancelled", err)
	}
	return nil
}
