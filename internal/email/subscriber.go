package email

import (
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"utrippin_backend/internal/events"
	"utrippin_backend/platform/logger"
)

// Subscriber listens for booking lifecycle events and mails the guest.
type Subscriber struct {
	sender Sender
	log    *logger.Logger
}

func NewSubscriber(sender Sender, log *logger.Logger) *Subscriber {
	return &Subscriber{sender: sender, log: log}
}

// Register subscribes the mail handlers on the event bus.
func (s *Subscriber) Register(bus events.Bus) {
	bus.Subscribe(events.BookingCreated{}.EventName(), events.HandlerFunc(s.onBookingCreated))
	bus.Subscribe(events.BookingCancelled{}.EventName(), events.HandlerFunc(s.onBookingCancelled))
}

func (s *Subscriber) onBookingCreated(ctx context.Context, evt events.Event) error {
	created, ok := evt.(events.BookingCreated)
	if !ok {
		return nil
	}
	if created.GuestEmail == "" {
		return nil
	}

	attachments, err := checkInQRCode(created.OrderID)
	if err != nil {
		s.log.Warn("qr code generation failed", "order_id", created.OrderID, "error", err)
	}

	data := BookingConfirmation{
		GuestName:          created.GuestName,
		HotelName:          created.HotelID,
		OrderID:            created.OrderID,
		ConfirmationNumber: created.PartnerOrderID,
		CheckIn:            created.CheckIn,
		CheckOut:           created.CheckOut,
		TotalFormatted:     formatAmount(created.TotalAmount, created.Currency),
		Simulated:          created.Simulated,
	}
	if err := s.sender.SendBookingConfirmationEmail(ctx, created.GuestEmail, data, attachments...); err != nil {
		s.log.Error("booking confirmation email failed", "order_id", created.OrderID, "error", err)
		return err
	}
	return nil
}

func (s *Subscriber) onBookingCancelled(ctx context.Context, evt events.Event) error {
	cancelled, ok := evt.(events.BookingCancelled)
	if !ok {
		return nil
	}
	if cancelled.GuestEmail == "" {
		s.log.Info("booking cancelled, no guest on record to mail", "order_id", cancelled.OrderID)
		return nil
	}

	refund := formatAmount(cancelled.RefundedAmount, cancelled.Currency)
	if err := s.sender.SendBookingCancelledEmail(ctx, cancelled.GuestEmail, cancelled.OrderID, refund); err != nil {
		s.log.Error("booking cancelled email failed", "order_id", cancelled.OrderID, "error", err)
		return err
	}
	return nil
}

// checkInQRCode encodes the order id into a PNG the guest can show at the
// front desk.
func checkInQRCode(orderID string) ([]Attachment, error) {
	png, err := qrcode.Encode(orderID, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}
	return []Attachment{{
		Content:  png,
		FileName: fmt.Sprintf("checkin-%s.png", orderID),
		MIMEType: "image/png",
	}}, nil
}
