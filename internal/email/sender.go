// Package email delivers transactional mail for the booking lifecycle.
package email

import "context"

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte
	FileName string
	MIMEType string
}

// BookingConfirmation is the data rendered into the confirmation mail.
type BookingConfirmation struct {
	GuestName          string
	HotelName          string
	OrderID            string
	ConfirmationNumber string
	CheckIn            string
	CheckOut           string
	TotalFormatted     string
	Simulated          bool
}

type Sender interface {
	SendBookingConfirmationEmail(ctx context.Context, toEmail string, data BookingConfirmation, attachments ...Attachment) error
	SendBookingCancelledEmail(ctx context.Context, toEmail, orderID, refundFormatted string) error
}

// NoopSender is used when mail delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendBookingConfirmationEmail(ctx context.Context, toEmail string, data BookingConfirmation, attachments ...Attachment) error {
	return nil
}

func (NoopSender) SendBookingCancelledEmail(ctx context.Context, toEmail, orderID, refundFormatted string) error {
	return nil
}
