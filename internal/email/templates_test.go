package email

import (
	"strings"
	"testing"
)

func TestRenderBookingConfirmation(t *testing.T) {
	html, err := renderEmailTemplate("booking_confirmation.html", bookingConfirmationEmailData{
		BookingConfirmation: BookingConfirmation{
			GuestName:          "John Doe",
			HotelName:          "Test Hotel",
			OrderID:            "ord-1",
			ConfirmationNumber: "MOCK-ATTEMPT-1",
			CheckIn:            "2026-10-01",
			CheckOut:           "2026-10-05",
			TotalFormatted:     "312.50 USD",
			Simulated:          true,
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"John Doe", "Test Hotel", "ord-1", "312.50 USD", "simulated certification booking"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in rendered mail", want)
		}
	}
}

func TestRenderBookingCancelled(t *testing.T) {
	html, err := renderEmailTemplate("booking_cancelled.html", bookingCancelledEmailData{
		OrderID:         "ord-1",
		RefundFormatted: "312.50 USD",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "ord-1") || !strings.Contains(html, "312.50 USD") {
		t.Fatal("expected order id and refund in rendered mail")
	}
}

func TestCheckInQRCode(t *testing.T) {
	atts, err := checkInQRCode("ord-1")
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if len(atts) != 1 || atts[0].MIMEType != "image/png" || len(atts[0].Content) == 0 {
		t.Fatalf("unexpected attachment %+v", atts)
	}
}
