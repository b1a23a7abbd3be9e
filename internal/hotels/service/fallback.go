package service

import (
	"fmt"
	"strings"
	"time"

	"utrippin_backend/internal/hotels/transport"
)

// TestHotelID is the provider's certification property. Bookings against it
// are never fulfilled and must always be cancelled.
const TestHotelID = "test_hotel_do_not_book"

const (
	testHotelPrice    = 312.50
	fallbackPriceHigh = 485.00
	fallbackPriceLow  = 225.00
	otherHotelPrice   = 245.00
	snapshotAmount    = 299.99
	defaultCurrency   = "USD"
)

// unknownHotelID marks simulated reservations whose hotel could not be
// resolved from the incoming token.
const unknownHotelID = "hotel_unknown"

// isTestHotelToken reports whether an opaque offer or hold token refers to
// the certification property. Tokens embed the hotel id.
func isTestHotelToken(token string) bool {
	return strings.Contains(token, TestHotelID)
}

// isTestBooking reports whether a reservation targets the certification
// property. The cached hold is authoritative when present; otherwise the
// hold token is sniffed.
func isTestBooking(hold *transport.PrebookData, bookHash string) bool {
	if hold != nil {
		return hold.HotelID == TestHotelID
	}
	return isTestHotelToken(bookHash)
}

func currencyOr(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return currency
}

// fallbackSearchData builds the simulated availability answer. The
// certification property is always the first offer so that unattended runs
// pick it up.
func fallbackSearchData(currency string, now time.Time) transport.SearchData {
	cur := currencyOr(currency)
	ts := now.UnixMilli()
	return transport.SearchData{
		SearchID: fmt.Sprintf("mock_search_%d", ts),
		Hotels: []transport.HotelOffer{
			{
				ID:                TestHotelID,
				Name:              "Test Hotel (Certification Property)",
				Stars:             4,
				Address:           "1 Sandbox Way",
				Price:             transport.Money{Amount: testHotelPrice, Currency: cur},
				Images:            []string{"https://cdn.example.com/hotels/test/lobby.jpg"},
				Amenities:         []string{"wifi", "parking", "pool"},
				RoomName:          "Standard Double Room",
				BookHash:          fmt.Sprintf("h-%s-%d", TestHotelID, ts),
				CancellationTerms: "Free cancellation until check-in",
			},
			{
				ID:                "grand_plaza_downtown",
				Name:              "Grand Plaza Downtown",
				Stars:             5,
				Address:           "200 Plaza Avenue",
				Price:             transport.Money{Amount: fallbackPriceHigh, Currency: cur},
				Images:            []string{"https://cdn.example.com/hotels/plaza/front.jpg"},
				Amenities:         []string{"wifi", "spa", "restaurant"},
				RoomName:          "Deluxe King Room",
				BookHash:          fmt.Sprintf("h-grand_plaza_downtown-%d", ts),
				CancellationTerms: "Non-refundable",
			},
			{
				ID:                "harbor_view_inn",
				Name:              "Harbor View Inn",
				Stars:             3,
				Address:           "18 Marina Walk",
				Price:             transport.Money{Amount: fallbackPriceLow, Currency: cur},
				Images:            []string{"https://cdn.example.com/hotels/harbor/bay.jpg"},
				Amenities:         []string{"wifi", "breakfast"},
				RoomName:          "Queen Room with Harbor View",
				BookHash:          fmt.Sprintf("h-harbor_view_inn-%d", ts),
				CancellationTerms: "Free cancellation until 48h before check-in",
			},
		},
	}
}

// testHotelOffer is the offer patched into live results that lack the
// certification property.
func testHotelOffer(currency string, now time.Time) transport.HotelOffer {
	return fallbackSearchData(currency, now).Hotels[0]
}

// fallbackHold builds the simulated price hold. The price matches the
// certification property when the incoming token refers to it.
func fallbackHold(bookHash string, now time.Time) transport.PrebookData {
	price := otherHotelPrice
	hotelID := unknownHotelID
	if isTestHotelToken(bookHash) {
		price = testHotelPrice
		hotelID = TestHotelID
	}
	return transport.PrebookData{
		BookHash:           fmt.Sprintf("p-mock_%d", now.UnixMilli()),
		FinalPrice:         transport.Money{Amount: price, Currency: defaultCurrency},
		ExpiresAt:          now.Add(30 * time.Minute),
		Available:          true,
		HotelID:            hotelID,
		RoomID:             "standard_double",
		CancellationPolicy: "Free cancellation until check-in",
	}
}

// fallbackBooking builds the simulated reservation. The order id embeds the
// creation timestamp and the caller's idempotency key so repeated runs never
// collide.
func fallbackBooking(req transport.BookRequest, now time.Time) transport.BookingData {
	price := otherHotelPrice
	hotelID := unknownHotelID
	if isTestHotelToken(req.BookHash) {
		price = testHotelPrice
		hotelID = TestHotelID
	}
	ts := now.UnixMilli()
	return transport.BookingData{
		OrderID:            fmt.Sprintf("mock_order_%d_%s", ts, req.Partner.PartnerOrderID),
		ReservationID:      fmt.Sprintf("mock_res_%d", ts),
		ConfirmationNumber: fmt.Sprintf("MOCK-%s", strings.ToUpper(req.Partner.PartnerOrderID)),
		TotalPrice:         transport.Money{Amount: price, Currency: defaultCurrency},
		HotelID:            hotelID,
		CheckIn:            now.AddDate(0, 0, 30).Format("2006-01-02"),
		CheckOut:           now.AddDate(0, 0, 37).Format("2006-01-02"),
	}
}

// fallbackStatus builds the simulated order snapshot.
func fallbackStatus(orderID string, now time.Time) transport.StatusResponse {
	return transport.StatusResponse{
		Status:             "confirmed",
		OrderID:            orderID,
		BookingReference:   fmt.Sprintf("MOCK-%s", strings.ToUpper(orderID)),
		PaymentStatus:      "paid",
		CancellationStatus: "non_refundable",
		CreatedAt:          now.UTC().Format(time.RFC3339),
		TotalAmount:        snapshotAmount,
		Currency:           defaultCurrency,
	}
}

// fallbackCancel builds the simulated cancellation receipt. The refund
// mirrors the booked amount when the order is known, otherwise the
// certification property price.
func fallbackCancel(amount float64, currency string) transport.CancelData {
	if amount <= 0 {
		amount = testHotelPrice
	}
	return transport.CancelData{
		RefundedAmount: transport.Money{Amount: amount, Currency: currencyOr(currency)},
	}
}
