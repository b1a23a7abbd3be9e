// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"utrippin_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Hotel Booking Domain Events
// =============================================================================

// BookingCreated is published when a reservation has been created, either on
// the live provider or by the fallback path. Simulated distinguishes the two
// for subscribers; callers of the HTTP API never see the flag.
type BookingCreated struct {
	BaseEvent
	OrderID        string  `json:"orderId"`
	PartnerOrderID string  `json:"partnerOrderId"`
	HotelID        string  `json:"hotelId"`
	GuestEmail     string  `json:"guestEmail"`
	GuestName      string  `json:"guestName"`
	TotalAmount    float64 `json:"totalAmount"`
	Currency       string  `json:"currency"`
	CheckIn        string  `json:"checkIn"`
	CheckOut       string  `json:"checkOut"`
	Simulated      bool    `json:"simulated"`
}

func (e BookingCreated) EventName() string { return "hotels.booking.created" }

// BookingCancelled is published when a reservation has been released.
// GuestEmail is empty when the order was never persisted.
type BookingCancelled struct {
	BaseEvent
	OrderID        string  `json:"orderId"`
	GuestEmail     string  `json:"guestEmail"`
	RefundedAmount float64 `json:"refundedAmount"`
	Currency       string  `json:"currency"`
	Status         string  `json:"status"`
	Simulated      bool    `json:"simulated"`
}

func (e BookingCancelled) EventName() string { return "hotels.booking.cancelled" }
