// Package transport defines the request and response shapes of the hotels API.
package transport

import "time"

// Money is an amount in a named currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// GuestGroup describes the occupants of one room.
type GuestGroup struct {
	Adults   int   `json:"adults" validate:"required,min=1"`
	Children []int `json:"children"`
}

// SearchRequest is the availability query. Exactly one of HotelID and
// RegionID must be set.
type SearchRequest struct {
	HotelID   string       `json:"hotel_id"`
	RegionID  int          `json:"region_id"`
	Checkin   string       `json:"checkin" validate:"required,staydate"`
	Checkout  string       `json:"checkout" validate:"required,staydate"`
	Guests    []GuestGroup `json:"guests" validate:"required,min=1,dive"`
	Currency  string       `json:"currency"`
	Language  string       `json:"language"`
	Residency string       `json:"residency"`
}

// HotelOffer is one bookable offer. BookHash is provider-opaque and is
// forwarded unmodified to the prebook step.
type HotelOffer struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Stars             int      `json:"stars"`
	Address           string   `json:"address,omitempty"`
	Price             Money    `json:"price"`
	Images            []string `json:"images,omitempty"`
	Amenities         []string `json:"amenities,omitempty"`
	RoomName          string   `json:"room_name,omitempty"`
	BookHash          string   `json:"book_hash"`
	CancellationTerms string   `json:"cancellation_terms,omitempty"`
}

// SearchData is the payload of a search response.
type SearchData struct {
	Hotels   []HotelOffer `json:"hotels"`
	SearchID string       `json:"search_id"`
}

// SearchResponse is the availability answer.
type SearchResponse struct {
	Data SearchData `json:"data"`
}

// OffersRequest replays a past search by its id.
type OffersRequest struct {
	SearchID string `json:"search_id"`
}

// RoomOccupancy is the optional per-room guest breakdown for multi-room holds.
type RoomOccupancy struct {
	Adults   int   `json:"adults" validate:"required,min=1"`
	Children []int `json:"children"`
}

// PrebookRequest asks for a short-lived price lock on an offer.
type PrebookRequest struct {
	BookHash string          `json:"book_hash" validate:"required"`
	Rooms    []RoomOccupancy `json:"rooms" validate:"omitempty,dive"`
}

// PrebookData is the price hold. BookHash is a new hold-scoped token,
// distinct from the search-time token; it is valid for booking only before
// ExpiresAt.
type PrebookData struct {
	BookHash           string    `json:"book_hash"`
	FinalPrice         Money     `json:"final_price"`
	ExpiresAt          time.Time `json:"expires_at"`
	Available          bool      `json:"available"`
	HotelID            string    `json:"hotel_id"`
	RoomID             string    `json:"room_id"`
	CancellationPolicy string    `json:"cancellation_policy"`
}

// PrebookResponse is the price-hold answer.
type PrebookResponse struct {
	Status string      `json:"status"`
	Data   PrebookData `json:"data"`
}

// BookingGuest is one occupant on a booking.
type BookingGuest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// BookingRoom groups the guests of one room.
type BookingRoom struct {
	Guests []BookingGuest `json:"guests" validate:"required,min=1,dive"`
}

// BookingContact is the lead guest's contact details.
type BookingContact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingPartner carries the caller-supplied idempotency key, unique per
// booking attempt.
type BookingPartner struct {
	PartnerOrderID string `json:"partner_order_id"`
}

// BookRequest creates a reservation against a hold token.
type BookRequest struct {
	BookHash string         `json:"book_hash"`
	User     BookingContact `json:"user"`
	Rooms    []BookingRoom  `json:"rooms"`
	Partner  BookingPartner `json:"partner"`
}

// BookingData identifies the created reservation. OrderID is the sole key
// for all subsequent status and cancellation calls.
type BookingData struct {
	OrderID            string `json:"order_id"`
	ReservationID      string `json:"reservation_id"`
	ConfirmationNumber string `json:"confirmation_number"`
	TotalPrice         Money  `json:"total_price"`
	HotelID            string `json:"hotel_id"`
	CheckIn            string `json:"check_in"`
	CheckOut           string `json:"check_out"`
}

// BookResponse is the booking-creation answer.
type BookResponse struct {
	Status string      `json:"status"`
	Data   BookingData `json:"data"`
}

// StatusRequest looks up the state of an order.
type StatusRequest struct {
	OrderID string `json:"order_id"`
}

// StatusResponse is a read-only snapshot of an order's state.
type StatusResponse struct {
	Status             string  `json:"status"`
	OrderID            string  `json:"order_id"`
	BookingReference   string  `json:"booking_reference,omitempty"`
	PaymentStatus      string  `json:"payment_status,omitempty"`
	CancellationStatus string  `json:"cancellation_status,omitempty"`
	CreatedAt          string  `json:"created_at,omitempty"`
	TotalAmount        float64 `json:"total_amount,omitempty"`
	Currency           string  `json:"currency,omitempty"`
}

// CancelRequest releases an order's reservation.
type CancelRequest struct {
	OrderID string `json:"order_id"`
}

// CancelData carries the refund confirmation.
type CancelData struct {
	RefundedAmount Money `json:"refunded_amount"`
}

// CancelResponse is the cancellation answer.
type CancelResponse struct {
	Status string     `json:"status"`
	Data   CancelData `json:"data"`
}

// WorkflowRequest runs the full certification chain unattended.
type WorkflowRequest struct {
	HotelID   string       `json:"hotel_id"`
	Checkin   string       `json:"checkin" validate:"required,staydate"`
	Checkout  string       `json:"checkout" validate:"required,staydate"`
	Guests    []GuestGroup `json:"guests" validate:"required,min=1,dive"`
	Currency  string       `json:"currency"`
	Language  string       `json:"language"`
	Residency string       `json:"residency"`
}

// WorkflowStep reports completion of one step of a certification run.
type WorkflowStep struct {
	Completed bool   `json:"completed"`
	SearchID  string `json:"search_id,omitempty"`
	HoldHash  string `json:"prebook_hash,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

// WorkflowSteps aggregates the per-step outcomes of a run.
type WorkflowSteps struct {
	Search       WorkflowStep `json:"search"`
	Prebook      WorkflowStep `json:"prebook"`
	Booking      WorkflowStep `json:"booking"`
	Cancellation WorkflowStep `json:"cancellation"`
}

// WorkflowSummary is the final report of a certification run.
type WorkflowSummary struct {
	Success           bool          `json:"success"`
	Message           string        `json:"message"`
	Steps             WorkflowSteps `json:"workflow_steps"`
	CertificationNote string        `json:"certification_note"`
}
