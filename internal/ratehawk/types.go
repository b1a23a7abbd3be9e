package ratehawk

// Wire types for the provider API. Tokens (book_hash, order_id) are opaque:
// they are forwarded unchanged between steps and never parsed or constructed
// here beyond presence checks.

// Price is an amount in a named currency.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// GuestGroup describes the occupants of one room in a search.
type GuestGroup struct {
	Adults   int   `json:"adults"`
	Children []int `json:"children"`
}

// SearchRequest queries availability for a date range and guest
// configuration against either a region or a specific hotel. The two targets
// are mutually exclusive; exactly one must be set.
type SearchRequest struct {
	HotelID   string       `json:"id,omitempty"`
	RegionID  int          `json:"region_id,omitempty"`
	Checkin   string       `json:"checkin"`
	Checkout  string       `json:"checkout"`
	Guests    []GuestGroup `json:"guests"`
	Currency  string       `json:"currency,omitempty"`
	Language  string       `json:"language,omitempty"`
	Residency string       `json:"residency,omitempty"`
}

// Rate is one priced offer for a room.
type Rate struct {
	BookHash          string `json:"book_hash"`
	RoomName          string `json:"room_name"`
	Price             Price  `json:"price"`
	CancellationTerms string `json:"cancellation_terms,omitempty"`
}

// Hotel is one property in a search response.
type Hotel struct {
	ID        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	Stars     int      `json:"stars,omitempty"`
	Address   string   `json:"address,omitempty"`
	Images    []string `json:"images,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
	Rates     []Rate   `json:"rates"`
}

// SearchResponse is the provider's availability answer.
type SearchResponse struct {
	Status string `json:"status"`
	Data   struct {
		SearchID string  `json:"search_id"`
		Hotels   []Hotel `json:"hotels"`
	} `json:"data"`
}

// RoomOccupancy is the optional per-room guest breakdown for multi-room holds.
type RoomOccupancy struct {
	Adults   int   `json:"adults"`
	Children []int `json:"children"`
}

// PrebookRequest locks the price and availability behind a search-time token.
type PrebookRequest struct {
	BookHash string          `json:"book_hash"`
	Rooms    []RoomOccupancy `json:"rooms,omitempty"`
}

// PrebookResponse carries the hold-scoped token and its expiry.
type PrebookResponse struct {
	Status string `json:"status"`
	Data   struct {
		BookHash           string `json:"book_hash"`
		FinalPrice         Price  `json:"final_price"`
		ExpiresAt          string `json:"expires_at"`
		Available          bool   `json:"available"`
		HotelID            string `json:"hotel_id"`
		RoomID             string `json:"room_id"`
		CancellationPolicy string `json:"cancellation_policy"`
	} `json:"data"`
}

// BookingGuest is one occupant on a booking.
type BookingGuest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// BookingRoom groups the guests of one room.
type BookingRoom struct {
	Guests []BookingGuest `json:"guests"`
}

// BookingContact is the lead guest's contact details.
type BookingContact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingPartner carries the caller-supplied idempotency key.
type BookingPartner struct {
	PartnerOrderID string `json:"partner_order_id"`
}

// BookingRequest creates a reservation against a hold token.
type BookingRequest struct {
	BookHash string         `json:"book_hash"`
	User     BookingContact `json:"user"`
	Rooms    []BookingRoom  `json:"rooms"`
	Partner  BookingPartner `json:"partner"`
}

// BookingResponse is the provider's answer to a booking start.
type BookingResponse struct {
	Status string `json:"status"`
	Data   struct {
		OrderID            string `json:"order_id"`
		ReservationID      string `json:"reservation_id"`
		ConfirmationNumber string `json:"confirmation_number"`
		TotalPrice         Price  `json:"total_price"`
		HotelID            string `json:"hotel_id"`
		CheckIn            string `json:"check_in"`
		CheckOut           string `json:"check_out"`
	} `json:"data"`
}

// StatusResponse is the current reservation/payment/cancellation state of an order.
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

// CancelResponse confirms release of a reservation.
type CancelResponse struct {
	Status string `json:"status"`
	Data   struct {
		RefundedAmount Price `json:"refunded_amount"`
	} `json:"data"`
}
