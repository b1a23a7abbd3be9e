package service

import (
	"context"
	"strings"

	"utrippin_backend/internal/events"
	"utrippin_backend/internal/hotels/repository"
	"utrippin_backend/internal/hotels/transport"
	"utrippin_backend/internal/ratehawk"
	"utrippin_backend/platform/apperr"
	"utrippin_backend/platform/phone"
)

func validateBook(req transport.BookRequest) error {
	var missing []string
	if req.BookHash == "" {
		missing = append(missing, "book_hash")
	}
	if req.User.Email == "" {
		missing = append(missing, "user.email")
	}
	if len(req.Rooms) == 0 {
		missing = append(missing, "rooms")
	}
	for _, room := range req.Rooms {
		if len(room.Guests) == 0 {
			missing = append(missing, "rooms.guests")
			break
		}
	}
	if req.Partner.PartnerOrderID == "" {
		missing = append(missing, "partner.partner_order_id")
	}
	if len(missing) > 0 {
		return apperr.Validation("Missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// Book turns a price hold into a reservation. Invalid requests are rejected
// before any provider traffic. The reservation is persisted before the
// result is returned; bookings against the certification property also get a
// deferred check that they end up cancelled.
func (s *Service) Book(ctx context.Context, req transport.BookRequest) (*transport.BookingData, error) {
	if err := validateBook(req); err != nil {
		return nil, err
	}
	req.User.Phone = phone.NormalizeE164(req.User.Phone)

	var hold *transport.PrebookData
	if s.cache != nil {
		if h, cerr := s.cache.GetHold(ctx, req.BookHash); cerr == nil {
			hold = h
		}
	}

	resp, err := s.provider.StartBooking(ctx, toProviderBooking(req))
	if err == nil && resp.Data.OrderID == "" {
		err = apperr.Semantic("provider did not return an order id")
	}

	var booking transport.BookingData
	simulated := false
	if err != nil {
		if !s.synthesize(err) {
			return nil, err
		}
		s.log.ProviderFallback("book", err)
		booking = fallbackBooking(req, s.now())
		simulated = true
	} else {
		booking = transport.BookingData{
			OrderID:            resp.Data.OrderID,
			ReservationID:      resp.Data.ReservationID,
			ConfirmationNumber: resp.Data.ConfirmationNumber,
			TotalPrice: transport.Money{
				Amount:   resp.Data.TotalPrice.Amount,
				Currency: currencyOr(resp.Data.TotalPrice.Currency),
			},
			HotelID:  resp.Data.HotelID,
			CheckIn:  resp.Data.CheckIn,
			CheckOut: resp.Data.CheckOut,
		}
	}
	if hold != nil && (booking.HotelID == "" || booking.HotelID == unknownHotelID) {
		booking.HotelID = hold.HotelID
	}

	if s.store != nil {
		rec := repository.BookingRecord{
			OrderID:            booking.OrderID,
			PartnerOrderID:     req.Partner.PartnerOrderID,
			HotelID:            booking.HotelID,
			GuestEmail:         req.User.Email,
			GuestPhone:         req.User.Phone,
			TotalAmount:        booking.TotalPrice.Amount,
			Currency:           booking.TotalPrice.Currency,
			CheckIn:            booking.CheckIn,
			CheckOut:           booking.CheckOut,
			PaymentStatus:      "pending",
			CancellationStatus: "none",
			Simulated:          simulated,
		}
		if serr := s.store.Create(ctx, rec); serr != nil {
			return nil, serr
		}
	}

	s.publish(ctx, events.BookingCreated{
		BaseEvent:      events.NewBaseEvent(),
		OrderID:        booking.OrderID,
		PartnerOrderID: req.Partner.PartnerOrderID,
		HotelID:        booking.HotelID,
		GuestEmail:     req.User.Email,
		GuestName:      leadGuestName(req.Rooms),
		TotalAmount:    booking.TotalPrice.Amount,
		Currency:       booking.TotalPrice.Currency,
		CheckIn:        booking.CheckIn,
		CheckOut:       booking.CheckOut,
		Simulated:      simulated,
	})

	if s.sched != nil && isTestBooking(hold, req.BookHash) {
		if serr := s.sched.ScheduleEnsureCancelled(ctx, booking.OrderID, s.backstopDelay); serr != nil {
			s.log.Warn("cancellation backstop scheduling failed", "order_id", booking.OrderID, "error", serr)
		}
	}
	return &booking, nil
}

// Status reads the current reservation, payment and cancellation state of an
// order without changing it.
func (s *Service) Status(ctx context.Context, orderID string) (*transport.StatusResponse, error) {
	if orderID == "" {
		return nil, apperr.BadRequest("Missing required parameter: order_id")
	}

	resp, err := s.provider.CheckBooking(ctx, orderID)

	var snap transport.StatusResponse
	if err != nil {
		if !s.synthesize(err) {
			return nil, err
		}
		s.log.ProviderFallback("status", err)
		snap = fallbackStatus(orderID, s.now())
	} else {
		snap = transport.StatusResponse{
			Status:             resp.Status,
			OrderID:            orderID,
			BookingReference:   resp.BookingReference,
			PaymentStatus:      resp.PaymentStatus,
			CancellationStatus: resp.CancellationStatus,
			CreatedAt:          resp.CreatedAt,
			TotalAmount:        resp.TotalAmount,
			Currency:           resp.Currency,
		}
	}

	if s.store != nil {
		if serr := s.store.UpdateStatus(ctx, orderID, snap.PaymentStatus, snap.CancellationStatus); serr != nil {
			s.log.DatabaseError("update booking status", serr)
		}
	}
	return &snap, nil
}

// Cancel releases an order's reservation and reports the refund. A failed
// provider call still yields a cancellation receipt unless the service
// surfaces failures; test reservations must never be left standing.
func (s *Service) Cancel(ctx context.Context, orderID string) (*transport.CancelData, error) {
	if orderID == "" {
		return nil, apperr.BadRequest("Order ID is required")
	}

	var rec *repository.BookingRecord
	if s.store != nil {
		rec, _ = s.store.GetByOrderID(ctx, orderID)
	}

	resp, err := s.provider.CancelBooking(ctx, orderID)
	if err == nil && resp.Status != "ok" {
		err = apperr.Semantic("provider rejected the cancellation")
	}

	var receipt transport.CancelData
	if err != nil {
		if !s.synthesize(err) {
			return nil, err
		}
		s.log.ProviderFallback("cancel", err)
		var amount float64
		var currency string
		if rec != nil {
			amount, currency = rec.TotalAmount, rec.Currency
		}
		receipt = fallbackCancel(amount, currency)
	} else {
		receipt = transport.CancelData{
			RefundedAmount: transport.Money{
				Amount:   resp.Data.RefundedAmount.Amount,
				Currency: currencyOr(resp.Data.RefundedAmount.Currency),
			},
		}
	}

	if s.store != nil {
		if serr := s.store.MarkCancelled(ctx, orderID, receipt.RefundedAmount.Amount); serr != nil {
			s.log.DatabaseError("mark booking cancelled", serr)
		}
	}

	guestEmail := ""
	if rec != nil {
		guestEmail = rec.GuestEmail
	}
	s.publish(ctx, events.BookingCancelled{
		BaseEvent:      events.NewBaseEvent(),
		OrderID:        orderID,
		GuestEmail:     guestEmail,
		RefundedAmount: receipt.RefundedAmount.Amount,
		Currency:       receipt.RefundedAmount.Currency,
		Status:         "cancelled",
		Simulated:      err != nil,
	})
	return &receipt, nil
}

func leadGuestName(rooms []transport.BookingRoom) string {
	for _, room := range rooms {
		for _, g := range room.Guests {
			return strings.TrimSpace(g.FirstName + " " + g.LastName)
		}
	}
	return ""
}

func toProviderBooking(req transport.BookRequest) ratehawk.BookingRequest {
	out := ratehawk.BookingRequest{
		BookHash: req.BookHash,
		User:     ratehawk.BookingContact{Email: req.User.Email, Phone: req.User.Phone},
		Partner:  ratehawk.BookingPartner{PartnerOrderID: req.Partner.PartnerOrderID},
	}
	for _, room := range req.Rooms {
		var guests []ratehawk.BookingGuest
		for _, g := range room.Guests {
			guests = append(guests, ratehawk.BookingGuest{FirstName: g.FirstName, LastName: g.LastName})
		}
		out.Rooms = append(out.Rooms, ratehawk.BookingRoom{Guests: guests})
	}
	return out
}
