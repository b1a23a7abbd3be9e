package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"utrippin_backend/internal/hotels/transport"
	"utrippin_backend/internal/ratehawk"
	"utrippin_backend/platform/apperr"
)

const stayDateLayout = "2006-01-02"

func validateStay(checkin, checkout string) error {
	in, err := time.Parse(stayDateLayout, checkin)
	if err != nil {
		return apperr.Validation("checkin must be a YYYY-MM-DD date")
	}
	out, err := time.Parse(stayDateLayout, checkout)
	if err != nil {
		return apperr.Validation("checkout must be a YYYY-MM-DD date")
	}
	if !in.Before(out) {
		return apperr.Validation("checkout must be after checkin")
	}
	return nil
}

func validateGuests(guests []transport.GuestGroup) error {
	if len(guests) == 0 {
		return apperr.Validation("at least one guest group is required")
	}
	for _, g := range guests {
		if g.Adults < 1 {
			return apperr.Validation("each guest group needs at least one adult")
		}
	}
	return nil
}

// Search queries availability for one hotel or one region. Failed or empty
// provider answers are replaced with simulated offers unless the service is
// configured to surface failures. Successful answers are patched so the
// certification property is always present.
func (s *Service) Search(ctx context.Context, req transport.SearchRequest) (*transport.SearchData, error) {
	if req.HotelID == "" && req.RegionID == 0 {
		return nil, apperr.Validation("hotel_id or region_id is required")
	}
	if req.HotelID != "" && req.RegionID != 0 {
		return nil, apperr.Validation("hotel_id and region_id are mutually exclusive")
	}
	if err := validateStay(req.Checkin, req.Checkout); err != nil {
		return nil, err
	}
	if err := validateGuests(req.Guests); err != nil {
		return nil, err
	}

	v, err, _ := s.searchGroup.Do(searchKey(req), func() (any, error) {
		return s.searchOnce(context.WithoutCancel(ctx), req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*transport.SearchData), nil
}

// searchKey identifies one distinct availability query for in-flight
// deduplication. Everything that can change the provider's answer is part of
// the key, including the full guest composition of every room. The shared
// call runs detached from any single caller's context so that one caller's
// cancellation cannot abort the others.
func searchKey(req transport.SearchRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%s|%s|%s|%s|%s", req.HotelID, req.RegionID, req.Checkin, req.Checkout, currencyOr(req.Currency), req.Language, req.Residency)
	for _, g := range req.Guests {
		fmt.Fprintf(&b, "|%d", g.Adults)
		for _, age := range g.Children {
			fmt.Fprintf(&b, ",%d", age)
		}
	}
	return b.String()
}

// Offers replays a past search result by its id while the offers are still
// cached. It never reaches the provider; expired results are gone.
func (s *Service) Offers(ctx context.Context, searchID string) (*transport.SearchData, error) {
	if searchID == "" {
		return nil, apperr.BadRequest("Missing required parameter: search_id")
	}
	if s.cache == nil {
		return nil, apperr.NotFound("search results expired or unknown")
	}
	offers, err := s.cache.GetOffers(ctx, searchID)
	if err != nil {
		return nil, apperr.NotFound("search results expired or unknown")
	}
	return &transport.SearchData{SearchID: searchID, Hotels: offers}, nil
}

func (s *Service) searchOnce(ctx context.Context, req transport.SearchRequest) (*transport.SearchData, error) {
	resp, err := s.provider.SearchHotel(ctx, toProviderSearch(req))
	if err == nil && (resp.Status != "ok" || len(resp.Data.Hotels) == 0) {
		err = apperr.Semantic("provider returned no bookable offers")
	}

	var data transport.SearchData
	if err != nil {
		if !s.synthesize(err) {
			return nil, err
		}
		s.log.ProviderFallback("search", err)
		data = fallbackSearchData(req.Currency, s.now())
	} else {
		data = mapSearchData(resp, req.Currency)
		if !containsTestHotel(data.Hotels) {
			data.Hotels = append(data.Hotels, testHotelOffer(req.Currency, s.now()))
		}
	}

	if s.cache != nil {
		if cerr := s.cache.StoreOffers(ctx, data.SearchID, data.Hotels); cerr != nil {
			s.log.Warn("offer cache write failed", "search_id", data.SearchID, "error", cerr)
		}
	}
	return &data, nil
}

func containsTestHotel(offers []transport.HotelOffer) bool {
	for _, o := range offers {
		if o.ID == TestHotelID {
			return true
		}
	}
	return false
}

func toProviderSearch(req transport.SearchRequest) ratehawk.SearchRequest {
	out := ratehawk.SearchRequest{
		HotelID:   req.HotelID,
		RegionID:  req.RegionID,
		Checkin:   req.Checkin,
		Checkout:  req.Checkout,
		Currency:  currencyOr(req.Currency),
		Language:  req.Language,
		Residency: req.Residency,
	}
	if out.Language == "" {
		out.Language = "en"
	}
	for _, g := range req.Guests {
		out.Guests = append(out.Guests, ratehawk.GuestGroup{Adults: g.Adults, Children: g.Children})
	}
	return out
}

func mapSearchData(resp *ratehawk.SearchResponse, currency string) transport.SearchData {
	data := transport.SearchData{SearchID: resp.Data.SearchID}
	for _, h := range resp.Data.Hotels {
		offer := transport.HotelOffer{
			ID:        h.ID,
			Name:      h.Name,
			Stars:     h.Stars,
			Address:   h.Address,
			Images:    h.Images,
			Amenities: h.Amenities,
		}
		if len(h.Rates) > 0 {
			rate := h.Rates[0]
			offer.RoomName = rate.RoomName
			offer.BookHash = rate.BookHash
			offer.CancellationTerms = rate.CancellationTerms
			offer.Price = transport.Money{
				Amount:   rate.Price.Amount,
				Currency: currencyOr(rate.Price.Currency),
			}
		}
		if offer.Price.Currency == "" {
			offer.Price.Currency = currencyOr(currency)
		}
		data.Hotels = append(data.Hotels, offer)
	}
	return data
}
