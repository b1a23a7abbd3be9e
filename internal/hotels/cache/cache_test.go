package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"utrippin_backend/internal/hotels/transport"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb), srv
}

func TestOffers_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	offers := []transport.HotelOffer{{
		ID:       "test_hotel_do_not_book",
		Name:     "Test Hotel",
		BookHash: "h-test_hotel_do_not_book-1",
		Price:    transport.Money{Amount: 312.50, Currency: "USD"},
	}}
	if err := c.StoreOffers(ctx, "s-1", offers); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := c.GetOffers(ctx, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].BookHash != offers[0].BookHash || got[0].Price.Amount != 312.50 {
		t.Fatalf("unexpected offers %+v", got)
	}
}

func TestOffers_MissingKeyIsNotFound(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.GetOffers(context.Background(), "unknown")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHold_ExpiresWithTheHold(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	hold := transport.PrebookData{
		BookHash:   "p-mock_1",
		FinalPrice: transport.Money{Amount: 312.50, Currency: "USD"},
		ExpiresAt:  time.Now().Add(30 * time.Minute),
		Available:  true,
	}
	if err := c.StoreHold(ctx, hold); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := c.GetHold(ctx, "p-mock_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.BookHash != hold.BookHash || !got.Available {
		t.Fatalf("unexpected hold %+v", got)
	}

	srv.FastForward(31 * time.Minute)
	if _, err := c.GetHold(ctx, "p-mock_1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired hold to be gone, got %v", err)
	}
}

func TestHold_AlreadyExpiredIsNotStored(t *testing.T) {
	c, _ := newTestCache(t)

	hold := transport.PrebookData{
		BookHash:  "p-mock_2",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := c.StoreHold(context.Background(), hold); err != nil {
		t.Fatalf("store: %v", err)
	}
	if _, err := c.GetHold(context.Background(), "p-mock_2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected nothing stored, got %v", err)
	}
}

func TestNilClientReportsMisses(t *testing.T) {
	c := New(nil)

	if err := c.StoreOffers(context.Background(), "s-1", nil); err != nil {
		t.Fatalf("store on nil client: %v", err)
	}
	if _, err := c.GetOffers(context.Background(), "s-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
