// Package service implements the hotel reservation operations and the
// certification workflow on top of the provider client.
package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"utrippin_backend/internal/hotels/repository"
	"utrippin_backend/internal/hotels/transport"
	"utrippin_backend/internal/ratehawk"
	"utrippin_backend/platform/apperr"
	"utrippin_backend/platform/events"
	"utrippin_backend/platform/logger"
)

// FailureMode selects how provider and semantic failures are answered.
type FailureMode int

const (
	// Synthesize answers failed provider steps with deterministic
	// simulated data so certification runs always complete.
	Synthesize FailureMode = iota
	// Surface reports provider failures to the caller as errors.
	Surface
)

// ParseFailureMode maps the configured mode string onto a FailureMode.
// Unknown values fall back to Synthesize.
func ParseFailureMode(mode string) FailureMode {
	if strings.EqualFold(mode, "surface") {
		return Surface
	}
	return Synthesize
}

// ProviderClient is the outbound port to the reservation provider.
type ProviderClient interface {
	SearchHotel(ctx context.Context, req ratehawk.SearchRequest) (*ratehawk.SearchResponse, error)
	Prebook(ctx context.Context, req ratehawk.PrebookRequest) (*ratehawk.PrebookResponse, error)
	StartBooking(ctx context.Context, req ratehawk.BookingRequest) (*ratehawk.BookingResponse, error)
	CheckBooking(ctx context.Context, orderID string) (*ratehawk.StatusResponse, error)
	CancelBooking(ctx context.Context, orderID string) (*ratehawk.CancelResponse, error)
}

// OfferCache keeps search results and price holds for their validity window.
type OfferCache interface {
	StoreOffers(ctx context.Context, searchID string, offers []transport.HotelOffer) error
	GetOffers(ctx context.Context, searchID string) ([]transport.HotelOffer, error)
	StoreHold(ctx context.Context, hold transport.PrebookData) error
	GetHold(ctx context.Context, bookHash string) (*transport.PrebookData, error)
}

// BookingStore persists booking records.
type BookingStore interface {
	Create(ctx context.Context, rec repository.BookingRecord) error
	GetByOrderID(ctx context.Context, orderID string) (*repository.BookingRecord, error)
	UpdateStatus(ctx context.Context, orderID, paymentStatus, cancellationStatus string) error
	MarkCancelled(ctx context.Context, orderID string, refunded float64) error
}

// CancellationScheduler books a deferred check that a test reservation has
// actually been released.
type CancellationScheduler interface {
	ScheduleEnsureCancelled(ctx context.Context, orderID string, delay time.Duration) error
}

// Service carries out the reservation operations.
type Service struct {
	provider ProviderClient
	cache    OfferCache
	store    BookingStore
	bus      events.Bus
	sched    CancellationScheduler
	mode     FailureMode

	backstopDelay time.Duration
	searchGroup   singleflight.Group
	log           *logger.Logger
	now           func() time.Time
}

// Option tweaks Service construction.
type Option func(*Service)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithScheduler wires the deferred cancellation backstop.
func WithScheduler(sched CancellationScheduler, delay time.Duration) Option {
	return func(s *Service) {
		s.sched = sched
		s.backstopDelay = delay
	}
}

// New builds a Service. Cache, store and bus may be nil; the related
// side effects are then skipped.
func New(provider ProviderClient, cache OfferCache, store BookingStore, bus events.Bus, mode FailureMode, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		provider:      provider,
		cache:         cache,
		store:         store,
		bus:           bus,
		mode:          mode,
		backstopDelay: 5 * time.Minute,
		log:           log,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) publish(ctx context.Context, evt events.Event) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, evt)
}

// synthesize reports whether a failed step should be answered with simulated
// data. Only provider and semantic failures qualify; configuration and
// validation errors always surface.
func (s *Service) synthesize(err error) bool {
	return s.mode == Synthesize && apperr.IsProviderFailure(err)
}
