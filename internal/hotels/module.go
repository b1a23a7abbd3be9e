// Package hotels provides the hotel reservation domain module.
package hotels

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"utrippin_backend/internal/hotels/cache"
	"utrippin_backend/internal/hotels/handler"
	"utrippin_backend/internal/hotels/repository"
	"utrippin_backend/internal/hotels/service"
	apphttp "utrippin_backend/internal/http"
	"utrippin_backend/platform/events"
	"utrippin_backend/platform/logger"
	"utrippin_backend/platform/validator"
)

// Module represents the hotels domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// Deps are the external dependencies of the module. Pool, Redis, Bus and
// Scheduler may be nil; the related side effects are then skipped.
type Deps struct {
	Provider  service.ProviderClient
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Bus       events.Bus
	Scheduler service.CancellationScheduler

	FailureMode   service.FailureMode
	BackstopDelay time.Duration
}

// NewModule creates a new hotels module with all dependencies wired.
func NewModule(deps Deps, val *validator.Validator, log *logger.Logger) *Module {
	var store service.BookingStore
	if deps.Pool != nil {
		store = repository.New(deps.Pool)
	}
	var offerCache service.OfferCache
	if deps.Redis != nil {
		offerCache = cache.New(deps.Redis)
	}

	opts := []service.Option{}
	if deps.Scheduler != nil {
		opts = append(opts, service.WithScheduler(deps.Scheduler, deps.BackstopDelay))
	}
	svc := service.New(deps.Provider, offerCache, store, deps.Bus, deps.FailureMode, log, opts...)
	h := handler.New(svc, val)

	return &Module{handler: h, Service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "hotels"
}

// RegisterRoutes registers the module's routes under /api/v1/hotels and the
// workflow under /api/v1/certification.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/hotels"))
	m.handler.RegisterCertificationRoutes(ctx.Certification)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
