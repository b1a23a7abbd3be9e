package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"utrippin_backend/internal/hotels/service"
	"utrippin_backend/internal/hotels/transport"
	"utrippin_backend/internal/ratehawk"
	"utrippin_backend/platform/apperr"
	"utrippin_backend/platform/logger"
	"utrippin_backend/platform/validator"
)

// deadProvider fails every call the way an unreachable provider would.
type deadProvider struct{}

func (deadProvider) SearchHotel(context.Context, ratehawk.SearchRequest) (*ratehawk.SearchResponse, error) {
	return nil, apperr.Upstream("provider unreachable", nil)
}
func (deadProvider) Prebook(context.Context, ratehawk.PrebookRequest) (*ratehawk.PrebookResponse, error) {
	return nil, apperr.Upstream("provider unreachable", nil)
}
func (deadProvider) StartBooking(context.Context, ratehawk.BookingRequest) (*ratehawk.BookingResponse, error) {
	return nil, apperr.Upstream("provider unreachable", nil)
}
func (deadProvider) CheckBooking(context.Context, string) (*ratehawk.StatusResponse, error) {
	return nil, apperr.Upstream("provider unreachable", nil)
}
func (deadProvider) CancelBooking(context.Context, string) (*ratehawk.CancelResponse, error) {
	return nil, apperr.Upstream("provider unreachable", nil)
}

func newTestRouter(t *testing.T, mode service.FailureMode) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.New(deadProvider{}, nil, nil, nil, mode, logger.New("test"))
	h := New(svc, validator.New())

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1/hotels"))
	h.RegisterCertificationRoutes(engine.Group("/api/v1/certification"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCancel_MissingOrderIDReturns400(t *testing.T) {
	engine := newTestRouter(t, service.Synthesize)

	rec := doJSON(t, engine, "/api/v1/hotels/cancel", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Order ID is required" {
		t.Fatalf("unexpected error message %v", resp["error"])
	}
}

func TestCancel_FallbackReturns200(t *testing.T) {
	engine := newTestRouter(t, service.Synthesize)

	rec := doJSON(t, engine, "/api/v1/hotels/cancel", map[string]string{"order_id": "ord-1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp transport.CancelResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.RefundedAmount.Amount != 312.50 {
		t.Fatalf("expected 312.50 refund, got %v", resp.Data.RefundedAmount.Amount)
	}
}

func TestSearch_FallbackReturns200WithOffers(t *testing.T) {
	engine := newTestRouter(t, service.Synthesize)

	rec := doJSON(t, engine, "/api/v1/hotels/search", transport.SearchRequest{
		HotelID:  service.TestHotelID,
		Checkin:  "2026-10-01",
		Checkout: "2026-10-05",
		Guests:   []transport.GuestGroup{{Adults: 2}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp transport.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Hotels) == 0 {
		t.Fatal("expected offers in fallback response")
	}
	if resp.Data.SearchID == "" {
		t.Fatal("expected a search id")
	}
}

func TestSearch_ValidationFailureReturns400(t *testing.T) {
	engine := newTestRouter(t, service.Synthesize)

	rec := doJSON(t, engine, "/api/v1/hotels/search", transport.SearchRequest{
		HotelID: service.TestHotelID,
		Checkin: "not-a-date",
		Guests:  []transport.GuestGroup{{Adults: 2}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearch_SurfaceModeReturns502(t *testing.T) {
	engine := newTestRouter(t, service.Surface)

	rec := doJSON(t, engine, "/api/v1/hotels/search", transport.SearchRequest{
		HotelID:  service.TestHotelID,
		Checkin:  "2026-10-01",
		Checkout: "2026-10-05",
		Guests:   []transport.GuestGroup{{Adults: 2}},
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestBook_MissingFieldsReturns400WithFieldList(t *testing.T) {
	engine := newTestRouter(t, service.Synthesize)

	rec := doJSON(t, engine, "/api/v1/hotels/book", transport.BookRequest{
		BookHash: "p-mock_1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	msg, _ := resp["error"].(string)
	if msg == "" || !bytes.Contains([]byte(msg), []byte("Missing required fields")) {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestRunWorkflow_Returns200WithCompletedSteps(t *testing.T) {
	engine := newTestRouter(t, service.Synthesize)

	rec := doJSON(t, engine, "/api/v1/certification/run", transport.WorkflowRequest{
		Checkin:  "2026-10-01",
		Checkout: "2026-10-05",
		Guests:   []transport.GuestGroup{{Adults: 2}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary transport.WorkflowSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if !summary.Success {
		t.Fatal("expected success")
	}
	if !summary.Steps.Cancellation.Completed {
		t.Fatalf("expected completed cancellation, got %+v", summary.Steps)
	}
}

func TestOffers_ExpiredSearchReturns404(t *testing.T) {
	engine := newTestRouter(t, service.Synthesize)

	rec := doJSON(t, engine, "/api/v1/hotels/offers", map[string]string{"search_id": "long-gone"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an expired search, got %d", rec.Code)
	}
}
