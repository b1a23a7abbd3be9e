package service

import (
	"context"
	"strings"
	"testing"

	"utrippin_backend/internal/hotels/transport"
	"utrippin_backend/internal/ratehawk"
	"utrippin_backend/platform/apperr"
)

func validWorkflowRequest() transport.WorkflowRequest {
	return transport.WorkflowRequest{
		Checkin:  "2026-10-01",
		Checkout: "2026-10-05",
		Guests:   []transport.GuestGroup{{Adults: 2}},
	}
}

func TestRunWorkflow_CompletesAgainstDeadProvider(t *testing.T) {
	p := &stubProvider{}
	svc := newTestService(p, Synthesize)

	summary, err := svc.RunWorkflow(context.Background(), validWorkflowRequest())
	if err != nil {
		t.Fatalf("expected completed run, got error: %v", err)
	}
	if !summary.Success {
		t.Fatal("expected success")
	}
	steps := summary.Steps
	if !steps.Search.Completed || !steps.Prebook.Completed || !steps.Booking.Completed || !steps.Cancellation.Completed {
		t.Fatalf("expected every step completed, got %+v", steps)
	}
	if !strings.HasPrefix(steps.Booking.OrderID, "mock_order_") {
		t.Fatalf("expected simulated order id, got %q", steps.Booking.OrderID)
	}
	if steps.Cancellation.Status != "cancelled" {
		t.Fatalf("expected cancelled status, got %q", steps.Cancellation.Status)
	}
	if p.callCount("cancel") == 0 {
		t.Fatal("expected a cancellation attempt for the created booking")
	}
}

func TestRunWorkflow_EveryBookingGetsCancelled(t *testing.T) {
	booked := "ord-live-1"
	cancelled := []string{}
	p := &stubProvider{}
	p.searchFn = func(ratehawk.SearchRequest) (*ratehawk.SearchResponse, error) {
		resp := &ratehawk.SearchResponse{Status: "ok"}
		resp.Data.SearchID = "s-1"
		resp.Data.Hotels = []ratehawk.Hotel{{
			ID:    TestHotelID,
			Rates: []ratehawk.Rate{{BookHash: "h-test_hotel_do_not_book-1", Price: ratehawk.Price{Amount: 312.50, Currency: "USD"}}},
		}}
		return resp, nil
	}
	p.prebookFn = func(ratehawk.PrebookRequest) (*ratehawk.PrebookResponse, error) {
		resp := &ratehawk.PrebookResponse{Status: "ok"}
		resp.Data.BookHash = "p-live-1"
		resp.Data.Available = true
		return resp, nil
	}
	p.bookFn = func(ratehawk.BookingRequest) (*ratehawk.BookingResponse, error) {
		resp := &ratehawk.BookingResponse{Status: "ok"}
		resp.Data.OrderID = booked
		return resp, nil
	}
	p.cancelFn = func(orderID string) (*ratehawk.CancelResponse, error) {
		cancelled = append(cancelled, orderID)
		return nil, apperr.Upstream("provider unreachable", nil)
	}
	svc := newTestService(p, Surface)

	_, err := svc.RunWorkflow(context.Background(), validWorkflowRequest())
	if err == nil {
		t.Fatal("expected surfaced cancellation failure")
	}
	// step attempt plus the compensating attempt
	if p.callCount("cancel") != 2 {
		t.Fatalf("expected 2 cancellation attempts, got %d", p.callCount("cancel"))
	}
	for _, id := range cancelled {
		if id != booked {
			t.Fatalf("expected cancellation of %q, got %q", booked, id)
		}
	}
}

func TestRunWorkflow_ValidatesInput(t *testing.T) {
	p := &stubProvider{}
	svc := newTestService(p, Synthesize)

	req := validWorkflowRequest()
	req.Guests = nil
	_, err := svc.RunWorkflow(context.Background(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(p.calls) != 0 {
		t.Fatalf("expected no provider traffic, got calls %v", p.calls)
	}
}

func TestRunWorkflow_DeterministicUnderFixedClock(t *testing.T) {
	first, err := newTestService(&stubProvider{}, Synthesize).RunWorkflow(context.Background(), validWorkflowRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newTestService(&stubProvider{}, Synthesize).RunWorkflow(context.Background(), validWorkflowRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *first != *second {
		t.Fatalf("expected identical summaries, got %+v vs %+v", first, second)
	}
}

func TestWorkflowState_OnlyMovesForward(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on backwards transition")
		}
	}()
	run := &workflowRun{state: StateBooking, log: newTestService(&stubProvider{}, Synthesize).log}
	run.advance(StateSearching)
}
