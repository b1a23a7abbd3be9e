package ratehawk

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"utrippin_backend/platform/apperr"
	"utrippin_backend/platform/logger"
)

type providerConfig struct {
	baseURL string
	keyID   string
	apiKey  string
}

func (c providerConfig) GetProviderBaseURL() string        { return c.baseURL }
func (c providerConfig) GetProviderKeyID() string          { return c.keyID }
func (c providerConfig) GetProviderAPIKey() string         { return c.apiKey }
func (c providerConfig) GetProviderTimeout() time.Duration { return 2 * time.Second }
func (c providerConfig) GetProviderFailureMode() string    { return "synthesize" }

func TestSearchHotel_SendsBasicAuthAndDecodes(t *testing.T) {
	var gotAuth, gotPath, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","data":{"search_id":"s-1","hotels":[{"id":"h1","rates":[{"book_hash":"bh-1"}]}]}}`))
	}))
	defer srv.Close()

	client := New(providerConfig{baseURL: srv.URL, keyID: "key", apiKey: "secret"}, logger.New("test"))

	resp, err := client.SearchHotel(context.Background(), SearchRequest{HotelID: "h1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
	if gotAuth != wantAuth {
		t.Fatalf("expected %q, got %q", wantAuth, gotAuth)
	}
	if gotPath != "/search/hp/" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type %q", gotContentType)
	}
	if resp.Data.SearchID != "s-1" || len(resp.Data.Hotels) != 1 {
		t.Fatalf("unexpected payload %+v", resp)
	}
}

func TestPost_MissingCredentialsIsConfigError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should reach the provider without credentials")
	}))
	defer srv.Close()

	client := New(providerConfig{baseURL: srv.URL}, logger.New("test"))

	_, err := client.Prebook(context.Background(), PrebookRequest{BookHash: "bh-1"})
	if !apperr.Is(err, apperr.KindConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestPost_Non2xxIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New(providerConfig{baseURL: srv.URL, keyID: "key", apiKey: "secret"}, logger.New("test"))

	_, err := client.CheckBooking(context.Background(), "ord-1")
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestPost_MalformedPayloadIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := New(providerConfig{baseURL: srv.URL, keyID: "key", apiKey: "secret"}, logger.New("test"))

	_, err := client.CancelBooking(context.Background(), "ord-1")
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestPost_UnreachableProviderIsUpstreamError(t *testing.T) {
	client := New(providerConfig{baseURL: "http://127.0.0.1:1", keyID: "key", apiKey: "secret"}, logger.New("test"))

	_, err := client.SearchHotel(context.Background(), SearchRequest{HotelID: "h1"})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
