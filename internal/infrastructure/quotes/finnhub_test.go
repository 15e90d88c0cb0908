package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFinnhubClient_Quote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol = %q", got)
		}
		if got := r.URL.Query().Get("token"); got != "test-token" {
			t.Errorf("token = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c": 231.5, "dp": 1.2, "h": 233.0}`))
	}))
	defer srv.Close()

	client := NewFinnhubClient(srv.URL, "test-token", srv.Client())
	quote, err := client.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.CurrentPrice != 231.5 || quote.ChangePercent != 1.2 {
		t.Fatalf("quote = %+v", quote)
	}
}

func TestFinnhubClient_MissingToken(t *testing.T) {
	client := NewFinnhubClient("http://example.invalid", "", nil)
	if _, err := client.Quote(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error without api token")
	}
}

func TestFinnhubClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewFinnhubClient(srv.URL, "test-token", srv.Client())
	if _, err := client.Quote(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestFinnhubClient_MissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c": null, "dp": null}`))
	}))
	defer srv.Close()

	client := NewFinnhubClient(srv.URL, "test-token", srv.Client())
	if _, err := client.Quote(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error on empty quote")
	}
}
