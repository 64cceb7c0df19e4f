package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caiuswebs/luxe-backend/config"
	"github.com/caiuswebs/luxe-backend/logging"
	"github.com/caiuswebs/luxe-backend/models"
	"github.com/shopspring/decimal"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	cfg := &config.Config{
		ProviderBaseURL:        baseURL,
		ProviderAPIKey:         "test-key",
		ProviderRequestTimeout: timeout,
	}
	return NewClient(cfg, logging.GetSugaredLogger())
}

func TestFulfillSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api-service/order" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Fatalf("missing api key header")
		}

		var req models.ProviderOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.PlayerID != "12345678" || req.ZoneID != "2001" || req.ProductID != "mlbb_86_diamond" {
			t.Fatalf("unexpected request body: %+v", req)
		}

		json.NewEncoder(w).Encode(models.ProviderOrderResponse{Success: true, OrderID: "PX1"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)

	result, err := client.Fulfill(context.Background(), "mlbb_86_diamond", "12345678", "2001")
	if err != nil {
		t.Fatalf("expected fulfillment to succeed, got %v", err)
	}
	if !result.Success {
		t.Fatalf("expected provider success")
	}
	if result.ProviderRef != "PX1" {
		t.Fatalf("expected provider ref PX1, got %s", result.ProviderRef)
	}
}

func TestFulfillProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ProviderOrderResponse{Success: false, Message: "invalid player id"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)

	result, err := client.Fulfill(context.Background(), "mlbb_86_diamond", "0", "0")
	if err != nil {
		t.Fatalf("a rejection is a response, not a transport error, got %v", err)
	}
	if result.Success {
		t.Fatalf("expected provider rejection")
	}
	if result.Message != "invalid player id" {
		t.Fatalf("expected rejection message, got %q", result.Message)
	}
}

func TestFulfillTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 20*time.Millisecond)

	_, err := client.Fulfill(context.Background(), "mlbb_86_diamond", "12345678", "2001")
	if err == nil {
		t.Fatalf("expected a timeout error")
	}
}

func TestFulfillUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)

	_, err := client.Fulfill(context.Background(), "mlbb_86_diamond", "12345678", "2001")
	if err == nil {
		t.Fatalf("expected an error on non-200 status")
	}
}

func TestVerifyPlayer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api-service/validate" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.ProviderValidateResponse{Success: true, Valid: true, Username: "PlayerOne"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)

	result, err := client.VerifyPlayer(context.Background(), "12345678", "2001")
	if err != nil {
		t.Fatalf("expected verification to succeed, got %v", err)
	}
	if !result.Valid || result.Username != "PlayerOne" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestFetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api-service/products" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.ProviderProductsResponse{
			Success: true,
			Data: []models.ProviderProduct{
				{ProductID: "mlbb_86_diamond", Name: "86 Diamonds", Price: decimal.NewFromInt(100)},
				{ProductID: "mlbb_172_diamond", Name: "172 Diamonds", Price: decimal.NewFromInt(200)},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)

	products, err := client.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("expected product fetch to succeed, got %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ProductID != "mlbb_86_diamond" {
		t.Fatalf("unexpected product: %+v", products[0])
	}
}
