package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inkwellpress/inkwell-backend/internal/payments"
)

type stubPaymentsService struct {
	req payments.IntentRequest
	err error
}

func (s *stubPaymentsService) CreateIntent(ctx context.Context, req payments.IntentRequest) (*payments.Intent, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.req = req
	return &payments.Intent{ClientSecret: "pi_123_secret_456"}, nil
}

func TestPaymentIntentCreateSuccess(t *testing.T) {
	service := &stubPaymentsService{}
	handler := PaymentIntentCreate(service, nil)

	body := `{"amount":19.99,"currency":"usd","metadata":{"order":"ord-1"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if service.req.Amount.String() != "19.99" {
		t.Fatalf("amount not forwarded: %s", service.req.Amount)
	}
	if service.req.Metadata["order"] != "ord-1" {
		t.Fatalf("metadata not forwarded: %+v", service.req.Metadata)
	}

	var envelope struct {
		Data struct {
			ClientSecret string `json:"client_secret"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ClientSecret != "pi_123_secret_456" {
		t.Fatalf("unexpected secret %q", envelope.Data.ClientSecret)
	}
}

func TestPaymentIntentCreateRejectsMalformedBody(t *testing.T) {
	handler := PaymentIntentCreate(&stubPaymentsService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", strings.NewReader(`{"amount":"abc"`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
