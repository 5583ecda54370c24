package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inkwellpress/inkwell-backend/internal/contact"
	"github.com/inkwellpress/inkwell-backend/pkg/db/models"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
)

type stubContactService struct {
	submissions []contact.Submission
	err         error
}

func (s *stubContactService) Submit(ctx context.Context, sub contact.Submission) (*models.ContactMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.submissions = append(s.submissions, sub)
	return &models.ContactMessage{
		Name:    sub.Name,
		Email:   sub.Email,
		Subject: sub.Subject,
		Message: sub.Message,
	}, nil
}

func TestContactSubmitSuccess(t *testing.T) {
	service := &stubContactService{}
	handler := ContactSubmit(service, nil)

	body := `{"name":"Ada Reader","email":"ada@example.com","message":"Loved the latest novel."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(service.submissions) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(service.submissions))
	}
}

func TestContactSubmitRejectsBadEmailBeforeService(t *testing.T) {
	service := &stubContactService{}
	handler := ContactSubmit(service, nil)

	body := `{"name":"Ada Reader","email":"not-an-email","message":"Hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if len(service.submissions) != 0 {
		t.Fatal("invalid payloads must never reach the service")
	}
}

func TestContactSubmitRejectsUnknownFields(t *testing.T) {
	handler := ContactSubmit(&stubContactService{}, nil)

	body := `{"name":"Ada","email":"ada@example.com","message":"Hi","admin":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestContactSubmitSurfacesDependencyFailure(t *testing.T) {
	service := &stubContactService{err: pkgerrors.New(pkgerrors.CodeDependency, "store contact message")}
	handler := ContactSubmit(service, nil)

	body := `{"name":"Ada Reader","email":"ada@example.com","message":"Hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
