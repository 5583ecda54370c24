package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/inkwellpress/inkwell-backend/pkg/db/models"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
)

type listingBooksService struct {
	rows         []models.Book
	featuredOnly bool
	err          error
}

func (s *listingBooksService) List(ctx context.Context, featuredOnly bool) ([]models.Book, error) {
	s.featuredOnly = featuredOnly
	return s.rows, s.err
}

func (s *listingBooksService) Get(ctx context.Context, id string) (*models.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
	}
	return &s.rows[0], nil
}

func TestBookListAppliesFeaturedFilter(t *testing.T) {
	service := &listingBooksService{rows: []models.Book{{ID: "b1", Title: "First Light", Price: decimal.RequireFromString("19.99")}}}
	handler := BookList(service, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/books?featured=true", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !service.featuredOnly {
		t.Fatal("featured filter not applied")
	}

	var envelope struct {
		Data []models.Book `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ID != "b1" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestBookDetailNotFound(t *testing.T) {
	handler := BookDetail(&listingBooksService{}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/books/missing", nil), "bookId", "missing")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
