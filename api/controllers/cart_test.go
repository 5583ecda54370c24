package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/inkwellpress/inkwell-backend/api/middleware"
	cartsvc "github.com/inkwellpress/inkwell-backend/internal/cart"
	"github.com/inkwellpress/inkwell-backend/pkg/db/models"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
)

type stubCartService struct {
	view        *cartsvc.View
	err         error
	lastSession string
	lastItem    cartsvc.Line
	lastQty     int
	lastItemID  string
	lastOpen    bool
	cleared     bool
}

func (s *stubCartService) Get(ctx context.Context, sessionID string) (*cartsvc.View, error) {
	s.lastSession = sessionID
	return s.view, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, item cartsvc.Line, quantity int) (*cartsvc.View, error) {
	s.lastSession = sessionID
	s.lastItem = item
	s.lastQty = quantity
	return s.view, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*cartsvc.View, error) {
	s.lastSession = sessionID
	s.lastItemID = itemID
	s.lastQty = quantity
	return s.view, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*cartsvc.View, error) {
	s.lastSession = sessionID
	s.lastItemID = itemID
	return s.view, s.err
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string) (*cartsvc.View, error) {
	s.lastSession = sessionID
	s.cleared = true
	return s.view, s.err
}

func (s *stubCartService) SetOpen(ctx context.Context, sessionID string, open bool) (*cartsvc.View, error) {
	s.lastSession = sessionID
	s.lastOpen = open
	return s.view, s.err
}

type stubBooksService struct {
	book *models.Book
	err  error
}

func (s *stubBooksService) List(ctx context.Context, featuredOnly bool) ([]models.Book, error) {
	return nil, s.err
}

func (s *stubBooksService) Get(ctx context.Context, id string) (*models.Book, error) {
	return s.book, s.err
}

func emptyView() *cartsvc.View {
	return &cartsvc.View{Lines: []cartsvc.Line{}, TotalPrice: decimal.Zero}
}

func withSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(middleware.WithCartSession(req.Context(), sessionID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCartFetchSuccess(t *testing.T) {
	service := &stubCartService{view: emptyView()}
	handler := CartFetch(service, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if service.lastSession != "sess-1" {
		t.Fatalf("session not forwarded: %q", service.lastSession)
	}
}

func TestCartFetchMissingSession(t *testing.T) {
	handler := CartFetch(&stubCartService{view: emptyView()}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemSnapshotsCatalogFields(t *testing.T) {
	service := &stubCartService{view: emptyView()}
	isbn := "978-1-23456-789-0"
	catalog := &stubBooksService{book: &models.Book{
		ID:          "b1",
		Title:       "First Light",
		Description: "A debut novel.",
		CoverImage:  "https://cdn/covers/b1.jpg",
		Price:       decimal.RequireFromString("19.99"),
		ISBN:        &isbn,
	}}
	handler := CartAddItem(service, catalog, nil)

	body := `{"item_id":"b1","quantity":2}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if service.lastItem.ItemID != "b1" || service.lastItem.Title != "First Light" {
		t.Fatalf("line not built from catalog record: %+v", service.lastItem)
	}
	if !service.lastItem.UnitPrice.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("unexpected unit price %s", service.lastItem.UnitPrice)
	}
	if service.lastItem.Extra["isbn"] != isbn {
		t.Fatalf("extensions not carried: %+v", service.lastItem.Extra)
	}
	if service.lastQty != 2 {
		t.Fatalf("quantity not forwarded: %d", service.lastQty)
	}
}

func TestCartAddItemUnknownBook(t *testing.T) {
	service := &stubCartService{view: emptyView()}
	catalog := &stubBooksService{err: pkgerrors.New(pkgerrors.CodeNotFound, "book not found")}
	handler := CartAddItem(service, catalog, nil)

	body := `{"item_id":"missing","quantity":1}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if service.lastItem.ItemID != "" {
		t.Fatal("cart must not be touched for unknown books")
	}
}

func TestCartAddItemRejectsMissingItemID(t *testing.T) {
	service := &stubCartService{view: emptyView()}
	handler := CartAddItem(service, &stubBooksService{}, nil)

	body := `{"quantity":1}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateItemForwardsQuantity(t *testing.T) {
	service := &stubCartService{view: emptyView()}
	handler := CartUpdateItem(service, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/b1", strings.NewReader(`{"quantity":0}`))
	req = withSession(withURLParam(req, "itemId", "b1"), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if service.lastItemID != "b1" || service.lastQty != 0 {
		t.Fatalf("update not forwarded: id=%q qty=%d", service.lastItemID, service.lastQty)
	}
}

func TestCartUpdateItemRequiresQuantity(t *testing.T) {
	handler := CartUpdateItem(&stubCartService{view: emptyView()}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/b1", strings.NewReader(`{}`))
	req = withSession(withURLParam(req, "itemId", "b1"), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartRemoveItem(t *testing.T) {
	service := &stubCartService{view: emptyView()}
	handler := CartRemoveItem(service, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/b1", nil)
	req = withSession(withURLParam(req, "itemId", "b1"), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if service.lastItemID != "b1" {
		t.Fatalf("remove not forwarded: %q", service.lastItemID)
	}
}

func TestCartClear(t *testing.T) {
	service := &stubCartService{view: emptyView()}
	handler := CartClear(service, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !service.cleared {
		t.Fatal("clear not forwarded")
	}
}

func TestCartSetVisibility(t *testing.T) {
	service := &stubCartService{view: emptyView()}
	handler := CartSetVisibility(service, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/visibility", strings.NewReader(`{"open":true}`)), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !service.lastOpen {
		t.Fatal("visibility not forwarded")
	}
}

func TestCartViewEnvelopeShape(t *testing.T) {
	view := &cartsvc.View{
		Lines:      []cartsvc.Line{{ItemID: "b1", Title: "First Light", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 3}},
		ItemCount:  3,
		TotalPrice: decimal.RequireFromString("59.97"),
	}
	handler := CartFetch(&stubCartService{view: view}, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	var envelope struct {
		Data struct {
			Lines []struct {
				ID       string `json:"id"`
				Quantity int    `json:"quantity"`
			} `json:"lines"`
			TotalItemCount int    `json:"total_item_count"`
			TotalPrice     string `json:"total_price"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalItemCount != 3 {
		t.Fatalf("unexpected item count %d", envelope.Data.TotalItemCount)
	}
	if envelope.Data.TotalPrice != "59.97" {
		t.Fatalf("unexpected total %q", envelope.Data.TotalPrice)
	}
	if len(envelope.Data.Lines) != 1 || envelope.Data.Lines[0].ID != "b1" {
		t.Fatalf("unexpected lines %+v", envelope.Data.Lines)
	}
}
