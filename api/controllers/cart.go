package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellpress/inkwell-backend/api/middleware"
	"github.com/inkwellpress/inkwell-backend/api/responses"
	"github.com/inkwellpress/inkwell-backend/api/validators"
	"github.com/inkwellpress/inkwell-backend/internal/books"
	cartsvc "github.com/inkwellpress/inkwell-backend/internal/cart"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

type cartAddItemRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity"`
}

type cartUpdateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartVisibilityRequest struct {
	Open *bool `json:"open" validate:"required"`
}

// CartFetch returns the session's cart, hydrating it on first touch.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionFromRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartAddItem resolves the book from the catalog and merges it into the
// cart, so line snapshots always come from the canonical record.
func CartAddItem(svc cartsvc.Service, catalog books.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionFromRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "books service unavailable"))
			return
		}

		var payload cartAddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := catalog.Get(r.Context(), payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line := cartsvc.Line{
			ItemID:      book.ID,
			Title:       book.Title,
			Description: book.Description,
			CoverImage:  book.CoverImage,
			UnitPrice:   book.Price,
			Extra:       book.Extensions(),
		}

		view, err := svc.AddItem(r.Context(), sessionID, line, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionFromRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartUpdateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateQuantity(r.Context(), sessionID, chi.URLParam(r, "itemId"), *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionFromRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RemoveItem(r.Context(), sessionID, chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionFromRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartSetVisibility flips the open/closed drawer flag. UI state only, never
// persisted.
func CartSetVisibility(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionFromRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartVisibilityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.SetOpen(r.Context(), sessionID, *payload.Open)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func cartSessionFromRequest(r *http.Request, svc cartsvc.Service) (string, error) {
	if svc == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	sessionID := middleware.CartSessionFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart session missing")
	}
	return sessionID, nil
}
