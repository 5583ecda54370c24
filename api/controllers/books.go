package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellpress/inkwell-backend/api/responses"
	"github.com/inkwellpress/inkwell-backend/internal/books"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

// BookList serves the catalog; ?featured=true narrows to featured titles.
func BookList(svc books.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "books service unavailable"))
			return
		}

		featuredOnly := r.URL.Query().Get("featured") == "true"
		rows, err := svc.List(r.Context(), featuredOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func BookDetail(svc books.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "books service unavailable"))
			return
		}

		book, err := svc.Get(r.Context(), chi.URLParam(r, "bookId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, book)
	}
}
