package controllers

import (
	"net/http"

	"github.com/inkwellpress/inkwell-backend/api/responses"
	"github.com/inkwellpress/inkwell-backend/api/validators"
	"github.com/inkwellpress/inkwell-backend/internal/contact"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

type contactSubmitRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=300"`
	Message string `json:"message" validate:"required,max=10000"`
}

// ContactSubmit accepts a contact form submission. Payloads that fail
// validation are rejected before anything downstream runs.
func ContactSubmit(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var payload contactSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		msg, err := svc.Submit(r.Context(), contact.Submission{
			Name:    payload.Name,
			Email:   payload.Email,
			Subject: payload.Subject,
			Message: payload.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, msg)
	}
}
