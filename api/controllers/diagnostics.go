package controllers

import (
	"net/http"

	"github.com/inkwellpress/inkwell-backend/api/responses"
	"github.com/inkwellpress/inkwell-backend/internal/diagnostics"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

// DatabaseDiagnostics runs the connectivity report. The report itself
// carries per-check failures; only a wholly broken service errors here.
func DatabaseDiagnostics(svc diagnostics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "diagnostics service unavailable"))
			return
		}

		report, err := svc.Run(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
