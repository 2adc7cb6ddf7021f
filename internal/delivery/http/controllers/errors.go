package controllers

import (
	"log/slog"
	"net/http"

	h "evently/internal/delivery/http/helpers"
	"evently/internal/domain"
)

// writeError logs unexpected failures and writes err as a JSON error response.
func writeError(logger *slog.Logger, exposeInternal bool, w http.ResponseWriter, r *http.Request, err error) {
	if domain.KindOf(err) == domain.KindServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	h.WriteError(w, err, exposeInternal)
}
