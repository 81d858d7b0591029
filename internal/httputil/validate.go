package httputil

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validator is the shared request validator. validator.Validate is safe for
// concurrent use and caches struct metadata, so one instance serves all handlers.
var Validator = validator.New()

// ValidationError writes a 400 response for a failed struct validation.
func ValidationError(log *slog.Logger, w http.ResponseWriter, err error) {
	log.Warn("request validation failed", "err", err)
	http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
}
