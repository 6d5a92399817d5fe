package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/crucial707/equipment-registry/internal/web"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// NotFound renders the 404 page. Also used as the router's NotFound handler.
func (h *EquipmentHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, http.StatusNotFound, web.PageNotFound, map[string]interface{}{})
}

// ServerError logs err and renders the 500 page.
func (h *EquipmentHandler) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().ErrorContext(r.Context(), "request failed",
		"request_id", chimw.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err)
	h.Views.Render(w, http.StatusInternalServerError, web.PageError, map[string]interface{}{})
}

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
