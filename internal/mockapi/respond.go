package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/brisa-edu/brisa-client/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail answers the way the resource endpoints do: {"detail": msg}.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// writeEnvelope answers the way the auth endpoints do.
func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, models.Envelope[any]{Status: models.StatusSuccess, Message: message, Data: data})
}

func writeEnvelopeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.Envelope[any]{Status: models.StatusError, Message: message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func urlInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, name+" must be an integer")
		return 0, false
	}
	return n, true
}

// queryInt returns nil when the parameter is absent or not a number.
func queryInt(r *http.Request, name string) *int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return nil
	}
	return &n
}

func queryString(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	return &v
}

func queryBool(r *http.Request, name string) *bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	if err != nil {
		return nil
	}
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
