package middlewarex

import (
	"net/http"

	"schooldb/internal/services/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionLookup resolves the {id} route parameter to a live session
func SessionLookup(reg *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				http.Error(w, "invalid session id", http.StatusBadRequest)
				return
			}

			svc, err := reg.Get(id)
			if err != nil {
				http.Error(w, "session not found", http.StatusNotFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), id, svc)))
		})
	}
}
