package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	middlewarex "schooldb/internal/http/middleware"
	"schooldb/internal/services/listing"
	"schooldb/internal/services/session"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// loadPayload is the body of a page load. Page is not bounded here: the
// list service clamps it.
type loadPayload struct {
	Page     int    `json:"page"`
	Count    int    `json:"count" validate:"gte=0,lte=100"`
	RegionID int    `json:"region_id" validate:"gte=0"`
	Status   string `json:"status" validate:"omitempty,oneof=all active inactive"`
	Append   bool   `json:"append"`
}

type sessionResponse struct {
	SessionID string        `json:"session_id"`
	State     listing.State `json:"state"`
}

// CreateSession starts a list session for a UI view
func CreateSession(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, svc := reg.Create()
		writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id.String(), State: svc.Snapshot()})
	}
}

// GetSession returns the current state of a session
func GetSession() http.HandlerFunc {
	return withSession(func(w http.ResponseWriter, r *http.Request, svc *listing.Service) {
		writeJSON(w, http.StatusOK, svc.Snapshot())
	})
}

// LoadPage runs a page load and returns the settled state. Registry
// failures are reported inside the state, not as an HTTP error.
func LoadPage() http.HandlerFunc {
	return withSession(func(w http.ResponseWriter, r *http.Request, svc *listing.Service) {
		var p loadPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(p); err != nil {
			http.Error(w, validationMessage(err), http.StatusBadRequest)
			return
		}

		st := svc.LoadPage(r.Context(), listing.LoadRequest{
			Page:     p.Page,
			PageSize: p.Count,
			RegionID: p.RegionID,
			Append:   p.Append,
			Status:   p.Status,
		})
		writeJSON(w, http.StatusOK, st)
	})
}

// ClearError resets the error message of a session
func ClearError() http.HandlerFunc {
	return withSession(func(w http.ResponseWriter, r *http.Request, svc *listing.Service) {
		writeJSON(w, http.StatusOK, svc.ClearError())
	})
}

// DiscardSession drops a session when its view goes away
func DiscardSession(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middlewarex.SessionID(r.Context())
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		if err := reg.Discard(id); err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				http.Error(w, "session not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func withSession(fn func(http.ResponseWriter, *http.Request, *listing.Service)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, ok := middlewarex.Session(r.Context())
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		fn(w, r, svc)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" failed "+fe.Tag())
	}
	return "invalid request: " + strings.Join(fields, ", ")
}
