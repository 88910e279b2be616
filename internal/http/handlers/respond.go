package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"schooldb/internal/schoolsapi"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeUpstreamError maps a registry failure onto a gateway-style status
func writeUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *schoolsapi.APIError
	var netErr *schoolsapi.NetworkError
	switch {
	case errors.As(err, &apiErr):
		http.Error(w, "registry rejected request: "+apiErr.Message, http.StatusUnprocessableEntity)
	case errors.As(err, &netErr):
		http.Error(w, "registry unavailable: "+netErr.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
