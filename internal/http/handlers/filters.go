package handlers

import (
	"net/http"

	"schooldb/internal/services/filters"
)

// ListRegions proxies the region dictionary
func ListRegions(svc *filters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regions, err := svc.Regions(r.Context())
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": regions})
	}
}

// ListFederalDistricts proxies the federal district dictionary
func ListFederalDistricts(svc *filters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		districts, err := svc.FederalDistricts(r.Context())
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": districts})
	}
}

// ListFilters returns both dictionaries in one response
func ListFilters(svc *filters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := svc.Load(r.Context())
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cat)
	}
}
