package handlers

import (
	"net/http"

	"schooldb/internal/config"
	"schooldb/internal/services/session"
)

func Health(cfg config.Cfg, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"env":      cfg.App.Env,
			"upstream": cfg.API.BaseURL,
			"sessions": reg.Count(),
		})
	}
}
