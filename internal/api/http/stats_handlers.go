package http

import (
	"database/sql"
	"net/http"

	"github.com/paperforge/paperforge/internal/auth"
	"github.com/paperforge/paperforge/internal/stats"
)

// GET /stats
func StatsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := stats.ForOwner(r.Context(), db, auth.UserIDFromContext(r.Context()))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, o)
	}
}
