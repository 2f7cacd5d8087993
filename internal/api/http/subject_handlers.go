package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paperforge/paperforge/internal/auth"
	"github.com/paperforge/paperforge/internal/subject"
)

// POST /subjects {name, class_name, semester?}
func CreateSubjectHandler(store *subject.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name      string `json:"name"`
			ClassName string `json:"class_name"`
			Semester  string `json:"semester"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.ClassName == "" {
			http.Error(w, "name and class_name required", http.StatusBadRequest)
			return
		}
		sub, err := store.Create(r.Context(), subject.Subject{
			UserID:    auth.UserIDFromContext(r.Context()),
			Name:      req.Name,
			ClassName: req.ClassName,
			Semester:  req.Semester,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}

// GET /subjects
func ListSubjectsHandler(store *subject.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := store.List(r.Context(), auth.UserIDFromContext(r.Context()))
		if err != nil {
			writeErr(w, err)
			return
		}
		if subs == nil {
			subs = []subject.Subject{}
		}
		writeJSON(w, http.StatusOK, subs)
	}
}

// DELETE /subjects/{subjectID}
func DeleteSubjectHandler(store *subject.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "subjectID")
		if err := store.Delete(r.Context(), auth.UserIDFromContext(r.Context()), id); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
