package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/paperforge/paperforge/internal/auth"
	"github.com/paperforge/paperforge/internal/paper"
)

// POST /papers/generate
func GeneratePaperHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paper.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.SubjectID == "" || len(req.Structure) == 0 {
			http.Error(w, "subject_id and structure required", http.StatusBadRequest)
			return
		}
		p, err := svc.Generate(r.Context(), auth.UserIDFromContext(r.Context()), req)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// POST /papers/{paperID}/accept?position=&subpart=
func AcceptItemHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paperID := chi.URLParam(r, "paperID")
		position, err := strconv.Atoi(r.URL.Query().Get("position"))
		if err != nil {
			http.Error(w, "position required", http.StatusBadRequest)
			return
		}
		var subpart *string
		if v := r.URL.Query().Get("subpart"); v != "" {
			subpart = &v
		}
		if err := svc.Accept(r.Context(), auth.UserIDFromContext(r.Context()), paperID, position, subpart); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// POST /papers/{paperID}/replace {position, subpart}
func ReplaceItemHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paperID := chi.URLParam(r, "paperID")
		var req struct {
			Position int    `json:"position"`
			Subpart  string `json:"subpart"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		it, err := svc.Replace(r.Context(), auth.UserIDFromContext(r.Context()), paperID, req.Position, req.Subpart)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, it)
	}
}

// GET /papers/{paperID}/details
func PaperDetailsHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "paperID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// GET /papers/{paperID}/export
func ExportPaperHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "paperID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		filename, content := paper.ExportText(p)
		writeJSON(w, http.StatusOK, map[string]string{"filename": filename, "content": content})
	}
}

// GET /papers?subject_id=
func ListPapersHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjectID := r.URL.Query().Get("subject_id")
		if subjectID == "" {
			http.Error(w, "subject_id required", http.StatusBadRequest)
			return
		}
		papers, err := svc.List(r.Context(), auth.UserIDFromContext(r.Context()), subjectID)
		if err != nil {
			writeErr(w, err)
			return
		}
		if papers == nil {
			papers = []paper.Paper{}
		}
		writeJSON(w, http.StatusOK, papers)
	}
}
