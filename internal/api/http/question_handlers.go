package http

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paperforge/paperforge/internal/aigen"
	"github.com/paperforge/paperforge/internal/auth"
	"github.com/paperforge/paperforge/internal/question"
	"github.com/paperforge/paperforge/internal/subject"
)

// POST /questions/upload  multipart: subject_id, file (.csv or .txt, one question per line)
// Each extracted line runs through the labeler before it lands in the bank.
func UploadQuestionsHandler(subjects *subject.SQLStore, store *question.SQLStore, labeler question.Labeler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.UserIDFromContext(r.Context())
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			http.Error(w, "multipart form required", http.StatusBadRequest)
			return
		}
		subjectID := r.FormValue("subject_id")
		if _, err := subjects.Get(r.Context(), uid, subjectID); err != nil {
			writeErr(w, err)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		var lines []string
		switch strings.ToLower(filepath.Ext(hdr.Filename)) {
		case ".csv":
			lines, err = questionsFromCSV(f)
		case ".txt", ".md":
			lines, err = questionsFromText(f)
		default:
			http.Error(w, "unsupported file type (csv or txt)", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, "parse file: "+err.Error(), http.StatusBadRequest)
			return
		}

		created := []question.Question{}
		for _, text := range lines {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			// A failed classification still stores the question, unlabeled
			// and unverified, for manual labeling later.
			label, _ := labeler.Label(r.Context(), text)
			q, err := store.Insert(r.Context(), question.Question{
				UserID:      uid,
				SubjectID:   subjectID,
				Text:        text,
				ModuleNo:    label.ModuleNo,
				Marks:       label.Marks,
				BloomsLevel: label.BloomsLevel,
			})
			if err != nil {
				writeErr(w, err)
				return
			}
			created = append(created, q)
		}
		writeJSON(w, http.StatusOK, created)
	}
}

func questionsFromCSV(f io.Reader) ([]string, error) {
	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	records, err := rd.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	col := 0
	header := records[0]
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "question_text", "text":
			col = i
		}
	}
	var out []string
	for _, rec := range records[1:] {
		if col < len(rec) {
			out = append(out, rec[col])
		}
	}
	return out, nil
}

func questionsFromText(f io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// GET /questions?subject_id=&module_no=&blooms_level=&verified=&q=
func ListQuestionsHandler(store *question.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.UserIDFromContext(r.Context())
		subjectID := r.URL.Query().Get("subject_id")
		if subjectID == "" {
			http.Error(w, "subject_id required", http.StatusBadRequest)
			return
		}
		var f question.Filter
		if v := r.URL.Query().Get("module_no"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "bad module_no", http.StatusBadRequest)
				return
			}
			f.ModuleNo = &n
		}
		f.BloomsLevel = r.URL.Query().Get("blooms_level")
		if v := r.URL.Query().Get("verified"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "bad verified", http.StatusBadRequest)
				return
			}
			f.Verified = &b
		}
		f.TextContains = r.URL.Query().Get("q")

		qs, err := store.FindQuestions(r.Context(), uid, subjectID, f)
		if err != nil {
			writeErr(w, err)
			return
		}
		if qs == nil {
			qs = []question.Question{}
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

// POST /questions/ai-generate
func AIGenerateHandler(gen *aigen.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req aigen.DraftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		qs, err := gen.Draft(r.Context(), req)
		if err != nil {
			http.Error(w, "AI question generation failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string][]string{"questions": qs})
	}
}

// GET /questions/ai-status
func AIStatusHandler(gen *aigen.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"openai_available": gen.Available(),
			"providers": []map[string]any{
				{"name": "openai", "available": gen.Available()},
			},
		})
	}
}
