package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paperforge/paperforge/internal/paper"
	"github.com/paperforge/paperforge/internal/question"
	"github.com/paperforge/paperforge/internal/subject"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// httpStatus maps domain sentinels onto status codes; anything unknown is a 500.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, paper.ErrItemNotFound),
		errors.Is(err, paper.ErrPaperNotFound),
		errors.Is(err, subject.ErrNotFound),
		errors.Is(err, question.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, paper.ErrNoQuestions):
		return http.StatusBadRequest
	case errors.Is(err, paper.ErrNoAlternative):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), httpStatus(err))
}
