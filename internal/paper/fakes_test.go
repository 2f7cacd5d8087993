package paper

import (
	"context"
	"sync"

	"github.com/paperforge/paperforge/internal/question"
)

/* ---------------- In-memory fake that satisfies QuestionRepo ---------------- */

type fakeQuestionRepo struct {
	mu    sync.Mutex
	order []string
	byID  map[string]*question.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{byID: map[string]*question.Question{}}
}

func (f *fakeQuestionRepo) add(q question.Question) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[q.ID]; !ok {
		f.order = append(f.order, q.ID)
	}
	cp := q
	f.byID[q.ID] = &cp
}

func (f *fakeQuestionRepo) removeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = nil
	f.byID = map[string]*question.Question{}
}

func (f *fakeQuestionRepo) get(id string) question.Question {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.byID[id]
}

func (f *fakeQuestionRepo) FindQuestions(ctx context.Context, ownerID, subjectID string, flt question.Filter) ([]question.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []question.Question
	for _, id := range f.order {
		q := f.byID[id]
		if q.UserID != ownerID || q.SubjectID != subjectID {
			continue
		}
		if flt.ExcludeSemester != "" && q.LastUsedSemester != "" && q.LastUsedSemester == flt.ExcludeSemester {
			continue
		}
		if flt.ExcludeExamType != "" && q.LastUsedExamType != "" && q.LastUsedExamType == flt.ExcludeExamType {
			continue
		}
		if flt.ModuleNo != nil && q.ModuleNo != *flt.ModuleNo {
			continue
		}
		if flt.BloomsLevel != "" && q.BloomsLevel != flt.BloomsLevel {
			continue
		}
		out = append(out, *q)
	}
	// Mirror the SQL store's mark-ascending ordering (stable).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Marks > out[j].Marks; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) CountBySubject(ctx context.Context, ownerID, subjectID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, q := range f.byID {
		if q.UserID == ownerID && q.SubjectID == subjectID {
			n++
		}
	}
	return n, nil
}

func (f *fakeQuestionRepo) RecordUse(ctx context.Context, id, semester, examType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.byID[id]
	if !ok {
		return question.ErrNotFound
	}
	q.UsedCount++
	q.LastUsedSemester = semester
	q.LastUsedExamType = examType
	return nil
}
