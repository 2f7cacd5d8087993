package paper

import (
	"context"

	"github.com/paperforge/paperforge/internal/question"
)

// QuestionRepo is the slice of the question bank the engine needs.
type QuestionRepo interface {
	FindQuestions(ctx context.Context, ownerID, subjectID string, f question.Filter) ([]question.Question, error)
	CountBySubject(ctx context.Context, ownerID, subjectID string) (int, error)
	RecordUse(ctx context.Context, id, semester, examType string) error
}

// Store persists papers and their items.
type Store interface {
	PutPaper(ctx context.Context, p Paper) error
	GetPaper(ctx context.Context, ownerID, id string) (Paper, error)
	ListPapers(ctx context.Context, ownerID, subjectID string) ([]Paper, error)

	// GetItem locates an item by position; a nil subpart matches the first
	// item at that position in assembly order.
	GetItem(ctx context.Context, ownerID, paperID string, position int, subpart *string) (Item, error)
	UpdateItem(ctx context.Context, paperID string, it Item) error
}
