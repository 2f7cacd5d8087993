package paper

import (
	"context"

	"github.com/paperforge/paperforge/internal/question"
)

// candidates narrows the subject's question bank for one subpart. The repeat
// filter drops questions last used in the requested semester and, separately,
// questions last used for the requested exam type. The module/level
// constraints then relax in two steps: module+level, module only, anything.
// An empty result means the repeat-filtered pool itself is empty.
func candidates(ctx context.Context, repo QuestionRepo, ownerID, subjectID string,
	moduleNo int, bloomsLevel, semester, examType string, allowRepeat bool) ([]question.Question, error) {

	base := question.Filter{}
	if !allowRepeat {
		base.ExcludeSemester = semester
		base.ExcludeExamType = examType
	}

	f := base
	f.ModuleNo = &moduleNo
	f.BloomsLevel = bloomsLevel
	out, err := repo.FindQuestions(ctx, ownerID, subjectID, f)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		return out, nil
	}

	// Relax the cognitive-level constraint.
	f = base
	f.ModuleNo = &moduleNo
	out, err = repo.FindQuestions(ctx, ownerID, subjectID, f)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		return out, nil
	}

	// Last resort: any question in the repeat-filtered pool.
	return repo.FindQuestions(ctx, ownerID, subjectID, base)
}
