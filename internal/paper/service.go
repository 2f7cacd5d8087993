package paper

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service runs paper assembly and the accept/replace lifecycle.
type Service struct {
	store     Store
	questions QuestionRepo
	selector  *Selector

	paperLocks    *keyedMutex
	questionLocks *keyedMutex
}

func NewService(store Store, questions QuestionRepo, selector *Selector) *Service {
	if selector == nil {
		selector = NewSelector(nil)
	}
	return &Service{
		store:         store,
		questions:     questions,
		selector:      selector,
		paperLocks:    newKeyedMutex(),
		questionLocks: newKeyedMutex(),
	}
}

// Generate assembles one paper: one item per subpart, in slot order,
// positions numbered from 1. Each subpart independently runs the candidate
// filter and the selector; questions picked earlier in the same paper are not
// excluded from later subparts (only historical usage is). Usage counters are
// untouched here; they move on acceptance.
func (s *Service) Generate(ctx context.Context, ownerID string, req GenerateRequest) (Paper, error) {
	n, err := s.questions.CountBySubject(ctx, ownerID, req.SubjectID)
	if err != nil {
		return Paper{}, err
	}
	if n == 0 {
		return Paper{}, ErrNoQuestions
	}

	p := Paper{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		SubjectID: req.SubjectID,
		ClassName: req.ClassName,
		ExamType:  req.ExamType,
		Semester:  req.Semester,
		Structure: req.Structure,
		CreatedAt: time.Now().Unix(),
	}

	for idx, slot := range req.Structure {
		position := idx + 1
		for _, sp := range slot.Subparts {
			it := Item{
				Seq:         len(p.Items),
				Position:    position,
				Subpart:     sp.Label,
				ModuleNo:    slot.ModuleNo,
				Marks:       sp.Marks,
				BloomsLevel: sp.BloomsLevel,
			}
			cands, err := candidates(ctx, s.questions, ownerID, req.SubjectID,
				slot.ModuleNo, sp.BloomsLevel, req.Semester, req.ExamType, req.AllowRepeat)
			if err != nil {
				return Paper{}, err
			}
			if sel, ok := s.selector.Pick(cands, sp.Marks); ok {
				it.QuestionID = sel.First.ID
				it.QuestionText = sel.DisplayText()
				it.ActualMarks = sel.ActualMarks()
			}
			p.Items = append(p.Items, it)
		}
	}

	if err := s.store.PutPaper(ctx, p); err != nil {
		return Paper{}, err
	}
	return p, nil
}

// Accept marks an item accepted and credits the referenced question's usage,
// stamping its last-used markers from the paper. A combined pick credits only
// its referenced first question. Re-accepting an already accepted item is a
// no-op, so usage is never double-counted.
func (s *Service) Accept(ctx context.Context, ownerID, paperID string, position int, subpart *string) error {
	s.paperLocks.lock(paperID)
	defer s.paperLocks.unlock(paperID)

	p, err := s.store.GetPaper(ctx, ownerID, paperID)
	if err != nil {
		return err
	}
	it, err := s.store.GetItem(ctx, ownerID, paperID, position, subpart)
	if err != nil {
		return err
	}
	if it.Accepted {
		return nil
	}
	// Credit usage before flipping the flag: a failed credit must leave the
	// item unaccepted so the caller can retry.
	if it.QuestionID != "" {
		s.questionLocks.lock(it.QuestionID)
		defer s.questionLocks.unlock(it.QuestionID)
		if err := s.questions.RecordUse(ctx, it.QuestionID, p.Semester, p.ExamType); err != nil {
			return err
		}
	}
	it.Accepted = true
	return s.store.UpdateItem(ctx, paperID, it)
}

// Replace re-runs selection for one item, targeting the item's stored marks
// (the original slot target) and level, with repeat avoidance always on. The
// new pick replaces the question reference and clears acceptance; on
// ErrNoAlternative the item keeps its previous state.
func (s *Service) Replace(ctx context.Context, ownerID, paperID string, position int, subpart string) (Item, error) {
	s.paperLocks.lock(paperID)
	defer s.paperLocks.unlock(paperID)

	p, err := s.store.GetPaper(ctx, ownerID, paperID)
	if err != nil {
		return Item{}, err
	}
	it, err := s.store.GetItem(ctx, ownerID, paperID, position, &subpart)
	if err != nil {
		return Item{}, err
	}

	cands, err := candidates(ctx, s.questions, ownerID, p.SubjectID,
		it.ModuleNo, it.BloomsLevel, p.Semester, p.ExamType, false)
	if err != nil {
		return Item{}, err
	}
	sel, ok := s.selector.Pick(cands, it.Marks)
	if !ok {
		return Item{}, ErrNoAlternative
	}

	it.QuestionID = sel.First.ID
	it.ReplacedBy = sel.First.ID
	it.QuestionText = sel.DisplayText()
	it.ActualMarks = sel.ActualMarks()
	it.Accepted = false
	if err := s.store.UpdateItem(ctx, paperID, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Get is a read-only projection of a paper and its items.
func (s *Service) Get(ctx context.Context, ownerID, paperID string) (Paper, error) {
	return s.store.GetPaper(ctx, ownerID, paperID)
}

func (s *Service) List(ctx context.Context, ownerID, subjectID string) ([]Paper, error) {
	return s.store.ListPapers(ctx, ownerID, subjectID)
}
