package paper

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/paperforge/paperforge/internal/question"
)

func newTestService(repo *fakeQuestionRepo) *Service {
	return NewService(NewMemoryStore(), repo, seeded(7))
}

func TestGenerateEmptyBank(t *testing.T) {
	svc := newTestService(newFakeQuestionRepo())
	_, err := svc.Generate(context.Background(), owner, GenerateRequest{
		SubjectID: subj,
		ExamType:  "Midterm",
		Structure: []Slot{{ModuleNo: 1, Subparts: []Subpart{{Label: "a", Marks: 5}}}},
	})
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("want ErrNoQuestions, got %v", err)
	}
}

func TestGenerateCombinedAndExact(t *testing.T) {
	repo := newFakeQuestionRepo()
	for i, m := range []int{2, 5, 5, 8, 10} {
		repo.add(bankQuestion(string(rune('a'+i)), 1, question.LevelUnderstand, m))
	}
	svc := newTestService(repo)

	p, err := svc.Generate(context.Background(), owner, GenerateRequest{
		SubjectID: subj, ClassName: "CS3A", ExamType: "Midterm", Semester: "S1",
		Structure: []Slot{{ModuleNo: 1, Subparts: []Subpart{
			{Label: "a", Marks: 13, BloomsLevel: question.LevelUnderstand},
			{Label: "b", Marks: 5, BloomsLevel: question.LevelUnderstand},
		}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(p.Items))
	}

	combined := p.Items[0]
	if combined.Position != 1 || combined.Subpart != "a" {
		t.Fatalf("item order wrong: %+v", combined)
	}
	if combined.Marks != 13 || combined.ActualMarks != 13 {
		t.Fatalf("combined marks: %+v", combined)
	}
	if !strings.Contains(combined.QuestionText, "[COMBINED]") {
		t.Fatalf("want combined display text, got %q", combined.QuestionText)
	}
	if combined.QuestionID == "" {
		t.Fatal("combined item must reference its first question")
	}

	exact := p.Items[1]
	if exact.Marks != 5 || exact.ActualMarks != 5 || strings.Contains(exact.QuestionText, "[COMBINED]") {
		t.Fatalf("exact pick: %+v", exact)
	}
}

func TestGenerateClosestFitKeepsTargetMarks(t *testing.T) {
	repo := newFakeQuestionRepo()
	repo.add(bankQuestion("only", 1, question.LevelApply, 3))
	svc := newTestService(repo)

	p, err := svc.Generate(context.Background(), owner, GenerateRequest{
		SubjectID: subj, ExamType: "Final",
		Structure: []Slot{{ModuleNo: 1, Subparts: []Subpart{{Label: "a", Marks: 10, BloomsLevel: question.LevelApply}}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	it := p.Items[0]
	// The displayed weight stays the slot target even though the underlying
	// question is worth 3.
	if it.Marks != 10 {
		t.Fatalf("want recorded marks 10, got %d", it.Marks)
	}
	if it.ActualMarks != 3 {
		t.Fatalf("want actual marks 3, got %d", it.ActualMarks)
	}
	if it.QuestionID != "only" {
		t.Fatalf("want closest-fit question, got %q", it.QuestionID)
	}
}

func generateSimplePaper(t *testing.T, svc *Service, allowRepeat bool) Paper {
	t.Helper()
	p, err := svc.Generate(context.Background(), owner, GenerateRequest{
		SubjectID: subj, ClassName: "CS3A", ExamType: "Midterm", Semester: "S1",
		AllowRepeat: allowRepeat,
		Structure: []Slot{{ModuleNo: 1, Subparts: []Subpart{
			{Label: "a", Marks: 5, BloomsLevel: question.LevelUnderstand},
		}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestAcceptCreditsUsage(t *testing.T) {
	repo := newFakeQuestionRepo()
	repo.add(bankQuestion("q1", 1, question.LevelUnderstand, 5))
	svc := newTestService(repo)
	p := generateSimplePaper(t, svc, false)

	if err := svc.Accept(context.Background(), owner, p.ID, 1, nil); err != nil {
		t.Fatal(err)
	}
	got := repo.get("q1")
	if got.UsedCount != 1 {
		t.Fatalf("want used_count 1, got %d", got.UsedCount)
	}
	// Last-used markers come from the paper, not the slot.
	if got.LastUsedSemester != "S1" || got.LastUsedExamType != "Midterm" {
		t.Fatalf("last-used stamps wrong: %+v", got)
	}

	// Re-accept must not double-credit.
	if err := svc.Accept(context.Background(), owner, p.ID, 1, nil); err != nil {
		t.Fatal(err)
	}
	if got := repo.get("q1"); got.UsedCount != 1 {
		t.Fatalf("re-accept double-credited: used_count %d", got.UsedCount)
	}
}

func TestAcceptUsageFailureLeavesItemUnaccepted(t *testing.T) {
	repo := newFakeQuestionRepo()
	repo.add(bankQuestion("q1", 1, question.LevelUnderstand, 5))
	svc := newTestService(repo)
	p := generateSimplePaper(t, svc, false)

	// The referenced question vanishes between generation and acceptance;
	// the failed credit must not leave the item accepted.
	repo.removeAll()
	if err := svc.Accept(context.Background(), owner, p.ID, 1, nil); err == nil {
		t.Fatal("accept must fail when the usage credit fails")
	}
	stored, err := svc.Get(context.Background(), owner, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Items[0].Accepted {
		t.Fatal("failed accept left the item accepted")
	}

	// Once the question is back, a retry goes through and credits exactly once.
	repo.add(bankQuestion("q1", 1, question.LevelUnderstand, 5))
	if err := svc.Accept(context.Background(), owner, p.ID, 1, nil); err != nil {
		t.Fatal(err)
	}
	if got := repo.get("q1"); got.UsedCount != 1 {
		t.Fatalf("retry after failure credited %d times", got.UsedCount)
	}
}

func TestAcceptMissingItem(t *testing.T) {
	repo := newFakeQuestionRepo()
	repo.add(bankQuestion("q1", 1, question.LevelUnderstand, 5))
	svc := newTestService(repo)
	p := generateSimplePaper(t, svc, false)

	if err := svc.Accept(context.Background(), owner, p.ID, 99, nil); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("want ErrItemNotFound, got %v", err)
	}
	sub := "zz"
	if err := svc.Accept(context.Background(), owner, p.ID, 1, &sub); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("want ErrItemNotFound for unknown subpart, got %v", err)
	}
}

func TestConcurrentAcceptSingleCredit(t *testing.T) {
	repo := newFakeQuestionRepo()
	repo.add(bankQuestion("q1", 1, question.LevelUnderstand, 5))
	svc := newTestService(repo)
	p := generateSimplePaper(t, svc, false)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Accept(context.Background(), owner, p.ID, 1, nil)
		}()
	}
	wg.Wait()
	if got := repo.get("q1"); got.UsedCount != 1 {
		t.Fatalf("concurrent accepts credited %d times", got.UsedCount)
	}
}

func TestReplaceSwapsAndClearsAcceptance(t *testing.T) {
	repo := newFakeQuestionRepo()
	repo.add(bankQuestion("q1", 1, question.LevelUnderstand, 5))
	repo.add(bankQuestion("q2", 1, question.LevelUnderstand, 5))
	svc := newTestService(repo)
	p := generateSimplePaper(t, svc, false)

	if err := svc.Accept(context.Background(), owner, p.ID, 1, nil); err != nil {
		t.Fatal(err)
	}
	originalID := p.Items[0].QuestionID

	it, err := svc.Replace(context.Background(), owner, p.ID, 1, "a")
	if err != nil {
		t.Fatal(err)
	}
	if it.Accepted {
		t.Fatal("replace must clear acceptance")
	}
	if it.ReplacedBy != it.QuestionID {
		t.Fatalf("replaced-by marker mismatch: %+v", it)
	}
	// The accepted original was stamped with the paper's semester/exam type,
	// so the forced no-repeat filter now steers away from it.
	if it.QuestionID == originalID {
		t.Fatalf("replace returned the just-used question %q", originalID)
	}
	// Replacement targets the original slot marks.
	if it.Marks != 5 {
		t.Fatalf("replace changed target marks: %d", it.Marks)
	}

	stored, err := svc.Get(context.Background(), owner, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Items[0].QuestionID != it.QuestionID || stored.Items[0].Accepted {
		t.Fatalf("stored item not updated: %+v", stored.Items[0])
	}
}

func TestReplaceDuplicateSubpartLabelsTouchesFirstOnly(t *testing.T) {
	repo := newFakeQuestionRepo()
	repo.add(bankQuestion("q1", 1, question.LevelUnderstand, 5))
	repo.add(bankQuestion("q2", 1, question.LevelUnderstand, 2))
	repo.add(bankQuestion("q3", 1, question.LevelUnderstand, 5))
	repo.add(bankQuestion("q4", 1, question.LevelUnderstand, 2))
	svc := newTestService(repo)

	// Two subparts at the same position with the same (empty) label: items
	// are distinguished only by assembly order.
	p, err := svc.Generate(context.Background(), owner, GenerateRequest{
		SubjectID: subj, ExamType: "Midterm", Semester: "S1",
		Structure: []Slot{{ModuleNo: 1, Subparts: []Subpart{
			{Marks: 5, BloomsLevel: question.LevelUnderstand},
			{Marks: 2, BloomsLevel: question.LevelUnderstand},
		}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	second := p.Items[1]

	if _, err := svc.Replace(context.Background(), owner, p.ID, 1, ""); err != nil {
		t.Fatal(err)
	}
	stored, err := svc.Get(context.Background(), owner, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Items[0].ReplacedBy == "" {
		t.Fatalf("first item not replaced: %+v", stored.Items[0])
	}
	if stored.Items[1] != second {
		t.Fatalf("replace leaked onto the second item: %+v", stored.Items[1])
	}
}

func TestReplaceNoAlternativeLeavesItem(t *testing.T) {
	repo := newFakeQuestionRepo()
	repo.add(bankQuestion("q1", 1, question.LevelUnderstand, 5))
	svc := newTestService(repo)
	p := generateSimplePaper(t, svc, false)
	before := p.Items[0]

	repo.removeAll()
	_, err := svc.Replace(context.Background(), owner, p.ID, 1, "a")
	if !errors.Is(err, ErrNoAlternative) {
		t.Fatalf("want ErrNoAlternative, got %v", err)
	}

	stored, err := svc.Get(context.Background(), owner, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Items[0] != before {
		t.Fatalf("failed replace mutated item: %+v", stored.Items[0])
	}
}

func TestReplaceMissingItem(t *testing.T) {
	repo := newFakeQuestionRepo()
	repo.add(bankQuestion("q1", 1, question.LevelUnderstand, 5))
	svc := newTestService(repo)
	p := generateSimplePaper(t, svc, false)

	if _, err := svc.Replace(context.Background(), owner, p.ID, 3, "a"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("want ErrItemNotFound, got %v", err)
	}
}

func TestGetUnknownPaper(t *testing.T) {
	svc := newTestService(newFakeQuestionRepo())
	if _, err := svc.Get(context.Background(), owner, "nope"); !errors.Is(err, ErrPaperNotFound) {
		t.Fatalf("want ErrPaperNotFound, got %v", err)
	}
}
