package paper

import (
	"strings"

	"github.com/paperforge/paperforge/internal/question"
)

// Subpart is one labeled sub-question inside a slot, with its own target
// marks and Bloom's level.
type Subpart struct {
	Label       string `json:"label"`
	Marks       int    `json:"marks"`
	BloomsLevel string `json:"blooms_level"`
}

// Slot is one requested unit of the paper structure.
type Slot struct {
	ModuleNo int       `json:"module_no"`
	Subparts []Subpart `json:"subparts"`
}

// Item is one assembled unit of a paper.
//
// Marks always carries the slot's requested target, even when the closest-fit
// fallback picked a question with a different weight; ActualMarks carries what
// the selection is really worth. Callers decide which one to show.
type Item struct {
	// Seq is the item's assembly-order key within its paper; position and
	// subpart labels are not required to be unique.
	Seq int `json:"-"`

	Position    int    `json:"position"`
	Subpart     string `json:"subpart,omitempty"`
	ModuleNo    int    `json:"module_no"`
	Marks       int    `json:"marks"`
	ActualMarks int    `json:"actual_marks"`
	BloomsLevel string `json:"blooms_level"`

	// QuestionID references the selected question. For a combined pick it
	// references only the first of the two questions; the second lives on in
	// the display text alone.
	QuestionID   string `json:"question_id,omitempty"`
	QuestionText string `json:"question_text,omitempty"`

	Accepted   bool   `json:"accepted"`
	ReplacedBy string `json:"replaced_by,omitempty"`
}

type Paper struct {
	ID        string `json:"paper_id"`
	UserID    string `json:"-"`
	SubjectID string `json:"subject_id"`
	ClassName string `json:"class_name"`
	ExamType  string `json:"exam_type"`
	Semester  string `json:"semester,omitempty"`
	Structure []Slot `json:"structure"`
	Items     []Item `json:"items"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// GenerateRequest is the input to paper assembly.
type GenerateRequest struct {
	SubjectID   string `json:"subject_id"`
	ClassName   string `json:"class_name"`
	ExamType    string `json:"exam_type"`
	Semester    string `json:"semester"`
	Structure   []Slot `json:"structure"`
	AllowRepeat bool   `json:"allow_repeat"`
}

const combinedMarker = " [COMBINED] "

// Selection is the selector's outcome: a single question, or two questions
// combined to reach the target marks.
type Selection struct {
	First  question.Question
	Second *question.Question
}

func (s Selection) Combined() bool { return s.Second != nil }

func (s Selection) ActualMarks() int {
	if s.Second != nil {
		return s.First.Marks + s.Second.Marks
	}
	return s.First.Marks
}

// DisplayText is the single question's text, or the marked concatenation of
// both texts for a combined pick.
func (s Selection) DisplayText() string {
	if s.Second == nil {
		return s.First.Text
	}
	texts := make([]string, 0, 2)
	if s.First.Text != "" {
		texts = append(texts, s.First.Text)
	}
	if s.Second.Text != "" {
		texts = append(texts, s.Second.Text)
	}
	return combinedMarker + strings.Join(texts, " ")
}
