package question

// Bloom's taxonomy levels used by the classifier and the paper engine.
const (
	LevelRemember   = "Remember"
	LevelUnderstand = "Understand"
	LevelApply      = "Apply"
	LevelAnalyze    = "Analyze"
	LevelEvaluate   = "Evaluate"
	LevelCreate     = "Create"
)

var Levels = []string{LevelRemember, LevelUnderstand, LevelApply, LevelAnalyze, LevelEvaluate, LevelCreate}

type Question struct {
	ID          string `json:"id"`
	UserID      string `json:"-"`
	SubjectID   string `json:"subject_id"`
	Text        string `json:"text"`
	ModuleNo    int    `json:"module_no"`
	Marks       int    `json:"marks"`
	BloomsLevel string `json:"blooms_level"`
	Verified    bool   `json:"verified"`
	UsedCount   int    `json:"used_count"`

	// Empty string means the question has never been used in that dimension.
	LastUsedSemester string `json:"last_used_semester,omitempty"`
	LastUsedExamType string `json:"last_used_exam_type,omitempty"`

	CreatedAt int64 `json:"created_at,omitempty"`
}

// Filter narrows a FindQuestions query. Nil pointer fields are ignored.
// ExcludeSemester / ExcludeExamType drop questions whose last-used history
// matches; questions with no history are always retained.
type Filter struct {
	ModuleNo     *int
	BloomsLevel  string
	Verified     *bool
	TextContains string

	ExcludeSemester string
	ExcludeExamType string
}
