package paper

import "errors"

var (
	// ErrNoQuestions means the subject has no questions at all; assembly
	// cannot start.
	ErrNoQuestions = errors.New("no questions available for subject")

	// ErrItemNotFound means the position/subpart does not exist on the paper.
	ErrItemNotFound = errors.New("paper item not found")

	// ErrNoAlternative means a replace found no candidate; the item is left
	// unchanged.
	ErrNoAlternative = errors.New("no alternative question found")

	ErrPaperNotFound = errors.New("paper not found")
)
