package paper

import (
	"fmt"
	"strings"
)

// ExportText renders a paper as the plain-text handout format. Questions
// never paired at selection time print as-is; combined picks get an explicit
// marker line.
func ExportText(p Paper) (filename, content string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Question Paper - %s\n", p.ExamType)
	fmt.Fprintf(&b, "Class: %s\n", p.ClassName)
	sem := p.Semester
	if sem == "" {
		sem = "N/A"
	}
	fmt.Fprintf(&b, "Semester: %s\n\n", sem)

	for _, it := range p.Items {
		if it.QuestionText == "" {
			continue
		}
		note := ""
		if strings.Contains(it.QuestionText, strings.TrimSpace(combinedMarker)) {
			note = " [Combined Question]"
		}
		fmt.Fprintf(&b, "%s. %s\n   Marks: %d, Bloom's: %s%s\n\n",
			it.Subpart, it.QuestionText, it.Marks, it.BloomsLevel, note)
	}
	return fmt.Sprintf("paper_%s.txt", p.ID), b.String()
}
