package paper

import (
	"strings"
	"testing"
)

func TestExportText(t *testing.T) {
	p := Paper{
		ID:        "p1",
		ClassName: "CS3A",
		ExamType:  "Midterm",
		Semester:  "S1",
		Items: []Item{
			{Position: 1, Subpart: "a", Marks: 5, BloomsLevel: "Understand", QuestionText: "Explain normal forms."},
			{Position: 1, Subpart: "b", Marks: 13, BloomsLevel: "Apply", QuestionText: " [COMBINED] Draw an ER diagram. Explain joins."},
			{Position: 2, Subpart: "a", Marks: 5, BloomsLevel: "Remember"}, // unfilled slot: skipped
		},
	}
	filename, content := ExportText(p)
	if filename != "paper_p1.txt" {
		t.Fatalf("filename: %q", filename)
	}
	if !strings.Contains(content, "Question Paper - Midterm") ||
		!strings.Contains(content, "Class: CS3A") ||
		!strings.Contains(content, "Semester: S1") {
		t.Fatalf("missing header:\n%s", content)
	}
	if !strings.Contains(content, "Explain normal forms.") {
		t.Fatalf("missing question:\n%s", content)
	}
	if !strings.Contains(content, "[Combined Question]") {
		t.Fatalf("combined note missing:\n%s", content)
	}
	if strings.Count(content, "Marks:") != 2 {
		t.Fatalf("unfilled item should be skipped:\n%s", content)
	}

	// No semester set prints the placeholder.
	p.Semester = ""
	_, content = ExportText(p)
	if !strings.Contains(content, "Semester: N/A") {
		t.Fatalf("missing N/A semester:\n%s", content)
	}
}
