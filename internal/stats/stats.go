package stats

import (
	"context"
	"database/sql"
)

type SubjectStats struct {
	SubjectID         string `json:"subject_id"`
	Name              string `json:"name"`
	ClassName         string `json:"class_name"`
	Semester          string `json:"semester,omitempty"`
	TotalQuestions    int    `json:"total_questions"`
	VerifiedQuestions int    `json:"verified_questions"`
	TotalPapers       int    `json:"total_papers"`
}

type Overview struct {
	TotalSubjects     int            `json:"total_subjects"`
	TotalQuestions    int            `json:"total_questions"`
	VerifiedQuestions int            `json:"verified_questions"`
	TotalPapers       int            `json:"total_papers"`
	Subjects          []SubjectStats `json:"subjects"`
}

// ForOwner aggregates bank and paper counts for one account.
func ForOwner(ctx context.Context, db *sql.DB, ownerID string) (Overview, error) {
	var o Overview
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions WHERE user_id=$1`, ownerID).Scan(&o.TotalQuestions); err != nil {
		return Overview{}, err
	}
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions WHERE user_id=$1 AND verified=TRUE`, ownerID).Scan(&o.VerifiedQuestions); err != nil {
		return Overview{}, err
	}
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM papers WHERE user_id=$1`, ownerID).Scan(&o.TotalPapers); err != nil {
		return Overview{}, err
	}

	rows, err := db.QueryContext(ctx, `SELECT s.id, s.name, s.class_name, s.semester,
			(SELECT COUNT(*) FROM questions q WHERE q.subject_id = s.id),
			(SELECT COUNT(*) FROM questions q WHERE q.subject_id = s.id AND q.verified=TRUE),
			(SELECT COUNT(*) FROM papers p WHERE p.subject_id = s.id)
		FROM subjects s WHERE s.user_id=$1 ORDER BY s.created_at ASC`, ownerID)
	if err != nil {
		return Overview{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var ss SubjectStats
		if err := rows.Scan(&ss.SubjectID, &ss.Name, &ss.ClassName, &ss.Semester,
			&ss.TotalQuestions, &ss.VerifiedQuestions, &ss.TotalPapers); err != nil {
			return Overview{}, err
		}
		o.Subjects = append(o.Subjects, ss)
	}
	o.TotalSubjects = len(o.Subjects)
	return o, rows.Err()
}
