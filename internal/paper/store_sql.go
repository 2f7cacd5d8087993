package paper

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// PutPaper writes the paper and all its items in one transaction; a paper is
// never committed with a partial item set.
func (s *SQLStore) PutPaper(ctx context.Context, p Paper) error {
	sj, err := json.Marshal(p.Structure)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO papers
		(id, user_id, subject_id, class_name, exam_type, semester, structure_json, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.UserID, p.SubjectID, p.ClassName, p.ExamType, p.Semester, string(sj), p.CreatedAt); err != nil {
		return err
	}
	for _, it := range p.Items {
		if _, err := tx.ExecContext(ctx, `INSERT INTO paper_items
			(paper_id, seq, position, subpart, module_no, marks, actual_marks, blooms_level, question_id, question_text, accepted, replaced_by)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			p.ID, it.Seq, it.Position, it.Subpart, it.ModuleNo, it.Marks, it.ActualMarks,
			it.BloomsLevel, it.QuestionID, it.QuestionText, it.Accepted, it.ReplacedBy); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) GetPaper(ctx context.Context, ownerID, id string) (Paper, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, user_id, subject_id, class_name, exam_type, semester, structure_json, created_at
		FROM papers WHERE id=$1 AND user_id=$2`, id, ownerID)
	p, err := scanPaper(row)
	if err != nil {
		return Paper{}, err
	}
	p.Items, err = s.itemsFor(ctx, p.ID)
	if err != nil {
		return Paper{}, err
	}
	return p, nil
}

func (s *SQLStore) ListPapers(ctx context.Context, ownerID, subjectID string) ([]Paper, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, subject_id, class_name, exam_type, semester, structure_json, created_at
		FROM papers WHERE user_id=$1 AND subject_id=$2 ORDER BY created_at ASC`, ownerID, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items, err = s.itemsFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *SQLStore) GetItem(ctx context.Context, ownerID, paperID string, position int, subpart *string) (Item, error) {
	query := `SELECT i.seq, i.position, i.subpart, i.module_no, i.marks, i.actual_marks, i.blooms_level, i.question_id, i.question_text, i.accepted, i.replaced_by
		FROM paper_items i JOIN papers p ON p.id = i.paper_id
		WHERE i.paper_id=$1 AND p.user_id=$2 AND i.position=$3`
	args := []any{paperID, ownerID, position}
	if subpart != nil {
		query += ` AND i.subpart=$4`
		args = append(args, *subpart)
	}
	query += ` ORDER BY i.seq ASC LIMIT 1`

	it, err := scanItem(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrItemNotFound
	}
	return it, err
}

func (s *SQLStore) UpdateItem(ctx context.Context, paperID string, it Item) error {
	res, err := s.db.ExecContext(ctx, `UPDATE paper_items
		SET question_id=$1, question_text=$2, actual_marks=$3, accepted=$4, replaced_by=$5
		WHERE paper_id=$6 AND seq=$7`,
		it.QuestionID, it.QuestionText, it.ActualMarks, it.Accepted, it.ReplacedBy,
		paperID, it.Seq)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *SQLStore) itemsFor(ctx context.Context, paperID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, position, subpart, module_no, marks, actual_marks, blooms_level, question_id, question_text, accepted, replaced_by
		FROM paper_items WHERE paper_id=$1 ORDER BY seq ASC`, paperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanPaper(row interface{ Scan(...any) error }) (Paper, error) {
	var p Paper
	var sj string
	err := row.Scan(&p.ID, &p.UserID, &p.SubjectID, &p.ClassName, &p.ExamType, &p.Semester, &sj, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Paper{}, ErrPaperNotFound
	}
	if err != nil {
		return Paper{}, err
	}
	if err := json.Unmarshal([]byte(sj), &p.Structure); err != nil {
		return Paper{}, err
	}
	return p, nil
}

func scanItem(row interface{ Scan(...any) error }) (Item, error) {
	var it Item
	err := row.Scan(&it.Seq, &it.Position, &it.Subpart, &it.ModuleNo, &it.Marks, &it.ActualMarks,
		&it.BloomsLevel, &it.QuestionID, &it.QuestionText, &it.Accepted, &it.ReplacedBy)
	return it, err
}
