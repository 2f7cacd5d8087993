package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("question not found")

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const questionCols = `id, user_id, subject_id, text, module_no, marks, blooms_level, verified, used_count, last_used_semester, last_used_exam_type, created_at`

func scanQuestion(row interface{ Scan(...any) error }) (Question, error) {
	var q Question
	err := row.Scan(&q.ID, &q.UserID, &q.SubjectID, &q.Text, &q.ModuleNo, &q.Marks,
		&q.BloomsLevel, &q.Verified, &q.UsedCount, &q.LastUsedSemester, &q.LastUsedExamType, &q.CreatedAt)
	return q, err
}

func (s *SQLStore) Insert(ctx context.Context, q Question) (Question, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO questions
		(id, user_id, subject_id, text, module_no, marks, blooms_level, verified, used_count, last_used_semester, last_used_exam_type, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,0,'','',$9)`,
		q.ID, q.UserID, q.SubjectID, q.Text, q.ModuleNo, q.Marks, q.BloomsLevel, q.Verified, q.CreatedAt)
	if err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+questionCols+` FROM questions WHERE id=$1`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	return q, err
}

// FindQuestions is the single query capability the paper engine consumes.
func (s *SQLStore) FindQuestions(ctx context.Context, ownerID, subjectID string, f Filter) ([]Question, error) {
	var (
		where = []string{"user_id=$1", "subject_id=$2"}
		args  = []any{ownerID, subjectID}
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ExcludeSemester != "" {
		add("(last_used_semester <> $%d OR last_used_semester = '')", f.ExcludeSemester)
	}
	if f.ExcludeExamType != "" {
		add("(last_used_exam_type <> $%d OR last_used_exam_type = '')", f.ExcludeExamType)
	}
	if f.ModuleNo != nil {
		add("module_no = $%d", *f.ModuleNo)
	}
	if f.BloomsLevel != "" {
		add("blooms_level = $%d", f.BloomsLevel)
	}
	if f.Verified != nil {
		add("verified = $%d", *f.Verified)
	}
	if f.TextContains != "" {
		add("text LIKE $%d", "%"+f.TextContains+"%")
	}

	query := `SELECT ` + questionCols + ` FROM questions WHERE ` + strings.Join(where, " AND ") + ` ORDER BY marks ASC, created_at ASC`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) CountBySubject(ctx context.Context, ownerID, subjectID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions WHERE user_id=$1 AND subject_id=$2`, ownerID, subjectID).Scan(&n)
	return n, err
}

// RecordUse bumps the usage counter and stamps the last-used markers.
func (s *SQLStore) RecordUse(ctx context.Context, id, semester, examType string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET used_count = used_count + 1, last_used_semester=$1, last_used_exam_type=$2 WHERE id=$3`,
		semester, examType, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
