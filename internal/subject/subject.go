package subject

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("subject not found")

type Subject struct {
	ID        string `json:"id"`
	UserID    string `json:"-"`
	Name      string `json:"name"`
	ClassName string `json:"class_name"`
	Semester  string `json:"semester,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, sub Subject) (Subject, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	sub.CreatedAt = time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subjects (id, user_id, name, class_name, semester, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		sub.ID, sub.UserID, sub.Name, sub.ClassName, sub.Semester, sub.CreatedAt)
	if err != nil {
		return Subject{}, err
	}
	return sub, nil
}

func (s *SQLStore) Get(ctx context.Context, ownerID, id string) (Subject, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, class_name, semester, created_at FROM subjects WHERE id=$1 AND user_id=$2`, id, ownerID)
	var sub Subject
	err := row.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.ClassName, &sub.Semester, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Subject{}, ErrNotFound
	}
	return sub, err
}

func (s *SQLStore) List(ctx context.Context, ownerID string) ([]Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, class_name, semester, created_at FROM subjects WHERE user_id=$1 ORDER BY created_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Subject
	for rows.Next() {
		var sub Subject
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.ClassName, &sub.Semester, &sub.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *SQLStore) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subjects WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
