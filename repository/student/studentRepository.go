package student

import (
	"context"
	"database/sql"

	"librarydesk/model"
)

type Repo interface {
	Create(ctx context.Context, s *model.Student) error
	ByUsername(ctx context.Context, username string) (*model.Student, error)
	Profile(ctx context.Context, id int64) (*model.Student, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, s *model.Student) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO students(username, password_hash, name, email)
		VALUES ($1,$2,$3,$4)
		RETURNING student_id, created_at`,
		s.Username, s.PasswordHash, s.Name, s.Email,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *repo) ByUsername(ctx context.Context, username string) (*model.Student, error) {
	s := &model.Student{}
	err := r.db.QueryRowContext(ctx, `
        SELECT student_id, username, password_hash, name, email, created_at
        FROM students
        WHERE lower(username) = lower($1)`,
		username,
	).Scan(&s.ID, &s.Username, &s.PasswordHash, &s.Name, &s.Email, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) Profile(ctx context.Context, id int64) (*model.Student, error) {
	s := &model.Student{}
	err := r.db.QueryRowContext(ctx, `
        SELECT student_id, username, name, email, created_at
        FROM students
        WHERE student_id = $1`,
		id,
	).Scan(&s.ID, &s.Username, &s.Name, &s.Email, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
