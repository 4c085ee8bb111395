package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"librarydesk/model"
	studentrepo "librarydesk/repository/student"
	"librarydesk/util/hash"
	jwtutil "librarydesk/util/jwt"
)

type ErrCode string

const (
	ErrUsernameTaken ErrCode = "USERNAME_TAKEN"
	ErrEmailTaken    ErrCode = "EMAIL_TAKEN"
	ErrInvalidCreds  ErrCode = "INVALID_CREDENTIALS"
	ErrBadInput      ErrCode = "BAD_INPUT"
	ErrNotFound      ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.Student, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.Student, string, error)
	AdminLogin(ctx context.Context, req model.LoginReq) (string, error)
	Profile(ctx context.Context, studentID int64) (*model.Student, error)
}

type service struct {
	sr        studentrepo.Repo
	secret    string
	adminUser string
	adminPass string
}

func New(sr studentrepo.Repo, secret, adminUser, adminPass string) Service {
	return &service{sr: sr, secret: secret, adminUser: adminUser, adminPass: adminPass}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.Student, string, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || len(req.Password) < 6 {
		return nil, "", makeErr(ErrBadInput)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	st := &model.Student{
		Username:     username,
		PasswordHash: hashed,
		Name:         req.Name,
		Email:        email,
	}
	if err := s.sr.Create(ctx, st); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, "", derr
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, st.ID, "student", 24)
	if err != nil {
		return nil, "", err
	}
	return st, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.Student, string, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, "", makeErr(ErrBadInput)
	}
	st, err := s.sr.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", makeErr(ErrInvalidCreds)
	}
	if !hash.Check(st.PasswordHash, req.Password) {
		return nil, "", makeErr(ErrInvalidCreds)
	}
	token, err := jwtutil.Issue(s.secret, st.ID, "student", 24)
	if err != nil {
		return nil, "", err
	}
	return st, token, nil
}

func (s *service) AdminLogin(ctx context.Context, req model.LoginReq) (string, error) {
	if req.Username != s.adminUser || req.Password != s.adminPass {
		return "", makeErr(ErrInvalidCreds)
	}
	return jwtutil.Issue(s.secret, 0, "admin", 24)
}

func (s *service) Profile(ctx context.Context, studentID int64) (*model.Student, error) {
	st, err := s.sr.Profile(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return st, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "students_email") || strings.Contains(msg, "email") {
			return makeErr(ErrEmailTaken)
		}
		if strings.Contains(cn, "students_username") || strings.Contains(msg, "username") {
			return makeErr(ErrUsernameTaken)
		}
		return makeErr(ErrBadInput)
	}
	return nil
}
