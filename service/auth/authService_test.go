// service/auth/auth_service_test.go
package authsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"librarydesk/model"
	studentrepo "librarydesk/repository/student"
	"librarydesk/util/hash"
)

type mockRepo struct {
	createFn     func(ctx context.Context, s *model.Student) error
	byUsernameFn func(ctx context.Context, username string) (*model.Student, error)
	profileFn    func(ctx context.Context, id int64) (*model.Student, error)
}

var _ studentrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, s *model.Student) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, s)
}

func (m *mockRepo) ByUsername(ctx context.Context, username string) (*model.Student, error) {
	if m.byUsernameFn == nil {
		return nil, errors.New("no rows")
	}
	return m.byUsernameFn(ctx, username)
}

func (m *mockRepo) Profile(ctx context.Context, id int64) (*model.Student, error) {
	if m.profileFn == nil {
		return nil, errors.New("no rows")
	}
	return m.profileFn(ctx, id)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, s *model.Student) error {
			s.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret", "admin", "admin")

	st, tok, err := svc.Register(ctx, model.RegisterReq{
		Username: "halim",
		Password: "supersecret",
		Name:     "Halim Iskandar",
		Email:    "USER@Example.COM",
	})
	require.NoError(t, err)
	require.NotNil(t, st)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), st.ID)
	require.Equal(t, "user@example.com", st.Email)
	require.NotEmpty(t, st.PasswordHash)
	require.NotEqual(t, "supersecret", st.PasswordHash)
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret", "admin", "admin")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Username: " ",
		Password: "123",
		Email:    "x@example.com",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, s *model.Student) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "students_username_key"}
		},
	}
	svc := New(m, "test-secret", "admin", "admin")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Username: "taken",
		Password: "123456",
		Name:     "X",
		Email:    "x@example.com",
	})
	require.Error(t, err)
	require.Equal(t, ErrUsernameTaken, Code(err))
}

func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, s *model.Student) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "students_email_key"}
		},
	}
	svc := New(m, "test-secret", "admin", "admin")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Username: "fresh",
		Password: "123456",
		Name:     "X",
		Email:    "taken@example.com",
	})
	require.Error(t, err)
	require.Equal(t, ErrEmailTaken, Code(err))
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, s *model.Student) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret", "admin", "admin")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Username: "ok",
		Password: "123456",
		Name:     "X",
		Email:    "ok@example.com",
	})
	require.Error(t, err)
	require.Equal(t, ErrCode(""), Code(err))
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.Student, error) {
			return &model.Student{
				ID:           7,
				Username:     "halim",
				PasswordHash: hashed,
			}, nil
		},
	}
	svc := New(m, "test-secret", "admin", "admin")

	st, tok, err := svc.Login(ctx, model.LoginReq{Username: "halim", Password: pw})
	require.NoError(t, err)
	require.NotNil(t, st)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), st.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.Student, error) {
			return &model.Student{ID: 101, Username: "halim", PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret", "admin", "admin")

	_, _, err := svc.Login(ctx, model.LoginReq{Username: "halim", Password: "wrong-password"})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_UserNotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.Student, error) {
			return nil, errors.New("no rows")
		},
	}
	svc := New(m, "test-secret", "admin", "admin")

	_, _, err := svc.Login(ctx, model.LoginReq{Username: "missing", Password: "whatever"})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret", "admin", "letmein")

	tok, err := svc.AdminLogin(ctx, model.LoginReq{Username: "admin", Password: "letmein"})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	_, err = svc.AdminLogin(ctx, model.LoginReq{Username: "admin", Password: "nope"})
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrInvalidCreds, Code(makeErr(ErrInvalidCreds)))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
