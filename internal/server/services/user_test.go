package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/wintakam/wintakam/internal/common"
	"github.com/wintakam/wintakam/internal/dbx"
	"github.com/wintakam/wintakam/internal/server/config"
	"github.com/wintakam/wintakam/internal/server/models"
	propertiesrepo "github.com/wintakam/wintakam/internal/server/repositories/properties"
	refreshtokensrepo "github.com/wintakam/wintakam/internal/server/repositories/refreshtokens"
	"github.com/wintakam/wintakam/internal/server/repositories/repomanager"
	usersrepo "github.com/wintakam/wintakam/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

func mustHash(t *testing.T, password string) []byte {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	touchedID string
	touchErr  error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "new-id"
	return u, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}
func (f *fakeUsersRepo) TouchLastSignIn(ctx context.Context, id string) error {
	f.touchedID = id
	return f.touchErr
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	deletedToken string
	delErr       error

	createdFor string
	createErr  error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.createdFor = userID
	return f.createErr
}
func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.deletedToken = token
	return f.delErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	p *fakePropertiesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Properties(db dbx.DBTX) propertiesrepo.Repository       { return m.p }

// --- tests ---

func TestRegister_InvalidEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{}})

	_, err := s.Register(context.Background(), "not-an-email", "pw", "")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestRegister_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{}})

	u, err := s.Register(context.Background(), "alice@example.cm", "pw", "Alice N.")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected an id")
	}
	if u.EmailConfirmedAt == nil {
		t.Fatal("expected confirmed account")
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("pw")) != nil {
		t.Fatal("stored hash does not match password")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{createErr: common.ErrorAlreadyExists}}
	s := newUserService(t, db, rm)

	_, err := s.Register(context.Background(), "alice@example.cm", "pw", "")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byEmailOut: &models.User{
			ID:               "u1",
			Email:            "alice@example.cm",
			PasswordHash:     mustHash(t, "pw"),
			EmailConfirmedAt: &now,
		}},
		r: &fakeRefreshRepo{},
	}
	s := newUserService(t, db, rm)

	sess, err := s.Login(context.Background(), "alice@example.cm", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if sess.AccessToken == "" || sess.RefreshToken == "" {
		t.Fatal("expected a full token pair")
	}
	if sess.User == nil || sess.User.ID != "u1" {
		t.Fatal("expected the user in the session")
	}
	if rm.u.touchedID != "u1" {
		t.Fatal("expected last_sign_in_at to be stamped")
	}
	if rm.r.createdFor != "u1" {
		t.Fatal("expected refresh token stored")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	rm := &fakeRepoManager{u: &fakeUsersRepo{byEmailOut: &models.User{
		ID:               "u1",
		PasswordHash:     mustHash(t, "pw"),
		EmailConfirmedAt: &now,
	}}}
	s := newUserService(t, db, rm)

	_, err := s.Login(context.Background(), "alice@example.cm", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownAccountLooksLikeBadPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{byEmailErr: common.ErrorNotFound}}
	s := newUserService(t, db, rm)

	_, err := s.Login(context.Background(), "ghost@example.cm", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_EmailNotConfirmed(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{byEmailOut: &models.User{
		ID:           "u1",
		PasswordHash: mustHash(t, "pw"),
	}}}
	s := newUserService(t, db, rm)

	_, err := s.Login(context.Background(), "alice@example.cm", "pw")
	if !errors.Is(err, ErrEmailNotConfirmed) {
		t.Fatalf("expected ErrEmailNotConfirmed, got %v", err)
	}
}

func TestRefreshToken_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byIDOut: &models.User{ID: "u1", Email: "alice@example.cm"}},
		r: &fakeRefreshRepo{
			findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)},
		},
	}
	s := newUserService(t, db, rm)

	sess, err := s.RefreshToken(context.Background(), "refresh-xyz")
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if sess.AccessToken == "" || sess.RefreshToken == "" {
		t.Fatal("expected a full token pair")
	}
	if sess.RefreshToken == "refresh-xyz" {
		t.Fatal("refresh token was not rotated")
	}
	if rm.r.deletedToken != "refresh-xyz" {
		t.Fatal("old refresh token was not revoked")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("tx expectations: %v", err)
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{
		findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(-time.Minute)},
	}}
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "stale")
	if !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("expected ErrRefreshTokenExpired, got %v", err)
	}
}

func TestRefreshToken_Unknown(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{findErr: common.ErrorNotFound}}
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "unknown")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized, got %v", err)
	}
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{}}
	s := newUserService(t, db, rm)

	if err := s.Logout(context.Background(), "whatever"); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if rm.r.deletedToken != "whatever" {
		t.Fatal("expected delete attempt")
	}
}
