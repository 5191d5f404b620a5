package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wintakam/wintakam/internal/client/gateway"
	"github.com/wintakam/wintakam/internal/common"
	"github.com/wintakam/wintakam/internal/logging"
)

// ---- fakes ----

type fakeGateway struct {
	gateway.Gateway

	signInSession *gateway.Session
	signInErr     error
	signOutErr    error
	currentUser   *gateway.User

	signOutCalls     int
	currentUserCalls int
}

func (f *fakeGateway) SignIn(ctx context.Context, email, password string) (*gateway.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	if f.signInSession != nil {
		f.currentUser = f.signInSession.User
	}
	return f.signInSession, nil
}

func (f *fakeGateway) SignOut(ctx context.Context) error {
	f.signOutCalls++
	f.currentUser = nil
	return f.signOutErr
}

func (f *fakeGateway) CurrentUser() *gateway.User {
	f.currentUserCalls++
	return f.currentUser
}

type fakeStore struct {
	data map[string]string

	putCalls    int
	putErr      error
	getErr      error
	deleteCalls int
}

func newFakeStore() *fakeStore { return &fakeStore{data: map[string]string{}} }

func (f *fakeStore) Put(ctx context.Context, key, value string) error {
	f.putCalls++
	if f.putErr != nil {
		return f.putErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.data[key], nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deleteCalls++
	delete(f.data, key)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func validSession() *gateway.Session {
	return &gateway.Session{
		AccessToken:  "at",
		RefreshToken: "rt",
		User:         &gateway.User{ID: "u1", Email: "a@b.cm", CreatedAt: time.Now().UTC()},
	}
}

// ---- tests ----

func TestSignInSuccessMapsUser(t *testing.T) {
	gw := &fakeGateway{signInSession: validSession()}
	gw.signInSession.User.FullName = "Jean Mbarga"
	store := newFakeStore()
	m := NewManager(gw, store, testLogger())

	res := m.SignIn(context.Background(), "a@b.cm", "pw", false)
	require.True(t, res.Success)
	require.NotNil(t, res.User)
	require.Equal(t, "u1", res.User.ID)
	require.Equal(t, "a@b.cm", res.User.Email)
	require.NotNil(t, res.User.FullName)
	require.Equal(t, "Jean Mbarga", *res.User.FullName)
}

func TestSignInRememberFalseNeverWrites(t *testing.T) {
	gw := &fakeGateway{signInSession: validSession()}
	store := newFakeStore()
	m := NewManager(gw, store, testLogger())

	res := m.SignIn(context.Background(), "a@b.cm", "pw", false)
	require.True(t, res.Success)
	require.Zero(t, store.putCalls)

	// Failure path must not write either.
	gw.signInErr = errors.New("invalid login credentials")
	res = m.SignIn(context.Background(), "a@b.cm", "bad", false)
	require.False(t, res.Success)
	require.Zero(t, store.putCalls)
}

func TestSignInRememberPersistsTokenPair(t *testing.T) {
	gw := &fakeGateway{signInSession: validSession()}
	store := newFakeStore()
	m := NewManager(gw, store, testLogger())

	res := m.SignIn(context.Background(), "a@b.cm", "pw", true)
	require.True(t, res.Success)
	require.Equal(t, 1, store.putCalls)

	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(store.data[common.SessionKey]), &pair))
	require.Equal(t, "at", pair.AccessToken)
	require.Equal(t, "rt", pair.RefreshToken)
}

func TestSignInNeverPersistsPartialSession(t *testing.T) {
	gw := &fakeGateway{signInSession: &gateway.Session{
		AccessToken: "at", // refresh token missing
		User:        &gateway.User{ID: "u1", Email: "a@b.cm"},
	}}
	store := newFakeStore()
	m := NewManager(gw, store, testLogger())

	res := m.SignIn(context.Background(), "a@b.cm", "pw", true)
	require.True(t, res.Success)
	require.Empty(t, store.data)
}

func TestSignInPersistFailureStillSucceeds(t *testing.T) {
	gw := &fakeGateway{signInSession: validSession()}
	store := newFakeStore()
	store.putErr = errors.New("disk full")
	m := NewManager(gw, store, testLogger())

	res := m.SignIn(context.Background(), "a@b.cm", "pw", true)
	require.True(t, res.Success)
}

func TestSignInErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bad credentials", errors.New("invalid login credentials"), "Email ou mot de passe incorrect."},
		{"unconfirmed", errors.New("email not confirmed"), "Veuillez confirmer votre email."},
		{"bad email", errors.New("invalid email address"), "Adresse email invalide."},
		{"unreachable", gateway.ErrUnavailable, "Erreur de connexion. Vérifiez votre internet."},
		{"unknown", errors.New("splines not reticulated"), "Une erreur s'est produite. Veuillez réessayer."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{signInErr: tt.err}
			m := NewManager(gw, newFakeStore(), testLogger())

			res := m.SignIn(context.Background(), "a@b.cm", "pw", false)
			require.False(t, res.Success)
			require.Equal(t, tt.want, res.ErrorMessage)
			require.Nil(t, res.User)
		})
	}
}

func TestSignOutAlwaysCleansUp(t *testing.T) {
	gw := &fakeGateway{signOutErr: errors.New("backend down")}
	store := newFakeStore()
	store.data[common.SessionKey] = `{"access_token":"at","refresh_token":"rt"}`
	m := NewManager(gw, store, testLogger())

	m.SignOut(context.Background()) // must not panic or surface the error
	require.Equal(t, 1, gw.signOutCalls)
	require.Equal(t, 1, store.deleteCalls)
	require.Empty(t, store.data)
}

func TestCurrentUserNilWithoutSession(t *testing.T) {
	m := NewManager(&fakeGateway{}, newFakeStore(), testLogger())
	require.Nil(t, m.CurrentUser())
	require.False(t, m.IsAuthenticated())
}

func TestRestoreSessionNoEntryNoGatewayCall(t *testing.T) {
	gw := &fakeGateway{currentUser: &gateway.User{ID: "u1"}}
	m := NewManager(gw, newFakeStore(), testLogger())

	require.False(t, m.RestoreSession(context.Background()))
	require.Zero(t, gw.currentUserCalls)
}

func TestRestoreSessionDeletesStaleEntry(t *testing.T) {
	gw := &fakeGateway{} // gateway has no current user
	store := newFakeStore()
	store.data[common.SessionKey] = `{"access_token":"at","refresh_token":"rt"}`
	m := NewManager(gw, store, testLogger())

	require.False(t, m.RestoreSession(context.Background()))
	require.Equal(t, 1, store.deleteCalls)
	require.Empty(t, store.data)
}

func TestRestoreSessionStoreErrorIsFalse(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("corrupt database")
	m := NewManager(&fakeGateway{}, store, testLogger())

	require.False(t, m.RestoreSession(context.Background()))
}

func TestSignInThenRestoreAcrossRestart(t *testing.T) {
	gw := &fakeGateway{signInSession: validSession()}
	store := newFakeStore()

	m := NewManager(gw, store, testLogger())
	res := m.SignIn(context.Background(), "a@b.cm", "pw", true)
	require.True(t, res.Success)

	// Simulated restart: fresh manager over the same store; the gateway has
	// restored its own session and reports the same current user.
	restartedGW := &fakeGateway{currentUser: &gateway.User{ID: "u1", Email: "a@b.cm"}}
	m2 := NewManager(restartedGW, store, testLogger())

	require.True(t, m2.RestoreSession(context.Background()))
	require.True(t, m2.IsAuthenticated())
}
