// Package session owns the authentication lifecycle of the client: sign-in,
// sign-out, current-user lookup, and restoring a previous session across
// process restarts.
package session

import (
	"context"
	"encoding/json"

	"github.com/wintakam/wintakam/internal/client/credstore"
	"github.com/wintakam/wintakam/internal/client/errx"
	"github.com/wintakam/wintakam/internal/client/gateway"
	"github.com/wintakam/wintakam/internal/client/models"
	"github.com/wintakam/wintakam/internal/common"
	"github.com/wintakam/wintakam/internal/logging"
)

// Manager defines the authentication operations exposed to the presentation
// layer.
//
// Contract:
//   - SignIn: single authentication attempt; failures come back as a
//     localized AuthResult, never as a raw backend error.
//   - SignOut: always appears to succeed; cleanup failures are only logged.
//   - CurrentUser/IsAuthenticated: in-memory, no network.
//   - RestoreSession: advisory restoration gated by the Credential Store,
//     with the trust decision delegated to the gateway.
type Manager interface {
	SignIn(ctx context.Context, email, password string, remember bool) models.AuthResult
	SignOut(ctx context.Context)
	CurrentUser() *models.User
	IsAuthenticated() bool
	RestoreSession(ctx context.Context) bool
}

type manager struct {
	gw     gateway.Gateway
	store  credstore.Store
	logger logging.Logger
}

// NewManager constructs a Manager over the given gateway and credential store.
func NewManager(gw gateway.Gateway, store credstore.Store, logger logging.Logger) Manager {
	return &manager{gw: gw, store: store, logger: logger.With("module", "session")}
}

// SignIn authenticates with the backend. Email and password emptiness is the
// caller's concern; this layer performs no format validation. When remember
// is true the token pair is persisted under the fixed well-known key;
// persistence failures degrade to a session-only login.
func (m *manager) SignIn(ctx context.Context, email, password string, remember bool) models.AuthResult {
	sess, err := m.gw.SignIn(ctx, email, password)
	if err != nil {
		return models.Fail(errx.Auth(err).Error())
	}
	if sess == nil || sess.User == nil {
		return models.Fail(errx.Auth(gateway.ErrUnavailable).Error())
	}

	if remember {
		m.persistSession(ctx, sess)
	}

	return models.Succeed(mapUser(sess.User))
}

// SignOut revokes the backend session and unconditionally removes the
// persisted token pair. Failures are swallowed: sign-out must always look
// successful to the caller.
func (m *manager) SignOut(ctx context.Context) {
	if err := m.gw.SignOut(ctx); err != nil {
		m.logger.Warn(ctx, "gateway sign-out failed", "error", err.Error())
	}
	if err := m.store.Delete(ctx, common.SessionKey); err != nil {
		m.logger.Warn(ctx, "credential cleanup failed", "error", err.Error())
	}
}

// CurrentUser returns the gateway's in-memory current user mapped to the
// domain model, or nil. It never fails.
func (m *manager) CurrentUser() *models.User {
	raw := m.gw.CurrentUser()
	if raw == nil {
		return nil
	}
	return mapUser(raw)
}

// IsAuthenticated reports whether a current user is resolvable.
func (m *manager) IsAuthenticated() bool {
	return m.CurrentUser() != nil
}

// RestoreSession attempts to restore a previous session. The persisted blob
// only gates whether restoration is attempted at all: when it exists, the
// actual trust decision is delegated to the gateway, which is expected to
// have restored its own session independently. A stale store entry (gateway
// reports no user) is deleted.
func (m *manager) RestoreSession(ctx context.Context) bool {
	blob, err := m.store.Get(ctx, common.SessionKey)
	if err != nil {
		m.logger.Warn(ctx, "session restore failed", "error", err.Error())
		m.deleteStoredSession(ctx)
		return false
	}
	if blob == "" {
		return false
	}

	if m.gw.CurrentUser() == nil {
		m.deleteStoredSession(ctx)
		return false
	}
	return true
}

func (m *manager) persistSession(ctx context.Context, sess *gateway.Session) {
	pair := models.Session{AccessToken: sess.AccessToken, RefreshToken: sess.RefreshToken}
	if !pair.Valid() {
		// Never persist a partial session.
		m.logger.Warn(ctx, "refusing to persist incomplete session")
		return
	}

	data, err := json.Marshal(pair)
	if err == nil {
		err = m.store.Put(ctx, common.SessionKey, string(data))
	}
	if err != nil {
		m.logger.Warn(ctx, "session persist failed", "error", err.Error())
	}
}

func (m *manager) deleteStoredSession(ctx context.Context) {
	if err := m.store.Delete(ctx, common.SessionKey); err != nil {
		m.logger.Warn(ctx, "stale session cleanup failed", "error", err.Error())
	}
}

func mapUser(raw *gateway.User) *models.User {
	u := &models.User{
		ID:           raw.ID,
		Email:        raw.Email,
		CreatedAt:    raw.CreatedAt,
		LastSignInAt: raw.LastSignInAt,
	}
	if raw.FullName != "" {
		name := raw.FullName
		u.FullName = &name
	}
	return u
}
