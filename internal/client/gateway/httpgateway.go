package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/wintakam/wintakam/internal/common"
	"github.com/wintakam/wintakam/internal/logging"
)

const defaultRequestTimeout = 12 * time.Second

// HTTPGateway talks JSON over HTTP to the backend. It keeps the current
// session in memory and, when a cache path is configured, persists it to a
// private file so the gateway can restore its own session across restarts.
//
// Methods are not safe for overlapping sign-in/sign-out calls; callers are
// expected to serialize those.
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	cachePath  string
	httpClient *http.Client
	logger     logging.Logger

	session *Session
}

// sessionCache is the on-disk layout of the gateway's private session file.
type sessionCache struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// NewHTTPGateway constructs a gateway for the given backend base URL.
// cachePath may be empty to disable the gateway's own session persistence.
// A non-positive timeout falls back to defaultRequestTimeout.
func NewHTTPGateway(baseURL, apiKey, cachePath string, timeout time.Duration, logger logging.Logger) *HTTPGateway {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPGateway{
		baseURL:    baseURL,
		apiKey:     apiKey,
		cachePath:  cachePath,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("module", "gateway"),
	}
}

// Initialize restores the gateway's own persisted session, if any, and
// revalidates it against the backend. A stale or invalid cache is discarded.
// Initialize never fails startup because of a bad session: only I/O setup
// errors are returned.
func (g *HTTPGateway) Initialize(ctx context.Context) error {
	if g.cachePath == "" {
		return nil
	}

	cached, err := g.loadCache()
	if err != nil {
		g.logger.Warn(ctx, "discarding unreadable session cache", "error", err.Error())
		g.clearCache(ctx)
		return nil
	}
	if cached == nil || cached.AccessToken == "" || cached.RefreshToken == "" {
		return nil
	}

	g.session = &Session{
		AccessToken:  cached.AccessToken,
		RefreshToken: cached.RefreshToken,
		User:         cached.User,
	}

	var user User
	err = g.call(ctx, http.MethodGet, "/auth/user", nil, &user)
	switch {
	case err == nil:
		g.session.User = &user
		g.saveCache(ctx)
	case errors.Is(err, ErrUnauthorized):
		g.logger.Info(ctx, "cached session no longer valid, dropping it")
		g.session = nil
		g.clearCache(ctx)
	default:
		// Backend unreachable: keep the cached identity, it will be
		// re-checked on the next authenticated call.
		g.logger.Warn(ctx, "session revalidation failed", "error", err.Error())
	}
	return nil
}

// SignIn authenticates and retains the resulting session.
func (g *HTTPGateway) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	if err := g.doJSON(ctx, http.MethodPost, "/auth/login", "", body, &session); err != nil {
		return nil, err
	}

	g.session = &session
	g.saveCache(ctx)
	return &session, nil
}

// SignOut revokes the session server-side and always forgets it locally,
// even when the revocation call fails.
func (g *HTTPGateway) SignOut(ctx context.Context) error {
	if g.session == nil {
		return nil
	}

	body := map[string]string{"refresh_token": g.session.RefreshToken}
	err := g.call(ctx, http.MethodPost, "/auth/logout", body, nil)

	g.session = nil
	g.clearCache(ctx)
	return err
}

// CurrentUser returns the in-memory current user without any network call.
func (g *HTTPGateway) CurrentUser() *User {
	if g.session == nil {
		return nil
	}
	return g.session.User
}

// Query fetches all rows of table matching the equality filter.
func (g *HTTPGateway) Query(ctx context.Context, table string, filter map[string]string) ([]RawRecord, error) {
	path := "/rest/" + url.PathEscape(table)
	if len(filter) > 0 {
		q := url.Values{}
		for k, v := range filter {
			q.Set(k, v)
		}
		path += "?" + q.Encode()
	}

	var rows []RawRecord
	if err := g.call(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// QueryOne fetches the row with the given id, or ErrNotFound.
func (g *HTTPGateway) QueryOne(ctx context.Context, table, id string) (RawRecord, error) {
	path := "/rest/" + url.PathEscape(table) + "/" + url.PathEscape(id)

	var row RawRecord
	if err := g.call(ctx, http.MethodGet, path, nil, &row); err != nil {
		return nil, err
	}
	return row, nil
}

// PresignImageUpload requests a presigned PUT URL for a new listing photo.
func (g *HTTPGateway) PresignImageUpload(ctx context.Context, propertyID string) (string, string, error) {
	path := "/rest/properties/" + url.PathEscape(propertyID) + "/images"

	var resp struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := g.call(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return "", "", err
	}
	return resp.Key, resp.URL, nil
}

// AttachImage registers an uploaded photo with its listing.
func (g *HTTPGateway) AttachImage(ctx context.Context, propertyID, key string) error {
	path := "/rest/properties/" + url.PathEscape(propertyID) + "/images/complete"
	return g.call(ctx, http.MethodPost, path, map[string]string{"key": key}, nil)
}

// Close releases underlying resources.
func (g *HTTPGateway) Close() error {
	g.httpClient.CloseIdleConnections()
	return nil
}

// call performs an authenticated request and, on an expired access token,
// refreshes the session once and retries, mirroring the original token
// refresh interceptor.
func (g *HTTPGateway) call(ctx context.Context, method, path string, body, out any) error {
	token := ""
	if g.session != nil {
		token = g.session.AccessToken
	}

	err := g.doJSON(ctx, method, path, token, body, out)
	if err == nil || !errors.Is(err, ErrUnauthorized) {
		return err
	}
	if g.session == nil || g.session.RefreshToken == "" {
		return err
	}

	if refreshErr := g.refresh(ctx); refreshErr != nil {
		return err
	}
	return g.doJSON(ctx, method, path, g.session.AccessToken, body, out)
}

// refresh exchanges the refresh token for a new token pair.
func (g *HTTPGateway) refresh(ctx context.Context) error {
	body := map[string]string{"refresh_token": g.session.RefreshToken}

	var session Session
	if err := g.doJSON(ctx, http.MethodPost, "/auth/refresh", "", body, &session); err != nil {
		return err
	}

	if session.User == nil {
		session.User = g.session.User
	}
	g.session = &session
	g.saveCache(ctx)
	return nil
}

// doJSON issues one request and maps transport and status failures onto the
// gateway sentinels. Backend error bodies are preserved in the wrap so the
// session layer can pattern-match their text.
func (g *HTTPGateway) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set(common.APIKeyHeaderName, g.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return g.mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	msg := decodeErrorBody(resp.Body)
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrTimeout, msg)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		// 4xx business failures carry the backend's own phrasing
		// ("invalid login credentials", "email not confirmed", ...).
		return errors.New(msg)
	}
}

func (g *HTTPGateway) mapTransportError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func decodeErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "request failed"
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return string(data)
}

func (g *HTTPGateway) loadCache() (*sessionCache, error) {
	data, err := os.ReadFile(g.cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var cached sessionCache
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

// saveCache writes the token pair as plain JSON, like the vendor SDK this
// gateway stands in for; encrypted at-rest storage is the credential store's
// job, not the cache's.
func (g *HTTPGateway) saveCache(ctx context.Context) {
	if g.cachePath == "" || g.session == nil {
		return
	}
	cached := sessionCache{
		AccessToken:  g.session.AccessToken,
		RefreshToken: g.session.RefreshToken,
		User:         g.session.User,
	}
	data, err := json.Marshal(cached)
	if err == nil {
		err = os.WriteFile(g.cachePath, data, 0o600)
	}
	if err != nil {
		g.logger.Warn(ctx, "session cache write failed", "error", err.Error())
	}
}

func (g *HTTPGateway) clearCache(ctx context.Context) {
	if g.cachePath == "" {
		return
	}
	if err := os.Remove(g.cachePath); err != nil && !os.IsNotExist(err) {
		g.logger.Warn(ctx, "session cache remove failed", "error", err.Error())
	}
}
