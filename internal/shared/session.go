package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// HeaderSessionToken lets non-browser clients present the session id
// without a cookie jar.
const HeaderSessionToken = "X-Session-Token"

// Session binds a request to an authenticated account.
type Session struct {
	ID        string
	AccountID int64
	Role      string
}

type sessionPayload struct {
	AccountID int64  `json:"account_id"`
	Role      string `json:"role"`
}

// SessionManager issues and resolves Redis-backed sessions. Liveness is
// enforced by the Redis key TTL, so validity is shared across server
// instances with no in-process state.
type SessionManager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(client *redis.Client, cookieName string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Issue creates a session for the account, stores it in Redis with the
// configured TTL and sets the session cookie on the response.
func (sm *SessionManager) Issue(ctx context.Context, w http.ResponseWriter, accountID int64, role string) (*Session, error) {
	id := uuid.NewString()
	data, err := json.Marshal(sessionPayload{AccountID: accountID, Role: role})
	if err != nil {
		return nil, err
	}
	if err := sm.client.Set(ctx, sm.redisKey(id), data, sm.ttl).Err(); err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sm.ttl),
	})
	return &Session{ID: id, AccountID: accountID, Role: role}, nil
}

// Token extracts the session id from the cookie, falling back to the
// X-Session-Token header. Empty when the request carries neither.
func (sm *SessionManager) Token(r *http.Request) string {
	if cookie, err := r.Cookie(sm.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.Header.Get(HeaderSessionToken)
}

// Resolve maps the request's session artifact back to a Session.
// A missing artifact yields ErrNoSession; an unknown, expired or
// malformed one yields ErrSessionInvalid without distinguishing why.
func (sm *SessionManager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	token := sm.Token(r)
	if token == "" {
		return nil, ErrNoSession
	}
	data, err := sm.client.Get(ctx, sm.redisKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	var payload sessionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, ErrSessionInvalid
	}
	return &Session{ID: token, AccountID: payload.AccountID, Role: payload.Role}, nil
}

// Destroy removes the session from Redis and expires the cookie.
func (sm *SessionManager) Destroy(ctx context.Context, w http.ResponseWriter, id string) error {
	if id != "" {
		if err := sm.client.Del(ctx, sm.redisKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// TTL exposes the configured session lifetime.
func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// CookieName returns the cookie identifier used for sessions.
func (sm *SessionManager) CookieName() string {
	return sm.cookieName
}

func (sm *SessionManager) redisKey(id string) string {
	return "session:" + id
}
