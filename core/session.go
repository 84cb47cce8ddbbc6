package core

import (
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Roles
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

var errMalformedToken = errors.New("malformed bearer token")

// Session is the current user's identity and bearer token, held once per
// login. It is the only mutable state shared across panels.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Claims is the subset of the backend's JWT payload the client cares about.
// The token is never verified client-side; claims are informational only
// (expiry display). A token the backend rejects surfaces as a request failure.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role,omitempty"`
}

// Claims decodes the session token's payload without verifying its signature.
func (s Session) Claims() (*Claims, error) {
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(s.Token, claims); err != nil {
		return nil, errors.Wrap(errMalformedToken, err.Error())
	}
	return claims, nil
}

// Expired reports whether the token's exp claim has passed. A token without
// claims is assumed live and left for the backend to reject.
func (s Session) Expired() bool {
	claims, err := s.Claims()
	if err != nil || claims.ExpiresAt == 0 {
		return false
	}
	return NowFunc().After(time.Unix(claims.ExpiresAt, 0))
}

type (
	// SessionSource is what every resource client holds: a read-only view of
	// the current session, read at call time (not at construction time) so a
	// logout mid-session invalidates subsequent calls.
	SessionSource interface {
		Current() (Session, bool)
	}

	// SessionStore persists a session between runs; implemented by
	// services/store as a single JSON file.
	SessionStore interface {
		Load() (Session, error)
		Save(Session) error
		Drop() error
	}
)

// SessionHolder is the single write point for credential state: populated
// exactly once per login, cleared exactly once per logout. Safe for
// concurrent use.
type SessionHolder struct {
	mutex sync.RWMutex
	sess  Session
	set   bool
	store SessionStore // optional
}

var _ SessionSource = (*SessionHolder)(nil)

// NewSessionHolder returns a holder, optionally backed by a store; when a
// store is given, any previously persisted session is restored.
func NewSessionHolder(store ...SessionStore) *SessionHolder {
	h := new(SessionHolder)
	if len(store) > 0 && store[0] != nil {
		h.store = store[0]
		if sess, err := h.store.Load(); err == nil && sess.Token != "" {
			h.sess = sess
			h.set = true
		}
	}
	return h
}

func (h *SessionHolder) Current() (Session, bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.sess, h.set
}

// Set installs the session after the backend confirmed credentials.
func (h *SessionHolder) Set(sess Session) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.sess = sess
	h.set = true
	if h.store != nil {
		return errors.Wrap(h.store.Save(sess), "persisting session")
	}
	return nil
}

// Clear drops the session at logout.
func (h *SessionHolder) Clear() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.sess = Session{}
	h.set = false
	if h.store != nil {
		return errors.Wrap(h.store.Drop(), "dropping persisted session")
	}
	return nil
}
