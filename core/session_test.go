package core

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("signing token failed: %v", err)
	}
	return token
}

func TestSession_Claims(t *testing.T) {
	token := signToken(t, &Claims{
		StandardClaims: jwt.StandardClaims{Subject: "emp-1", ExpiresAt: time.Now().Add(time.Hour).Unix()},
		Role:           RoleAdmin,
	})

	sess := Session{ID: "emp-1", Token: token}
	claims, err := sess.Claims()
	if err != nil {
		t.Fatalf("Claims() error = %v", err)
	}
	if claims.Subject != "emp-1" || claims.Role != RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := (Session{Token: "not-a-jwt"}).Claims(); errors.Cause(err) != errMalformedToken {
		t.Errorf("Claims(garbage) error = %v, want errMalformedToken", err)
	}
}

func TestSession_Expired(t *testing.T) {
	defer func() { NowFunc = time.Now }()
	NowFunc = time.Now

	live := signToken(t, &Claims{StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()}})
	dead := signToken(t, &Claims{StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()}})

	tests := []struct {
		name string
		sess Session
		want bool
	}{
		{name: "live token", sess: Session{Token: live}, want: false},
		{name: "expired token", sess: Session{Token: dead}, want: true},
		{name: "no exp claim", sess: Session{Token: signToken(t, &Claims{})}, want: false},
		{name: "garbage token left for the backend", sess: Session{Token: "garbage"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sess.Expired(); got != tt.want {
				t.Errorf("Expired() = %t, want %t", got, tt.want)
			}
		})
	}
}

type memStore struct {
	sess    Session
	saved   int
	dropped int
	loadErr error
}

func (s *memStore) Load() (Session, error) { return s.sess, s.loadErr }
func (s *memStore) Save(sess Session) error {
	s.sess = sess
	s.saved++
	return nil
}
func (s *memStore) Drop() error {
	s.sess = Session{}
	s.dropped++
	return nil
}

func TestSessionHolder(t *testing.T) {
	t.Run("empty until set", func(t *testing.T) {
		h := NewSessionHolder()
		if _, ok := h.Current(); ok {
			t.Error("Current() ok = true on a fresh holder")
		}
		if err := h.Set(Session{ID: "emp-1", Token: "tok"}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if sess, ok := h.Current(); !ok || sess.ID != "emp-1" {
			t.Errorf("Current() = %+v, %t", sess, ok)
		}
		if err := h.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if _, ok := h.Current(); ok {
			t.Error("Current() ok = true after Clear()")
		}
	})

	t.Run("persists through the store", func(t *testing.T) {
		store := new(memStore)
		h := NewSessionHolder(store)
		if err := h.Set(Session{ID: "emp-1", Token: "tok"}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if store.saved != 1 {
			t.Errorf("store.saved = %d, want 1", store.saved)
		}
		if err := h.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if store.dropped != 1 {
			t.Errorf("store.dropped = %d, want 1", store.dropped)
		}
	})

	t.Run("restores a persisted session", func(t *testing.T) {
		store := &memStore{sess: Session{ID: "emp-1", Username: "amina", Token: "tok"}}
		h := NewSessionHolder(store)
		sess, ok := h.Current()
		if !ok || sess.Username != "amina" {
			t.Errorf("Current() = %+v, %t, want the restored session", sess, ok)
		}
	})

	t.Run("load failure starts logged out", func(t *testing.T) {
		store := &memStore{loadErr: errors.New("corrupt file")}
		h := NewSessionHolder(store)
		if _, ok := h.Current(); ok {
			t.Error("Current() ok = true despite failed restore")
		}
	})
}
