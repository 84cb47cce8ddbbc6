package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func authServer(t *testing.T, gotAuth *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotAuth = append(*gotAuth, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": []}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_bearerHeader(t *testing.T) {
	var gotAuth []string
	srv := authServer(t, &gotAuth)
	ctx := context.Background()
	holder := NewSessionHolder()

	c := NewClient(&ClientOptions{BaseURL: srv.URL, Session: holder})

	// logged out: no Authorization header at all
	if _, err := List[fakeRecord](ctx, c, "/jobs", nil); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	// logged in: bearer token attached
	if err := holder.Set(Session{ID: "emp-1", Token: "tok-123"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := List[fakeRecord](ctx, c, "/jobs", nil); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	// logged out again: the header disappears with the session
	if err := holder.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := List[fakeRecord](ctx, c, "/jobs", nil); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"", "Bearer tok-123", ""}
	if len(gotAuth) != len(want) {
		t.Fatalf("requests seen = %d, want %d", len(gotAuth), len(want))
	}
	for i := range want {
		if gotAuth[i] != want[i] {
			t.Errorf("request %d Authorization = %q, want %q", i, gotAuth[i], want[i])
		}
	}
}

func TestClient_responses(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantStatus int
		wantMsg    string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"success": true, "data": [{"id": "1"}]}`,
		},
		{
			name:       "rejected envelope on a 2xx",
			status:     http.StatusOK,
			body:       `{"success": false, "message": "account deactivated"}`,
			wantErr:    true,
			wantStatus: http.StatusOK,
			wantMsg:    "account deactivated",
		},
		{
			name:       "non-2xx with a message",
			status:     http.StatusForbidden,
			body:       `{"success": false, "message": "admins only"}`,
			wantErr:    true,
			wantStatus: http.StatusForbidden,
			wantMsg:    "admins only",
		},
		{
			name:       "non-2xx without a message",
			status:     http.StatusBadGateway,
			body:       `{"success": false}`,
			wantErr:    true,
			wantStatus: http.StatusBadGateway,
			wantMsg:    http.StatusText(http.StatusBadGateway),
		},
		{
			name:       "malformed body",
			status:     http.StatusOK,
			body:       `<html>gateway error</html>`,
			wantErr:    true,
			wantStatus: http.StatusOK,
			wantMsg:    "malformed response from server",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(&ClientOptions{BaseURL: srv.URL})
			_, err := List[fakeRecord](ctx, c, "/employees", nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("List() error = %v, wantErr %t", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			aErr, ok := IsAPIError(err)
			if !ok {
				t.Fatalf("List() error = %v, want an api error", err)
			}
			if aErr.StatusCode != tt.wantStatus || aErr.Message != tt.wantMsg {
				t.Errorf("api error = %d %q, want %d %q", aErr.StatusCode, aErr.Message, tt.wantStatus, tt.wantMsg)
			}
		})
	}
}

func TestClient_validationShortCircuits(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"success": true, "data": {}}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(&ClientOptions{BaseURL: srv.URL})

	if _, err := Login(ctx, c, Credentials{Username: "aminaj"}); err == nil {
		t.Error("Login() error = nil without a password")
	} else if _, ok := IsValidationError(err); !ok {
		t.Errorf("Login() error = %v, want a validation error", err)
	}
	if err := RequestPasswordReset(ctx, c, PasswordReset{Email: "nope"}); err == nil {
		t.Error("RequestPasswordReset() error = nil with a bad email")
	}

	if hits != 0 {
		t.Errorf("requests seen = %d, invalid payloads must never reach the server", hits)
	}
}

func TestList_emptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer srv.Close()

	c := NewClient(&ClientOptions{BaseURL: srv.URL})
	items, err := List[fakeRecord](context.Background(), c, "/employees", nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if items == nil {
		t.Error("List() returned a nil slice, want empty non-nil")
	}
	if len(items) != 0 {
		t.Errorf("List() len = %d, want 0", len(items))
	}
}

func TestClient_contextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(&ClientOptions{BaseURL: srv.URL})
	_, err := List[fakeRecord](ctx, c, "/employees", nil)
	if err == nil {
		t.Fatal("List() error = nil with a cancelled context")
	}
	// transport errors never surface raw; notifications stay generic
	if got := UserMessage(err); got != "something went wrong, please try again" {
		t.Errorf("UserMessage() = %q, want the generic message", got)
	}
}
