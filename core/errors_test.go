package core

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "backend message verbatim",
			err:  NewAPIError(http.StatusConflict, "leave already approved"),
			want: "leave already approved",
		},
		{
			name: "backend message without text falls back to the status text",
			err:  NewAPIError(http.StatusNotFound, ""),
			want: "Not Found",
		},
		{
			name: "wrapped api error unwraps to its cause",
			err:  errors.Wrap(NewAPIError(http.StatusBadRequest, "unknown period"), "generating payroll"),
			want: "unknown period",
		},
		{
			name: "validation error surfaces the first field",
			err:  NewValidationError(errors.New("invalid input"), FieldError{Field: "to", Error: "must not precede the start date"}),
			want: "to: must not precede the start date",
		},
		{
			name: "validation error without fields uses its message",
			err:  NewValidationError(errors.New("invalid input")),
			want: "invalid input",
		},
		{
			name: "network failure stays generic",
			err:  errors.New("dial tcp 10.0.0.1:443: connect: connection refused"),
			want: "something went wrong, please try again",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAPIError(t *testing.T) {
	apiErr := NewAPIError(http.StatusForbidden, "admins only")
	if _, ok := IsAPIError(errors.Wrap(apiErr, "approving leave")); !ok {
		t.Error("IsAPIError(wrapped) = false")
	}
	if aErr, ok := IsAPIError(apiErr); !ok || aErr.StatusCode != http.StatusForbidden {
		t.Errorf("IsAPIError() = %v, %t", aErr, ok)
	}
	if _, ok := IsAPIError(errors.New("nope")); ok {
		t.Error("IsAPIError(plain error) = true")
	}
}

func TestIsValidationError(t *testing.T) {
	vErr := NewValidationError(errors.New("invalid input"), FieldError{Field: "email", Error: "email is required"})
	got, ok := IsValidationError(vErr)
	if !ok {
		t.Fatal("IsValidationError() = false")
	}
	if len(got.Fields) != 1 || got.Fields[0].Field != "email" {
		t.Errorf("Fields = %v", got.Fields)
	}
	if _, ok := IsValidationError(NewAPIError(http.StatusBadRequest, "bad")); ok {
		t.Error("IsValidationError(api error) = true")
	}
}
