package core

import (
	"context"
)

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Username = CleanString(c.Username, true /* lower */)
	if err := Validate.Struct(c); err != nil {
		return TranslateValidationErrors(err)
	}
	return nil
}

// loginData is what /auth/login returns on success.
type loginData struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a session. The caller decides where the
// session lives (typically a SessionHolder).
func Login(ctx context.Context, c *Client, creds Credentials) (Session, error) {
	if err := creds.Validate(); err != nil {
		return Session{}, err
	}
	data, err := Create[loginData](ctx, c, "/auth/login", creds)
	if err != nil {
		return Session{}, err
	}
	return Session{
		ID:       data.ID,
		Username: data.Username,
		Role:     data.Role,
		Token:    data.Token,
	}, nil
}

// PasswordReset is the forgot-password payload.
type PasswordReset struct {
	Email string `json:"email" validate:"required,email"`
}

func (p *PasswordReset) Validate() error {
	p.Email = CleanString(p.Email, true /* lower */)
	if err := Validate.Struct(p); err != nil {
		return TranslateValidationErrors(err)
	}
	return nil
}

// RequestPasswordReset asks the backend to mail a reset link.
func RequestPasswordReset(ctx context.Context, c *Client, req PasswordReset) error {
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := c.doJSON(ctx, "POST", "/auth/forgot-password", req)
	return err
}
