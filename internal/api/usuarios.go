package api

import (
	"context"
	"net/http"

	"github.com/ccbj/ccbj-forms/internal/model"
	"github.com/ccbj/ccbj-forms/internal/session"
)

const (
	profilePath        = "/usuarios/me/"
	changePasswordPath = "/auth/change-password/"
)

// Profile loads the logged-in user's account with its profile
func (c *Client) Profile(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodGet, profilePath, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the user's name, email and phone
func (c *Client) UpdateProfile(ctx context.Context, p model.ProfileUpdate) (*session.User, error) {
	if err := p.Validate().Err(); err != nil {
		return nil, err
	}
	var user session.User
	if err := c.do(ctx, http.MethodPatch, profilePath, nil, p, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the user's password. A wrong current password
// comes back as a field error on old_password.
func (c *Client) ChangePassword(ctx context.Context, p model.PasswordChange) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, changePasswordPath, nil, p, nil)
}
