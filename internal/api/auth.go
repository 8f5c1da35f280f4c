package api

import (
	"context"
	"net/http"

	"github.com/ccbj/ccbj-forms/internal/session"
)

const (
	tokenPath   = "/auth/token/"
	refreshPath = "/auth/token/refresh/"
	mePath      = "/auth/me/"
)

var _ session.Authenticator = (*Client)(nil)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ObtainToken exchanges credentials for a token pair
func (c *Client) ObtainToken(ctx context.Context, username, password string) (session.Tokens, error) {
	var tokens session.Tokens
	err := c.do(ctx, http.MethodPost, tokenPath, nil, credentials{Username: username, Password: password}, &tokens)
	return tokens, err
}

// RefreshToken exchanges a refresh token for a new access token
func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	var resp struct {
		Access string `json:"access"`
	}
	err := c.do(ctx, http.MethodPost, refreshPath, nil, map[string]string{"refresh": refresh}, &resp)
	return resp.Access, err
}

// CurrentUser loads the account the access token belongs to
func (c *Client) CurrentUser(ctx context.Context, access string) (*session.User, error) {
	data, err := c.send(ctx, http.MethodGet, mePath, nil, nil, access)
	if err != nil {
		return nil, err
	}
	var user session.User
	if err := decode(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
