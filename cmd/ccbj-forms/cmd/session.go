package cmd

import (
	"context"

	"github.com/ccbj/ccbj-forms/internal/api"
	"github.com/ccbj/ccbj-forms/internal/session"
)

func newClient() *api.Client {
	return api.NewClient(cfg.API.URL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger),
	)
}

func newSession(client *api.Client) *session.Session {
	return session.New(client, session.NewFileStore(cfg.TokenFile), session.WithLogger(logger))
}

// loggedIn restores the stored session and returns a client that uses it
func loggedIn(ctx context.Context) (*session.Session, *api.Client, error) {
	client := newClient()
	sess := newSession(client)
	if err := sess.Init(ctx); err != nil {
		return nil, nil, err
	}
	if !sess.Authenticated() {
		return nil, nil, session.ErrNoSession
	}
	return sess, client.WithSession(sess), nil
}
