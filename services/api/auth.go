package apisvc

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/masomo-dashboard/core/auth"
)

type (
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
		SchoolID string `json:"school_id"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

// Login exchanges credentials for a token and returns the resulting Session.
// The returned Session is not installed on c; use WithSession.
func (c *Client) Login(ctx context.Context, username, password, schoolID string) (auth.Session, error) {
	var resp LoginResponse
	data := LoginRequest{Username: username, Password: password, SchoolID: schoolID}
	if err := c.WithSession(auth.Session{}).do(ctx, rest.Post, "/auth/login", nil, data, &resp); err != nil {
		return auth.Session{}, errors.Wrap(err, "logging in")
	}
	sess, err := auth.SessionFromToken(resp.Token, schoolID)
	if err != nil {
		return auth.Session{}, errors.Wrap(err, "reading login token")
	}
	return sess, nil
}
