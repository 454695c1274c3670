package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/legalconnect/consult-client/internal/model"
	"github.com/legalconnect/consult-client/internal/session"
)

// Login authenticates against the role-specific endpoint and returns a
// session built from the issued credential. The credential itself is the
// session's only source of identity claims.
func (c *Client) Login(ctx context.Context, role, username, password string) (*session.Session, error) {
	path := "/api/auth/user/login"
	if role == model.RoleLawyer {
		path = "/api/auth/lawyer/login"
	}

	var resp model.LoginResponse
	req := model.LoginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login failed: %s", resp.Message)
	}

	sess, err := session.FromToken(resp.Token)
	if err != nil {
		return nil, fmt.Errorf("login returned unusable credential: %w", err)
	}

	return sess, nil
}

func (c *Client) RegisterUser(ctx context.Context, req model.RegistrationRequest) (*model.RegistrationResponse, error) {
	var resp model.RegistrationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/user/register", req, &resp); err != nil {
		return nil, fmt.Errorf("user registration failed: %w", err)
	}
	return &resp, nil
}

func (c *Client) RegisterLawyer(ctx context.Context, req model.LawyerRegistrationRequest) (*model.RegistrationResponse, error) {
	var resp model.RegistrationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/lawyer/register", req, &resp); err != nil {
		return nil, fmt.Errorf("lawyer registration failed: %w", err)
	}
	return &resp, nil
}
