package httpidp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goSession "github.com/MrEthical07/goSession"
)

const basePath = "/api/v1/auth"

// Config defines a public type used by goSession APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// BaseURL is the backend origin, e.g. "https://api.example.com".
	BaseURL string
	// Timeout bounds each request end to end. Defaults to 15s. The
	// dispatcher's effect timeout still applies through ctx.
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client implements goSession.IdentityProvider over the REST API.
type Client struct {
	base string
	http *http.Client
}

var _ goSession.IdentityProvider = (*Client)(nil)

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{base: base, http: httpClient}, nil
}

/*
====================================
WIRE TYPES (mirror backend schemas)
====================================
*/

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Authenticate logs in and resolves the identity behind the issued tokens
// via the /me endpoint.
func (c *Client) Authenticate(ctx context.Context, email, password string) (goSession.AuthResult, error) {
	var tokens tokenResponse
	err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, "", &tokens)
	if err != nil {
		return goSession.AuthResult{}, err
	}

	user, err := c.me(ctx, tokens.AccessToken)
	if err != nil {
		return goSession.AuthResult{}, err
	}

	return goSession.AuthResult{
		Identity: goSession.UserIdentity{
			UserID:   user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		},
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Register creates the account, then logs in with the same credentials to
// obtain the token pair (the register endpoint returns only the user
// record). A freshly created account always requires onboarding.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (goSession.RegisterResult, error) {
	var user userResponse
	err := c.do(ctx, http.MethodPost, "/register", registerRequest{Email: email, Password: password, FullName: fullName}, "", &user)
	if err != nil {
		return goSession.RegisterResult{}, err
	}

	auth, err := c.Authenticate(ctx, email, password)
	if err != nil {
		return goSession.RegisterResult{}, err
	}
	return goSession.RegisterResult{
		AuthResult:         auth,
		OnboardingRequired: true,
	}, nil
}

// Refresh exchanges a refresh token for a rotated pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (goSession.AuthResult, error) {
	var tokens tokenResponse
	err := c.do(ctx, http.MethodPost, "/refresh", refreshRequest{RefreshToken: refreshToken}, "", &tokens)
	if err != nil {
		return goSession.AuthResult{}, err
	}

	user, err := c.me(ctx, tokens.AccessToken)
	if err != nil {
		return goSession.AuthResult{}, err
	}

	return goSession.AuthResult{
		Identity: goSession.UserIdentity{
			UserID:   user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		},
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Revoke invalidates the remote session. Callers treat failure as non-fatal.
func (c *Client) Revoke(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", struct{}{}, accessToken, nil)
}

func (c *Client) me(ctx context.Context, accessToken string) (userResponse, error) {
	var user userResponse
	err := c.do(ctx, http.MethodGet, "/me", nil, accessToken, &user)
	return user, err
}

// do issues one JSON request and decodes the response into out (when
// non-nil). Every error it returns wraps a taxonomy sentinel.
func (c *Client) do(ctx context.Context, method, path string, body any, bearer string, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %w", goSession.ErrUnknown, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+basePath+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", goSession.ErrUnknown, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failures, DNS errors, and context expiry all read as
		// network trouble to the caller.
		return fmt.Errorf("%w: %w", goSession.ErrNetworkFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapStatus(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", goSession.ErrUnknown, err)
	}
	return nil
}

func (c *Client) mapStatus(resp *http.Response) error {
	detail := "request failed"
	var body errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil && body.Detail != "" {
		detail = body.Detail
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", goSession.ErrAuthenticationRejected, detail)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s (status %d)", goSession.ErrNetworkFailure, detail, resp.StatusCode)
	default:
		return fmt.Errorf("%w: %s (status %d)", goSession.ErrUnknown, detail, resp.StatusCode)
	}
}
