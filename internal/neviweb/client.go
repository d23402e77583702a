package neviweb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/nevihome/neviweb/internal/logging"
)

const (
	// DefaultBaseURL is the production Neviweb service endpoint
	DefaultBaseURL = "https://neviweb.com"

	// DefaultTimeout is the fixed per-request timeout
	DefaultTimeout = 30 * time.Second

	// interfaceName is the client interface identifier the login API expects
	interfaceName = "neviweb"

	loginPath     = "/api/login"
	locationsPath = "/api/locations"
)

// Runner dispatches an outbound call and waits for it to complete. The
// wizard passes its worker pool here; a nil Runner runs calls inline on
// the caller's goroutine.
type Runner interface {
	Run(ctx context.Context, fn func(context.Context) error) error
}

// Client talks to the Neviweb cloud API. It is stateless apart from the
// cookie jar: Login stores the session cookies there, and Locations relies
// on them, so both calls must go through the same Client.
type Client struct {
	// BaseURL is the service root (e.g. "https://neviweb.com")
	BaseURL string

	// HTTPClient is the underlying HTTP client. Its jar carries the
	// login cookies to follow-up calls.
	HTTPClient *http.Client
}

// NewClient creates a client for the given service root. An empty baseURL
// selects the production endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// cookiejar.New never fails with nil options
	jar, _ := cookiejar.New(nil)

	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
	}
}

// SetTimeout sets the per-request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Login authenticates against the service and returns the session needed
// for follow-up calls.
//
// Error mapping follows the login API's conventions: a non-200 status is a
// service failure, a structured error payload with the bad-login code is an
// authentication failure, and any other structured error code is a service
// failure.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	reqBody, err := json.Marshal(LoginRequest{
		Username:      username,
		Password:      password,
		Interface:     interfaceName,
		StayConnected: 1,
	})
	if err != nil {
		return nil, NewParseError("failed to encode login request", err)
	}

	loginURL := c.BaseURL + loginPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, NewNetworkError("failed to create login request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("login request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogAPIRequest(http.MethodPost, loginURL, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("login failed with status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read login response", err)
	}

	var loginResp LoginResponse
	if err := json.Unmarshal(body, &loginResp); err != nil {
		return nil, NewParseError("failed to parse login response", err)
	}

	if loginResp.Error != nil {
		if loginResp.Error.Code == BadLoginCode {
			return nil, NewAuthError("invalid username or password")
		}
		return nil, NewServiceCodeError(loginResp.Error.Code)
	}

	if loginResp.Session == "" || loginResp.Account == nil {
		return nil, NewParseError("login response missing session or account", nil)
	}

	return &Session{
		ID:        loginResp.Session,
		AccountID: loginResp.Account.ID.String(),
	}, nil
}

// Locations fetches the account's named sub-networks. It must be called on
// the same Client that performed the Login so the session cookies accompany
// the request.
func (c *Client) Locations(ctx context.Context, session *Session) ([]Location, error) {
	// The query key contains a literal dollar sign; built by hand so it
	// is not percent-encoded.
	locationsURL := c.BaseURL + locationsPath + "?account$id=" + url.QueryEscape(session.AccountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locationsURL, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create locations request", err)
	}
	req.Header.Set("Session-Id", session.ID)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("locations request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogAPIRequest(http.MethodGet, locationsURL, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("locations request failed with status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read locations response", err)
	}

	var locations []Location
	if err := json.Unmarshal(body, &locations); err != nil {
		return nil, NewParseError("failed to parse locations response", err)
	}

	return locations, nil
}

// Validate performs the full credential check the wizard needs: login
// followed by a locations query on the same session, each dispatched to the
// runner and awaited before the next. The returned title is the username
// exactly as entered; network names are verbatim from the service.
func (c *Client) Validate(ctx context.Context, runner Runner, username, password string) (*ValidationResult, error) {
	run := func(fn func(context.Context) error) error {
		if runner == nil {
			return fn(ctx)
		}
		return runner.Run(ctx, fn)
	}

	var session *Session
	err := run(func(ctx context.Context) error {
		var loginErr error
		session, loginErr = c.Login(ctx, username, password)
		logging.LogLoginResult(username, loginErr)
		return loginErr
	})
	if err != nil {
		return nil, err
	}

	var locations []Location
	err = run(func(ctx context.Context) error {
		var locErr error
		locations, locErr = c.Locations(ctx, session)
		return locErr
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(locations))
	for _, loc := range locations {
		names = append(names, loc.Name)
	}

	return &ValidationResult{
		Title:    username,
		Networks: names,
	}, nil
}
