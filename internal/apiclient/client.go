// Package apiclient is the authenticated REST client for the food-review
// backend. It reads the bearer credential through the session store and
// validates the canonical response envelope at the boundary: one shape,
// {"data": ...} on success and {"message": ...} on error, nothing else.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/forkful/forkful-cli/internal/errors"
	"github.com/forkful/forkful-cli/internal/session"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseBody = 4 << 20
)

// Options groups dependencies for the Client.
type Options struct {
	// BaseURL is the backend API root, e.g. "http://localhost:5000/api/v1".
	BaseURL string

	// HTTPClient is the transport used for all calls. A default client
	// with a request timeout is used when nil.
	HTTPClient *http.Client

	// Sessions supplies the bearer credential for authenticated calls.
	Sessions *session.Store

	Logger *slog.Logger
}

// Client calls the backend's food, review, profile, and admin endpoints.
type Client struct {
	baseURL  string
	client   *http.Client
	sessions *session.Store
	logger   *slog.Logger
}

// New constructs a Client.
func New(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		client:   client,
		sessions: opts.Sessions,
		logger:   logger,
	}
}

// envelope is the canonical success body: a single data field.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
}

// callParams groups parameters for call to keep the signature small.
type callParams struct {
	method  string
	path    string
	payload any
	out     any
	authed  bool
}

// call performs one request. Authenticated calls attach the bearer
// credential; a 401 destroys the local session, since the backend has
// rejected the credential it proves.
func (c *Client) call(ctx context.Context, p callParams) error {
	var body io.Reader = http.NoBody
	if p.payload != nil {
		raw, err := json.Marshal(p.payload)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, c.baseURL+p.path, body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if p.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if p.authed {
		sess, ok := c.sessions.Get(ctx)
		if !ok {
			return apperrors.InvalidSession("not logged in")
		}
		req.Header.Set("Authorization", "Bearer "+sess.Credential)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeNetwork, "request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeNetwork, "read response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// The backend rejected our credential: the session is dead.
		if clearErr := c.sessions.Clear(ctx); clearErr != nil {
			c.logger.Warn("clearing rejected session failed", "error", clearErr)
		}
		return apperrors.InvalidSession(serverMessage(raw, "session expired"))
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.Forbidden(serverMessage(raw, "insufficient permissions"))
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return apperrors.Networkf("service error (%d): %s", resp.StatusCode, serverMessage(raw, "request failed"))
	}

	if p.out == nil {
		return nil
	}

	var env envelope
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil || env.Data == nil {
		return apperrors.Network("malformed response: expected data envelope")
	}
	if err := json.Unmarshal(env.Data, p.out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeNetwork, "malformed response payload")
	}
	return nil
}

func serverMessage(raw []byte, fallback string) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fallback
}
