// Package gateway orchestrates login, registration, and logout against the
// backend's authentication endpoints. It is the only component that calls
// them; results flow into the session store, never around it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/forkful/forkful-cli/internal/domain/auth"
	apperrors "github.com/forkful/forkful-cli/internal/errors"
	"github.com/forkful/forkful-cli/internal/session"
)

const (
	// DefaultMinSecretLen is the minimum secret length enforced locally
	// before any network call.
	DefaultMinSecretLen = 8

	defaultTimeout = 10 * time.Second

	// maxResponseBody bounds how much of a response body is read.
	maxResponseBody = 1 << 20
)

// Options groups dependencies for the Gateway.
type Options struct {
	// BaseURL is the backend API root, e.g. "http://localhost:5000/api/v1".
	BaseURL string

	// HTTPClient is the transport used for all calls. A default client
	// with a request timeout is used when nil.
	HTTPClient *http.Client

	// Sessions is the session store updated on successful auth.
	Sessions *session.Store

	// MinSecretLen overrides DefaultMinSecretLen when positive.
	MinSecretLen int

	Logger *slog.Logger
}

// Gateway performs authentication flows. It never retries automatically.
type Gateway struct {
	baseURL      string
	client       *http.Client
	sessions     *session.Store
	minSecretLen int
	logger       *slog.Logger
}

// New constructs a Gateway.
func New(opts Options) *Gateway {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	minLen := opts.MinSecretLen
	if minLen <= 0 {
		minLen = DefaultMinSecretLen
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		client:       client,
		sessions:     opts.Sessions,
		minSecretLen: minLen,
		logger:       logger,
	}
}

// loginRequest is the wire payload for POST /auth/login.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// registerRequest is the wire payload for POST /auth/register.
type registerRequest struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// authEnvelope is the canonical success body of the auth endpoints.
// Anything that does not match it exactly is a malformed response.
type authEnvelope struct {
	Credential string              `json:"credential"`
	Identity   domainauth.Identity `json:"identity"`
}

type errorBody struct {
	Message string `json:"message"`
}

// Login authenticates identifier/secret. Local format checks run first and
// fail without any network call; on success the session store is updated
// and the authenticated identity returned.
func (g *Gateway) Login(ctx context.Context, identifier, secret string) (domainauth.Identity, error) {
	if fields := validateLogin(identifier, secret, g.minSecretLen); len(fields) > 0 {
		return domainauth.Identity{}, apperrors.ValidationFields("invalid login input", fields)
	}

	sess, err := g.authCall(ctx, "/auth/login", loginRequest{
		Identifier: strings.TrimSpace(identifier),
		Secret:     secret,
	})
	if err != nil {
		return domainauth.Identity{}, err
	}
	return g.applySession(ctx, sess)
}

// RegisterInput groups the registration form fields.
type RegisterInput struct {
	Name               string
	Identifier         string
	Secret             string
	SecretConfirmation string
}

// Register creates an account. Local validation reports every failing field
// at once so the caller can mark all invalid inputs; only a fully valid form
// reaches the network.
func (g *Gateway) Register(ctx context.Context, in RegisterInput) (domainauth.Identity, error) {
	if fields := validateRegister(in, g.minSecretLen); len(fields) > 0 {
		return domainauth.Identity{}, apperrors.ValidationFields("invalid registration input", fields)
	}

	sess, err := g.authCall(ctx, "/auth/register", registerRequest{
		Name:       strings.TrimSpace(in.Name),
		Identifier: strings.TrimSpace(in.Identifier),
		Secret:     in.Secret,
	})
	if err != nil {
		return domainauth.Identity{}, err
	}
	return g.applySession(ctx, sess)
}

// Logout notifies the backend best-effort, then unconditionally clears the
// local session. A failed or unreachable backend never leaves the client
// looking authenticated.
func (g *Gateway) Logout(ctx context.Context) error {
	if sess, ok := g.sessions.Get(ctx); ok {
		if err := g.notifyLogout(ctx, sess.Credential); err != nil {
			g.logger.Debug("logout notification failed", "error", err)
		}
	}
	return g.sessions.Clear(ctx)
}

// applySession persists the session unless the caller has moved on. A
// response that arrives after cancellation must not be applied.
func (g *Gateway) applySession(ctx context.Context, sess domainauth.Session) (domainauth.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeNetwork, "authentication canceled")
	}
	if err := g.sessions.Set(ctx, sess); err != nil {
		return domainauth.Identity{}, err
	}
	return sess.Identity, nil
}

// authCall posts the payload and decodes the canonical auth envelope.
func (g *Gateway) authCall(ctx context.Context, path string, payload any) (domainauth.Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeNetwork, "authentication request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeNetwork, "read response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := serverMessage(raw)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return domainauth.Session{}, apperrors.InvalidCredentials(msg)
		}
		return domainauth.Session{}, apperrors.Networkf("authentication service error (%d): %s", resp.StatusCode, msg)
	}

	var envelope authEnvelope
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&envelope); err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeNetwork, "malformed authentication response")
	}

	sess := domainauth.Session{Credential: envelope.Credential, Identity: envelope.Identity}
	if !sess.Valid() {
		return domainauth.Session{}, apperrors.Network("malformed authentication response: incomplete session")
	}
	return sess, nil
}

func (g *Gateway) notifyLogout(ctx context.Context, credential string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/auth/logout", http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	// Body and status are ignored: logout is best-effort.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
	return resp.Body.Close()
}

// serverMessage extracts the backend's human-readable message, falling back
// to a generic one.
func serverMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return "authentication failed"
}
