// Package guard enforces the static route classification against the
// current session on every page entry. It decides, redirects, and never
// renders; the navigator is injected.
package guard

import (
	"context"
	"log/slog"
	"sync"

	domainauth "github.com/forkful/forkful-cli/internal/domain/auth"
	"github.com/forkful/forkful-cli/internal/domain/route"
	"github.com/forkful/forkful-cli/internal/ports"
)

// Decision is the terminal state of one page-entry evaluation.
type Decision string

const (
	// DecisionAllowed means the page renders; no navigation happened.
	DecisionAllowed Decision = "allowed"
	// DecisionRedirectToLogin means the visitor was sent to the login
	// page and the original destination was captured.
	DecisionRedirectToLogin Decision = "redirect_to_login"
	// DecisionRedirectHome means a logged-in identity lacked the role for
	// the page and was sent to the public landing page.
	DecisionRedirectHome Decision = "redirect_home"
	// DecisionRedirectAway means an authenticated visitor was moved off
	// an auth-form page.
	DecisionRedirectAway Decision = "redirect_away"
)

// SessionReader is the read-only session access the guard needs.
type SessionReader interface {
	Get(ctx context.Context) (domainauth.Session, bool)
}

// Options groups dependencies for the Guard.
type Options struct {
	Classification route.Classification
	Sessions       SessionReader
	Navigator      ports.Navigator
	Logger         *slog.Logger
}

// Guard evaluates page entries and tracks the pending redirect captured
// when an unauthenticated visitor is bounced to the login page.
type Guard struct {
	class    route.Classification
	sessions SessionReader
	nav      ports.Navigator
	logger   *slog.Logger

	mu      sync.Mutex
	pending string
}

// New constructs a Guard.
func New(opts Options) *Guard {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		class:    opts.Classification,
		sessions: opts.Sessions,
		nav:      opts.Navigator,
		logger:   logger,
	}
}

// Evaluate runs the page-entry state machine for the navigator's current
// page. Redirects are performed before returning; insufficient role is
// never surfaced as an error, only as a silent redirect.
func (g *Guard) Evaluate(ctx context.Context) Decision {
	page := g.nav.CurrentPage()
	sess, ok := g.sessions.Get(ctx)

	// Authenticated visitors must not see auth forms.
	if ok && g.class.IsAuthPage(page) {
		target := g.consumePendingFor(sess.Identity)
		g.logger.Debug("leaving auth page, session active", "page", page, "target", target)
		g.nav.NavigateTo(target)
		return DecisionRedirectAway
	}

	level := g.class.Level(page)
	if level == route.AccessPublic {
		return DecisionAllowed
	}

	if !ok {
		g.setPending(page)
		g.logger.Debug("unauthenticated, redirecting to login", "page", page)
		g.nav.NavigateTo(g.class.LoginPage)
		return DecisionRedirectToLogin
	}

	if level == route.AccessAdminOnly && !sess.IsAdmin() {
		g.logger.Debug("insufficient role, redirecting home", "page", page, "role", sess.Identity.Role)
		g.nav.NavigateTo(g.class.PublicLanding)
		return DecisionRedirectHome
	}

	return DecisionAllowed
}

// AfterLogin resumes navigation after a successful login or registration:
// to the pending redirect target when the new identity may access it,
// otherwise to the role-appropriate landing page. The pending redirect is
// consumed either way.
func (g *Guard) AfterLogin(_ context.Context, identity domainauth.Identity) {
	g.nav.NavigateTo(g.consumePendingFor(identity))
}

// PendingRedirect returns the captured destination, if any, without
// consuming it.
func (g *Guard) PendingRedirect() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending, g.pending != ""
}

func (g *Guard) setPending(page string) {
	g.mu.Lock()
	g.pending = page
	g.mu.Unlock()
}

// consumePendingFor clears the pending redirect and returns it when the
// identity may enter it; otherwise the role's default landing page.
func (g *Guard) consumePendingFor(identity domainauth.Identity) string {
	g.mu.Lock()
	pending := g.pending
	g.pending = ""
	g.mu.Unlock()

	sess := domainauth.Session{Credential: "-", Identity: identity}
	if pending != "" && !g.class.IsAuthPage(pending) && g.class.Allows(pending, sess, true) {
		return pending
	}
	return g.class.LandingFor(identity.Role)
}
