package main

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-cli/internal/bootstrap"
	domainauth "github.com/forkful/forkful-cli/internal/domain/auth"
	"github.com/forkful/forkful-cli/internal/domain/route"
	"github.com/forkful/forkful-cli/internal/guard"
)

// Page names. Each top-level command enters one of these; the guard
// decides whether the visitor may stay.
const (
	pageHome         = "home"
	pageFoods        = "foods"
	pageFood         = "food"
	pageReviewNew    = "review/new"
	pageProfile      = "profile"
	pageLogin        = "login"
	pageRegister     = "register"
	pageAdmin        = "admin"
	pageAdminFoods   = "admin/foods"
	pageAdminReviews = "admin/reviews"
	pageAdminUsers   = "admin/users"
)

func classification() route.Classification {
	return route.Classification{
		Pages: map[string]route.Access{
			pageHome:         route.AccessPublic,
			pageFoods:        route.AccessPublic,
			pageFood:         route.AccessPublic,
			pageLogin:        route.AccessPublic,
			pageRegister:     route.AccessPublic,
			pageReviewNew:    route.AccessAuthenticated,
			pageProfile:      route.AccessAuthenticated,
			pageAdmin:        route.AccessAdminOnly,
			pageAdminFoods:   route.AccessAdminOnly,
			pageAdminReviews: route.AccessAdminOnly,
			pageAdminUsers:   route.AccessAdminOnly,
		},
		LoginPage:     pageLogin,
		RegisterPage:  pageRegister,
		PublicLanding: pageHome,
		AdminLanding:  pageAdmin,
	}
}

// cliNavigator tracks the current page for the guard. Redirects just move
// the pointer; rendering happens after the guard settles.
type cliNavigator struct {
	mu      sync.Mutex
	current string
}

func (n *cliNavigator) CurrentPage() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *cliNavigator) NavigateTo(page string) {
	n.mu.Lock()
	n.current = page
	n.mu.Unlock()
}

// appContext bundles the wired app with the CLI's navigator and guard.
type appContext struct {
	app   *bootstrap.App
	nav   *cliNavigator
	guard *guard.Guard
}

func newAppContext(app *bootstrap.App) *appContext {
	nav := &cliNavigator{}
	g := guard.New(guard.Options{
		Classification: classification(),
		Sessions:       app.Sessions,
		Navigator:      nav,
		Logger:         app.Logger,
	})
	return &appContext{app: app, nav: nav, guard: g}
}

func (a *appContext) Close() {
	if err := a.app.Close(); err != nil {
		a.app.Logger.Warn("closing app failed", "error", err)
	}
}

// visit enters a page and resolves whatever the guard decides. A visitor
// bounced to the login page is prompted to sign in and then resumed,
// landing back on the requested page when their role allows it. The
// returned page is where the visitor actually ended up.
func (a *appContext) visit(cmd *cobra.Command, page string) (string, error) {
	ctx := cmd.Context()
	a.nav.NavigateTo(page)

	switch a.guard.Evaluate(ctx) {
	case guard.DecisionAllowed:
		return page, nil
	case guard.DecisionRedirectToLogin:
		fmt.Fprintln(cmd.OutOrStdout(), "Sign in to continue.")
		identity, err := a.promptLogin(cmd)
		if err != nil {
			return "", err
		}
		a.guard.AfterLogin(ctx, identity)
		return a.nav.CurrentPage(), nil
	case guard.DecisionRedirectHome:
		fmt.Fprintln(cmd.OutOrStdout(), "That page needs an admin account.")
		return a.nav.CurrentPage(), nil
	case guard.DecisionRedirectAway:
		return a.nav.CurrentPage(), nil
	}
	return a.nav.CurrentPage(), nil
}

// promptLogin reads credentials from the terminal and signs in.
func (a *appContext) promptLogin(cmd *cobra.Command) (domainauth.Identity, error) {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprint(out, "Email: ")
	identifier, err := reader.ReadString('\n')
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("read email: %w", err)
	}
	fmt.Fprint(out, "Password: ")
	secret, err := reader.ReadString('\n')
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("read password: %w", err)
	}

	identity, err := a.app.Gateway.Login(cmd.Context(),
		strings.TrimSpace(identifier), strings.TrimRight(secret, "\r\n"))
	if err != nil {
		return domainauth.Identity{}, err
	}
	fmt.Fprintf(out, "Signed in as %s.\n", identity.Name)
	return identity, nil
}
