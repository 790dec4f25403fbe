// Package route contains the static page classification consulted by the
// route guard. The mapping is fixed at construction and never mutated at
// runtime.
package route

import domainauth "github.com/forkful/forkful-cli/internal/domain/auth"

// Access is the minimum access level required to enter a page.
type Access string

const (
	// AccessPublic pages are reachable by any visitor.
	AccessPublic Access = "public"
	// AccessAuthenticated pages require any logged-in identity.
	AccessAuthenticated Access = "authenticated"
	// AccessAdminOnly pages require a logged-in identity with the admin role.
	AccessAdminOnly Access = "admin-only"
)

// Classification maps page identifiers to their required access level and
// names the well-known pages the guard navigates to.
type Classification struct {
	// Pages is the per-page minimum access level. Pages absent from the
	// map are treated as public.
	Pages map[string]Access

	// LoginPage and RegisterPage host auth forms; authenticated visitors
	// are redirected away from them.
	LoginPage    string
	RegisterPage string

	// PublicLanding is the default destination for visitors and users.
	PublicLanding string

	// AdminLanding is the default destination for admin identities.
	AdminLanding string
}

// Level returns the required access level for a page.
func (c Classification) Level(page string) Access {
	if lvl, ok := c.Pages[page]; ok {
		return lvl
	}
	return AccessPublic
}

// IsAuthPage reports whether page hosts a login or registration form.
func (c Classification) IsAuthPage(page string) bool {
	return page == c.LoginPage || page == c.RegisterPage
}

// LandingFor returns the role-appropriate default landing page.
func (c Classification) LandingFor(role domainauth.Role) string {
	if role == domainauth.RoleAdmin {
		return c.AdminLanding
	}
	return c.PublicLanding
}

// Allows reports whether a visitor with the given session state may enter
// the page. A missing session (ok=false) only satisfies public pages.
func (c Classification) Allows(page string, sess domainauth.Session, ok bool) bool {
	switch c.Level(page) {
	case AccessPublic:
		return true
	case AccessAuthenticated:
		return ok
	case AccessAdminOnly:
		return ok && sess.IsAdmin()
	default:
		return false
	}
}
