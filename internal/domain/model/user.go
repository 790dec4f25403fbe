//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"time"

	domainauth "github.com/forkful/forkful-cli/internal/domain/auth"
)

// User is an account record as listed in the admin dashboard.
type User struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      domainauth.Role `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// Profile is the authenticated user's own account view.
type Profile struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        domainauth.Role `json:"role"`
	ReviewCount int             `json:"review_count"`
	JoinedAt    time.Time       `json:"joined_at"`
}
