// Package guard decides whether a session may open a view. It holds no state
// and has no side effects.
package guard

import "credit-admin/internal/core/domain"

// Outcome is the result of evaluating a protected view
type Outcome int

const (
	Allow Outcome = iota
	Unauthenticated
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

// Redirect targets for denied navigation
const (
	LoginPath   = "/login"
	LandingPath = "/dashboard"
)

// Decision is an outcome plus where the client should go when denied
type Decision struct {
	Outcome  Outcome `json:"-"`
	Result   string  `json:"result"`
	Redirect string  `json:"redirect,omitempty"`
}

// Allowed reports whether the decision lets the session through
func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

// Evaluate checks session against an optional allow-list of roles.
// An empty allow-list admits any authenticated session.
func Evaluate(session *domain.User, allowed ...domain.Role) Decision {
	if session == nil {
		return decision(Unauthenticated, LoginPath)
	}
	if len(allowed) > 0 && !hasRole(allowed, session.Role) {
		return decision(Forbidden, LandingPath)
	}
	return decision(Allow, "")
}

func decision(o Outcome, redirect string) Decision {
	return Decision{Outcome: o, Result: o.String(), Redirect: redirect}
}

func hasRole(allowed []domain.Role, role domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
