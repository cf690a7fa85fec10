package access

import (
	"strings"

	"store-pos/internal/model"
)

type Outcome int

const (
	Allowed Outcome = iota
	Unauthenticated
	NoProfile
	Forbidden
)

const (
	LoginPath   = "/login"
	LandingPath = "/dashboard"

	noProfileNotice = "Your account has no profile assigned. Contact the administrator."
	loginNotice     = "Please log in to continue."
)

// Decision is the result of an authorization check. Notice and Redirect are empty when allowed.
type Decision struct {
	Outcome  Outcome
	Notice   string
	Redirect string
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allowed
}

// Authorize decides whether p may run an operation open to roles.
// An empty role set admits any authenticated principal. Superusers bypass the role set.
// The decision is recomputed on every call.
func Authorize(p *Principal, roles []model.Role) Decision {
	if !p.Authenticated() {
		return Decision{Outcome: Unauthenticated, Notice: loginNotice, Redirect: LoginPath}
	}
	if p.IsSuperuser || len(roles) == 0 {
		return Decision{Outcome: Allowed}
	}
	if p.Profile == nil {
		return Decision{Outcome: NoProfile, Notice: noProfileNotice, Redirect: LandingPath}
	}
	for _, r := range roles {
		if p.Profile.Role == r {
			return Decision{Outcome: Allowed}
		}
	}
	return Decision{Outcome: Forbidden, Notice: deniedNotice(roles), Redirect: LandingPath}
}

// Check authorizes p against the role set registered for op.
func Check(p *Principal, op Operation) Decision {
	return Authorize(p, RolesFor(op))
}

func deniedNotice(roles []model.Role) string {
	labels := make([]string, len(roles))
	for i, r := range roles {
		labels[i] = r.Label()
	}
	return "Access denied. Required role: " + strings.Join(labels, ", ")
}
