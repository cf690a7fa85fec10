package access

import (
	"github.com/google/uuid"

	"store-pos/internal/model"
)

// Principal is the acting account of a request. A nil *Principal is an anonymous caller.
type Principal struct {
	UserID      uuid.UUID
	Username    string
	IsSuperuser bool
	Profile     *model.UserProfile
	ClientID    *uuid.UUID
}

// NewPrincipal builds a principal from a user loaded with its Profile and Client.
func NewPrincipal(u *model.User) *Principal {
	p := &Principal{
		UserID:      u.ID,
		Username:    u.Username,
		IsSuperuser: u.IsSuperuser,
		Profile:     u.Profile,
	}
	if u.Client != nil {
		id := u.Client.ID
		p.ClientID = &id
	}
	return p
}

func (p *Principal) Authenticated() bool {
	return p != nil && p.UserID != uuid.Nil
}

// Role returns the profile role, or "" when no profile is assigned.
func (p *Principal) Role() model.Role {
	if p == nil || p.Profile == nil {
		return ""
	}
	return p.Profile.Role
}

// AuditName is stored in the CreatedBy/UpdatedBy/DeletedBy columns.
func (p *Principal) AuditName() string {
	if p == nil {
		return "system"
	}
	return p.Username
}
