package rbac

import (
	"strings"

	"github.com/rosterhq/roster/internal/models"
)

// Gate answers capability queries for one principal acting within one team.
// It is computed once per request from the principal's member record and
// passed into every workflow call; it has no side effects and is deterministic
// for a given team and principal snapshot.
type Gate struct {
	email string
	caps  CapabilitySet
}

// NewGate builds a gate for a principal with the given email and team roles.
func NewGate(email string, roles []models.Role) *Gate {
	return &Gate{
		email: strings.ToLower(strings.TrimSpace(email)),
		caps:  CapabilitiesFor(roles),
	}
}

// Email returns the acting principal's normalized email.
func (g *Gate) Email() string {
	return g.email
}

// Can reports whether the principal holds the capability.
func (g *Gate) Can(cap Capability) bool {
	return g != nil && g.caps.Has(cap)
}

// CanInvite reports whether the principal may issue and revoke invitations.
func (g *Gate) CanInvite() bool {
	return g.Can(CapManageMembers)
}

// CanRemove reports whether the principal may remove the member identified by
// targetEmail. Self-removal is always forbidden, regardless of capability.
func (g *Gate) CanRemove(targetEmail string) bool {
	if !g.CanInvite() {
		return false
	}
	return !strings.EqualFold(g.email, strings.TrimSpace(targetEmail))
}
