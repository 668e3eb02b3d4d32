package rbac

import "github.com/rosterhq/roster/internal/models"

// Capability is a named permission derived from role grants.
type Capability string

const (
	// CapManageMembers covers issuing invitations, revoking them, removing
	// members, and renaming the team.
	CapManageMembers Capability = "members.manage"
	// CapViewDirectory allows reading the team directory. Every role grants it.
	CapViewDirectory Capability = "directory.view"
	// CapManageBilling covers billing surfaces owned by other services.
	CapManageBilling Capability = "billing.manage"
)

// CapabilitySet is an unordered set of capabilities.
type CapabilitySet map[Capability]struct{}

// Has reports whether the set contains the capability.
func (s CapabilitySet) Has(cap Capability) bool {
	_, ok := s[cap]
	return ok
}

var roleGrants = map[models.Role][]Capability{
	models.RoleAdmin:        {CapManageMembers, CapViewDirectory, CapManageBilling},
	models.RoleCollaborator: {CapViewDirectory},
	models.RoleBilling:      {CapViewDirectory, CapManageBilling},
}

// CapabilitiesFor translates role grants into capabilities. Pure and total:
// unknown roles contribute nothing, and capabilities union across roles so
// adding a role never removes a capability granted by another.
func CapabilitiesFor(roles []models.Role) CapabilitySet {
	caps := make(CapabilitySet)
	for _, role := range roles {
		for _, cap := range roleGrants[role] {
			caps[cap] = struct{}{}
		}
	}
	return caps
}
