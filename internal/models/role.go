package models

import "strings"

// Role is an enumerable tag attached to a member or invitation. A row may hold
// a set of roles; order is irrelevant and duplicates are collapsed.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCollaborator Role = "collaborator"
	RoleBilling      Role = "billing"
)

// Recognized reports whether the role is a known tag.
func (r Role) Recognized() bool {
	switch r {
	case RoleAdmin, RoleCollaborator, RoleBilling:
		return true
	}
	return false
}

// NormalizeRoles trims, lowercases, and de-duplicates role tags. The second
// return value is false when the input is empty after cleaning or contains an
// unrecognized tag.
func NormalizeRoles(roles []Role) ([]Role, bool) {
	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, role := range roles {
		role = Role(strings.ToLower(strings.TrimSpace(string(role))))
		if role == "" {
			continue
		}
		if !role.Recognized() {
			return nil, false
		}
		if _, exists := seen[role]; exists {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// ContainsRole reports whether the set holds the given role.
func ContainsRole(roles []Role, target Role) bool {
	for _, role := range roles {
		if role == target {
			return true
		}
	}
	return false
}
