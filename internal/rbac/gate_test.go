package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster/internal/models"
)

func TestCapabilitiesForUnionsAcrossRoles(t *testing.T) {
	collab := CapabilitiesFor([]models.Role{models.RoleCollaborator})
	require.True(t, collab.Has(CapViewDirectory))
	require.False(t, collab.Has(CapManageMembers))

	// Adding a role never removes a capability already granted.
	both := CapabilitiesFor([]models.Role{models.RoleCollaborator, models.RoleAdmin})
	for cap := range collab {
		require.True(t, both.Has(cap), string(cap))
	}
	require.True(t, both.Has(CapManageMembers))
}

func TestCapabilitiesForUnknownRole(t *testing.T) {
	caps := CapabilitiesFor([]models.Role{"superuser"})
	require.Empty(t, caps)
}

func TestGateCanInvite(t *testing.T) {
	admin := NewGate("admin@example.com", []models.Role{models.RoleAdmin})
	require.True(t, admin.CanInvite())

	member := NewGate("member@example.com", []models.Role{models.RoleCollaborator})
	require.False(t, member.CanInvite())

	none := NewGate("ghost@example.com", nil)
	require.False(t, none.CanInvite())
}

func TestGateCanRemoveForbidsSelf(t *testing.T) {
	gate := NewGate("Admin@Example.com", []models.Role{models.RoleAdmin})

	require.True(t, gate.CanRemove("other@example.com"))
	require.False(t, gate.CanRemove("admin@example.com"))
	require.False(t, gate.CanRemove(" ADMIN@EXAMPLE.COM "))
}

func TestGateCanRemoveRequiresCapability(t *testing.T) {
	gate := NewGate("member@example.com", []models.Role{models.RoleCollaborator})
	require.False(t, gate.CanRemove("other@example.com"))
}
