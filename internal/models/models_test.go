package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRolesCollapsesDuplicates(t *testing.T) {
	roles, ok := NormalizeRoles([]Role{"Admin", " admin ", "billing"})
	require.True(t, ok)
	require.Equal(t, []Role{RoleAdmin, RoleBilling}, roles)
}

func TestNormalizeRolesRejectsUnknown(t *testing.T) {
	_, ok := NormalizeRoles([]Role{"admin", "superuser"})
	require.False(t, ok)
}

func TestNormalizeRolesRejectsEmpty(t *testing.T) {
	_, ok := NormalizeRoles(nil)
	require.False(t, ok)

	_, ok = NormalizeRoles([]Role{"", "  "})
	require.False(t, ok)
}

func TestInvitationDedupKeyNormalizesEmail(t *testing.T) {
	a := InvitationDedupKey("team-1", "Alice@Example.COM")
	b := InvitationDedupKey("team-1", " alice@example.com ")
	require.Equal(t, a, b)

	c := InvitationDedupKey("team-2", "alice@example.com")
	require.NotEqual(t, a, c)
}

func TestTeamHasName(t *testing.T) {
	team := &Team{}
	require.False(t, team.HasName())
	require.Empty(t, team.DisplayName())

	name := "Acme"
	team.Name = &name
	require.True(t, team.HasName())
	require.Equal(t, "Acme", team.DisplayName())
}

func TestInvitationIsPending(t *testing.T) {
	inv := &Invitation{Status: InvitationPending}
	require.True(t, inv.IsPending())

	inv.Status = InvitationRevoked
	require.False(t, inv.IsPending())
}
