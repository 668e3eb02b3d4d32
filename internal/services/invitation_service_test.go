package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster/internal/models"
	apperrors "github.com/rosterhq/roster/pkg/errors"
)

func TestInvitationCreateRequiresCapability(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	team := createTestTeam(t, db, "Acme")
	collab := createTestUser(t, db, "collab@example.com", "Cole")
	addTestMember(t, db, team, collab, models.RoleCollaborator)

	_, err = svc.Create(context.Background(), team.ID, gateFor(t, db, team.ID, collab), CreateInvitationInput{
		Email:     "new@example.com",
		FirstName: "New",
		Roles:     []models.Role{models.RoleCollaborator},
	})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// A non-member principal is denied the same way.
	outsider := createTestUser(t, db, "outsider@example.com", "Oz")
	_, err = svc.Create(context.Background(), team.ID, gateFor(t, db, team.ID, outsider), CreateInvitationInput{
		Email: "new@example.com",
		Roles: []models.Role{models.RoleCollaborator},
	})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestInvitationCreateValidatesInput(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	team := createTestTeam(t, db, "Acme")
	admin := createTestUser(t, db, "admin@example.com", "Ada")
	addTestMember(t, db, team, admin, models.RoleAdmin)
	gate := gateFor(t, db, team.ID, admin)

	_, err = svc.Create(context.Background(), team.ID, gate, CreateInvitationInput{
		Email: "",
		Roles: []models.Role{models.RoleAdmin},
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = svc.Create(context.Background(), team.ID, gate, CreateInvitationInput{
		Email: "new@example.com",
		Roles: nil,
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidRoleSet)

	_, err = svc.Create(context.Background(), team.ID, gate, CreateInvitationInput{
		Email: "new@example.com",
		Roles: []models.Role{"superuser"},
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidRoleSet)

	_, err = svc.Create(context.Background(), "missing-team", gate, CreateInvitationInput{
		Email: "new@example.com",
		Roles: []models.Role{models.RoleAdmin},
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInvitationCreateCollapsesRolesAndNormalizesEmail(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	team := createTestTeam(t, db, "Acme")
	admin := createTestUser(t, db, "admin@example.com", "Ada")
	addTestMember(t, db, team, admin, models.RoleAdmin)

	invitation, err := svc.Create(context.Background(), team.ID, gateFor(t, db, team.ID, admin), CreateInvitationInput{
		Email:     " New@Example.COM ",
		FirstName: "New",
		LastName:  "Person",
		Roles:     []models.Role{"Billing", "billing", "collaborator"},
	})
	require.NoError(t, err)

	require.Equal(t, "new@example.com", invitation.Email)
	require.Equal(t, models.InvitationPending, invitation.Status)
	require.Equal(t, []models.Role{models.RoleBilling, models.RoleCollaborator}, []models.Role(invitation.Roles))
	require.NotNil(t, invitation.DedupKey)
}

func TestInvitationCreateRejectsDuplicatePending(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	team := createTestTeam(t, db, "Acme")
	admin := createTestUser(t, db, "admin@example.com", "Ada")
	addTestMember(t, db, team, admin, models.RoleAdmin)
	gate := gateFor(t, db, team.ID, admin)

	input := CreateInvitationInput{
		Email: "new@example.com",
		Roles: []models.Role{models.RoleCollaborator},
	}

	_, err = svc.Create(context.Background(), team.ID, gate, input)
	require.NoError(t, err)

	// Same email, different case: still a duplicate.
	input.Email = "NEW@example.com"
	_, err = svc.Create(context.Background(), team.ID, gate, input)
	require.ErrorIs(t, err, apperrors.ErrDuplicateInvitation)

	// A different team accepts the same email.
	other := createTestTeam(t, db, "Other")
	addTestMember(t, db, other, admin, models.RoleAdmin)
	_, err = svc.Create(context.Background(), other.ID, gateFor(t, db, other.ID, admin), input)
	require.NoError(t, err)
}

func TestInvitationRevokeLifecycle(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	team := createTestTeam(t, db, "Acme")
	admin := createTestUser(t, db, "admin@example.com", "Ada")
	addTestMember(t, db, team, admin, models.RoleAdmin)
	gate := gateFor(t, db, team.ID, admin)

	invitation, err := svc.Create(context.Background(), team.ID, gate, CreateInvitationInput{
		Email: "new@example.com",
		Roles: []models.Role{models.RoleCollaborator},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), team.ID, gate, invitation.ID))

	// Double revoke is a reportable conflict, not a no-op.
	err = svc.Revoke(context.Background(), team.ID, gate, invitation.ID)
	require.ErrorIs(t, err, apperrors.ErrAlreadyRevoked)

	// A revoked invitation frees the dedup slot for a fresh one.
	_, err = svc.Create(context.Background(), team.ID, gate, CreateInvitationInput{
		Email: "new@example.com",
		Roles: []models.Role{models.RoleCollaborator},
	})
	require.NoError(t, err)
}

func TestInvitationRevokeScopedToTeam(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	team := createTestTeam(t, db, "Acme")
	other := createTestTeam(t, db, "Other")
	admin := createTestUser(t, db, "admin@example.com", "Ada")
	addTestMember(t, db, team, admin, models.RoleAdmin)
	addTestMember(t, db, other, admin, models.RoleAdmin)

	invitation, err := svc.Create(context.Background(), team.ID, gateFor(t, db, team.ID, admin), CreateInvitationInput{
		Email: "new@example.com",
		Roles: []models.Role{models.RoleCollaborator},
	})
	require.NoError(t, err)

	err = svc.Revoke(context.Background(), other.ID, gateFor(t, db, other.ID, admin), invitation.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	collab := createTestUser(t, db, "collab@example.com", "Cole")
	addTestMember(t, db, team, collab, models.RoleCollaborator)
	err = svc.Revoke(context.Background(), team.ID, gateFor(t, db, team.ID, collab), invitation.ID)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestInvitationAcceptCreatesMemberWithInvitationRoles(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	team := createTestTeam(t, db, "Acme")
	admin := createTestUser(t, db, "admin@example.com", "Ada")
	addTestMember(t, db, team, admin, models.RoleAdmin)

	invitation, err := svc.Create(context.Background(), team.ID, gateFor(t, db, team.ID, admin), CreateInvitationInput{
		Email:     "a@x.com",
		FirstName: "Avery",
		LastName:  "Xu",
		Roles:     []models.Role{models.RoleCollaborator, models.RoleBilling},
	})
	require.NoError(t, err)

	// Email match is case-insensitive.
	acceptor := createTestUser(t, db, "A@X.com", "")
	member, err := svc.Accept(context.Background(), invitation.ID, acceptor)
	require.NoError(t, err)

	require.Equal(t, team.ID, member.TeamID)
	require.Equal(t, acceptor.ID, member.UserID)
	require.Equal(t, []models.Role(invitation.Roles), []models.Role(member.Roles))

	// Names fall back to the invitation when the profile is incomplete.
	require.NotNil(t, member.FirstName)
	require.Equal(t, "Avery", *member.FirstName)

	var reloaded models.Invitation
	require.NoError(t, db.First(&reloaded, "id = ?", invitation.ID).Error)
	require.Equal(t, models.InvitationAccepted, reloaded.Status)
	require.Nil(t, reloaded.DedupKey)
}

func TestInvitationAcceptRejectsWrongEmail(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	team := createTestTeam(t, db, "Acme")
	admin := createTestUser(t, db, "admin@example.com", "Ada")
	addTestMember(t, db, team, admin, models.RoleAdmin)

	invitation, err := svc.Create(context.Background(), team.ID, gateFor(t, db, team.ID, admin), CreateInvitationInput{
		Email: "invited@example.com",
		Roles: []models.Role{models.RoleCollaborator},
	})
	require.NoError(t, err)

	impostor := createTestUser(t, db, "someone-else@example.com", "")
	_, err = svc.Accept(context.Background(), invitation.ID, impostor)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestInvitationAcceptIsExactlyOnce(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	team := createTestTeam(t, db, "Acme")
	admin := createTestUser(t, db, "admin@example.com", "Ada")
	addTestMember(t, db, team, admin, models.RoleAdmin)

	invitation, err := svc.Create(context.Background(), team.ID, gateFor(t, db, team.ID, admin), CreateInvitationInput{
		Email: "invited@example.com",
		Roles: []models.Role{models.RoleCollaborator},
	})
	require.NoError(t, err)

	acceptor := createTestUser(t, db, "invited@example.com", "")
	_, err = svc.Accept(context.Background(), invitation.ID, acceptor)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), invitation.ID, acceptor)
	require.ErrorIs(t, err, apperrors.ErrInvalidState)

	var members int64
	require.NoError(t, db.Model(&models.Member{}).Where("team_id = ?", team.ID).Count(&members).Error)
	require.EqualValues(t, 2, members) // admin + the accepted invite

	// Accepting a revoked invitation is likewise an invalid transition.
	gate := gateFor(t, db, team.ID, admin)
	second, err := svc.Create(context.Background(), team.ID, gate, CreateInvitationInput{
		Email: "later@example.com",
		Roles: []models.Role{models.RoleCollaborator},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(context.Background(), team.ID, gate, second.ID))

	later := createTestUser(t, db, "later@example.com", "")
	_, err = svc.Accept(context.Background(), second.ID, later)
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestInvitationAcceptUnknownID(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	acceptor := createTestUser(t, db, "invited@example.com", "")
	_, err = svc.Accept(context.Background(), "does-not-exist", acceptor)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListPendingOrderedByCreation(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewInvitationService(db, nil)
	require.NoError(t, err)

	team := createTestTeam(t, db, "Acme")
	admin := createTestUser(t, db, "admin@example.com", "Ada")
	addTestMember(t, db, team, admin, models.RoleAdmin)
	gate := gateFor(t, db, team.ID, admin)

	emails := []string{"one@example.com", "two@example.com", "three@example.com"}
	for _, email := range emails {
		_, err := svc.Create(context.Background(), team.ID, gate, CreateInvitationInput{
			Email: email,
			Roles: []models.Role{models.RoleCollaborator},
		})
		require.NoError(t, err)
	}

	pending, err := svc.ListPending(context.Background(), team.ID)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for i, email := range emails {
		require.Equal(t, email, pending[i].Email)
	}
}
