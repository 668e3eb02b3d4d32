package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rosterhq/roster/internal/database/testutil"
	"github.com/rosterhq/roster/internal/models"
	"github.com/rosterhq/roster/internal/rbac"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t)
}

func createTestUser(t *testing.T, db *gorm.DB, email, firstName string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Password: "not-a-real-hash",
	}
	if firstName != "" {
		user.FirstName = &firstName
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTeam(t *testing.T, db *gorm.DB, name string) *models.Team {
	t.Helper()

	team := &models.Team{}
	if name != "" {
		team.Name = &name
	}
	require.NoError(t, db.Create(team).Error)
	return team
}

func addTestMember(t *testing.T, db *gorm.DB, team *models.Team, user *models.User, roles ...models.Role) *models.Member {
	t.Helper()

	member := &models.Member{
		TeamID:    team.ID,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     roles,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func gateFor(t *testing.T, db *gorm.DB, teamID string, user *models.User) *rbac.Gate {
	t.Helper()

	resolver, err := rbac.NewResolver(db)
	require.NoError(t, err)

	gate, err := resolver.GateFor(context.Background(), teamID, user)
	require.NoError(t, err)
	return gate
}
