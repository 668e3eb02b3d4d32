package services

import "github.com/rosterhq/roster/internal/models"

// OnboardingStatus flags the onboarding steps still missing before inviting
// people to a team is considered complete. Advisory only: invitation issuance
// is technically permitted even with incomplete onboarding, and callers are
// expected to surface the incompleteness rather than hard-block.
type OnboardingStatus struct {
	TeamNameMissing      bool `json:"team_name_missing"`
	PrincipalNameMissing bool `json:"principal_name_missing"`
}

// Complete reports whether no onboarding steps remain.
func (s OnboardingStatus) Complete() bool {
	return !s.TeamNameMissing && !s.PrincipalNameMissing
}

// OnboardingFor inspects the team identity and the principal's profile.
func OnboardingFor(team *models.Team, principal *models.User) OnboardingStatus {
	return OnboardingStatus{
		TeamNameMissing:      !team.HasName(),
		PrincipalNameMissing: principal == nil || !principal.HasName(),
	}
}
