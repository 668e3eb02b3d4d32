package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster/internal/models"
)

func TestOnboardingFor(t *testing.T) {
	name := "Acme"
	first := "Ada"

	cases := []struct {
		desc      string
		team      models.Team
		principal models.User
		want      OnboardingStatus
	}{
		{
			desc: "nothing set",
			want: OnboardingStatus{TeamNameMissing: true, PrincipalNameMissing: true},
		},
		{
			desc: "team named only",
			team: models.Team{Name: &name},
			want: OnboardingStatus{PrincipalNameMissing: true},
		},
		{
			desc:      "principal named only",
			principal: models.User{FirstName: &first},
			want:      OnboardingStatus{TeamNameMissing: true},
		},
		{
			desc:      "complete",
			team:      models.Team{Name: &name},
			principal: models.User{FirstName: &first},
			want:      OnboardingStatus{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			got := OnboardingFor(&tc.team, &tc.principal)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.want == OnboardingStatus{}, got.Complete())
		})
	}
}

func TestOnboardingForNilPrincipal(t *testing.T) {
	got := OnboardingFor(&models.Team{}, nil)
	require.True(t, got.PrincipalNameMissing)
}
