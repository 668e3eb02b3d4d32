package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rosterhq/roster/internal/models"
	"github.com/rosterhq/roster/internal/rbac"
	apperrors "github.com/rosterhq/roster/pkg/errors"
	"github.com/rosterhq/roster/pkg/logger"
	"github.com/rosterhq/roster/pkg/metrics"
)

// MemberEntry is a member row annotated with the capabilities the requester
// has over it.
type MemberEntry struct {
	models.Member
	CanRemove bool `json:"can_remove"`
}

// InvitationEntry is a pending invitation row annotated the same way.
type InvitationEntry struct {
	models.Invitation
	CanRevoke bool `json:"can_revoke"`
}

// DirectorySnapshot is one consistent view of a team: members first in
// creation order, then pending invitations in creation order.
type DirectorySnapshot struct {
	Team        *models.Team      `json:"team"`
	Members     []MemberEntry     `json:"members"`
	Invitations []InvitationEntry `json:"invitations"`
	Onboarding  OnboardingStatus  `json:"onboarding"`
	CanInvite   bool              `json:"can_invite"`
}

// DirectoryService composes the invitation and membership workflows into one
// view per team and dispatches commands to the correct workflow.
type DirectoryService struct {
	db          *gorm.DB
	invitations *InvitationService
	members     *MembershipService
	resolver    *rbac.Resolver
	log         *zap.Logger
}

// NewDirectoryService constructs a DirectoryService instance.
func NewDirectoryService(db *gorm.DB, invitations *InvitationService, members *MembershipService, resolver *rbac.Resolver) (*DirectoryService, error) {
	if db == nil {
		return nil, errors.New("directory service: db is required")
	}
	if invitations == nil || members == nil || resolver == nil {
		return nil, errors.New("directory service: invitation service, membership service, and resolver are required")
	}
	return &DirectoryService{
		db:          db,
		invitations: invitations,
		members:     members,
		resolver:    resolver,
		log:         logger.WithModule("directory"),
	}, nil
}

// Snapshot returns the directory view for the requesting principal. Only team
// members may read the directory. Rows never mix an accepted invitation with
// its member: members and pending invitations are read inside one transaction.
func (s *DirectoryService) Snapshot(ctx context.Context, teamID string, requester *models.User) (*DirectorySnapshot, error) {
	ctx = ensureContext(ctx)

	if requester == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	var team models.Team
	err := s.db.WithContext(ctx).First(&team, "id = ?", strings.TrimSpace(teamID)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound.WithMessage("Team not found")
	}
	if err != nil {
		return nil, storeError(err, "load team")
	}

	gate, err := s.resolver.GateFor(ctx, team.ID, requester)
	if err != nil {
		return nil, err
	}
	if !gate.Can(rbac.CapViewDirectory) {
		metrics.AuthorizationDenials.WithLabelValues("directory.view").Inc()
		return nil, apperrors.ErrUnauthorized
	}

	snapshot := &DirectorySnapshot{
		Team:       &team,
		Onboarding: OnboardingFor(&team, requester),
		CanInvite:  gate.CanInvite(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members, err := membersInCreationOrder(tx, team.ID)
		if err != nil {
			return err
		}
		invitations, err := pendingInvitations(tx, team.ID)
		if err != nil {
			return err
		}

		snapshot.Members = make([]MemberEntry, 0, len(members))
		for _, member := range members {
			snapshot.Members = append(snapshot.Members, MemberEntry{
				Member:    member,
				CanRemove: gate.CanRemove(member.Email),
			})
		}

		snapshot.Invitations = make([]InvitationEntry, 0, len(invitations))
		for _, invitation := range invitations {
			snapshot.Invitations = append(snapshot.Invitations, InvitationEntry{
				Invitation: invitation,
				CanRevoke:  gate.CanInvite(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// CreateInvite dispatches to the invitation workflow.
func (s *DirectoryService) CreateInvite(ctx context.Context, teamID string, gate *rbac.Gate, input CreateInvitationInput) (*models.Invitation, error) {
	return s.invitations.Create(ctx, teamID, gate, input)
}

// RevokeInvite dispatches to the invitation workflow.
func (s *DirectoryService) RevokeInvite(ctx context.Context, teamID string, gate *rbac.Gate, invitationID string) error {
	return s.invitations.Revoke(ctx, teamID, gate, invitationID)
}

// AcceptInvite dispatches to the invitation workflow.
func (s *DirectoryService) AcceptInvite(ctx context.Context, invitationID string, acceptor *models.User) (*models.Member, error) {
	return s.invitations.Accept(ctx, invitationID, acceptor)
}

// RemoveMember dispatches to the membership workflow.
func (s *DirectoryService) RemoveMember(ctx context.Context, teamID string, gate *rbac.Gate, memberID string) error {
	return s.members.Remove(ctx, teamID, gate, memberID)
}

// RenameTeam sets or renames the team's display name. Renaming shares the
// manage-members capability. Names are never cleared once set: an empty name
// after trimming is rejected.
func (s *DirectoryService) RenameTeam(ctx context.Context, teamID string, gate *rbac.Gate, newName string) (*models.Team, error) {
	ctx = ensureContext(ctx)

	if !gate.CanInvite() {
		metrics.AuthorizationDenials.WithLabelValues("team.rename").Inc()
		return nil, apperrors.ErrUnauthorized
	}

	name := strings.TrimSpace(newName)
	if name == "" {
		return nil, apperrors.NewInvalidArgument("team name must not be empty")
	}

	var team models.Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&team, "id = ?", strings.TrimSpace(teamID)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound.WithMessage("Team not found")
		}
		if err != nil {
			return storeError(err, "load team")
		}

		if err := tx.Model(&team).Update("name", name).Error; err != nil {
			return storeError(err, "rename team")
		}
		team.Name = &name
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("team renamed", zap.String("team_id", team.ID))
	return &team, nil
}
