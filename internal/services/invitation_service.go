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

// CreateInvitationInput captures the fields of a new invitation.
type CreateInvitationInput struct {
	Email     string
	FirstName string
	LastName  string
	Roles     []models.Role
}

// InvitationService creates, lists, revokes, and accepts invitations.
type InvitationService struct {
	db       *gorm.DB
	notifier *InviteNotifier
	log      *zap.Logger
}

// NewInvitationService constructs an InvitationService. The notifier may be
// nil when invite emails are disabled.
func NewInvitationService(db *gorm.DB, notifier *InviteNotifier) (*InvitationService, error) {
	if db == nil {
		return nil, errors.New("invitation service: db is required")
	}
	return &InvitationService{
		db:       db,
		notifier: notifier,
		log:      logger.WithModule("invitations"),
	}, nil
}

// Create issues a pending invitation on behalf of the gated principal. At
// most one pending invitation may exist per (team, email); concurrent creates
// race on the dedup key's unique index and exactly one wins.
func (s *InvitationService) Create(ctx context.Context, teamID string, gate *rbac.Gate, input CreateInvitationInput) (*models.Invitation, error) {
	ctx = ensureContext(ctx)

	if !gate.CanInvite() {
		metrics.AuthorizationDenials.WithLabelValues("invitation.create").Inc()
		return nil, apperrors.ErrUnauthorized
	}

	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, apperrors.NewInvalidArgument("email is required")
	}

	roles, ok := models.NormalizeRoles(input.Roles)
	if !ok {
		return nil, apperrors.ErrInvalidRoleSet
	}

	var team models.Team
	err := s.db.WithContext(ctx).First(&team, "id = ?", strings.TrimSpace(teamID)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound.WithMessage("Team not found")
	}
	if err != nil {
		return nil, storeError(err, "load team")
	}

	dedup := models.InvitationDedupKey(team.ID, email)
	invitation := &models.Invitation{
		TeamID:    team.ID,
		Email:     email,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Roles:     roles,
		Status:    models.InvitationPending,
		DedupKey:  &dedup,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&models.Invitation{}).
			Where("team_id = ? AND email = ? AND status = ?", team.ID, email, models.InvitationPending).
			Count(&pending).Error; err != nil {
			return storeError(err, "check pending invitations")
		}
		if pending > 0 {
			return apperrors.ErrDuplicateInvitation
		}

		if err := tx.Create(invitation).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.ErrDuplicateInvitation
			}
			return storeError(err, "create invitation")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.InvitationEvents.WithLabelValues("created").Inc()
	s.log.Info("invitation created",
		zap.String("team_id", team.ID),
		zap.String("invitation_id", invitation.ID))

	s.notifier.Dispatch(&team, invitation)

	return invitation, nil
}

// Revoke terminates a pending invitation. Revoking an already revoked
// invitation is a reportable error rather than a no-op, so racing callers can
// observe the conflict.
func (s *InvitationService) Revoke(ctx context.Context, teamID string, gate *rbac.Gate, invitationID string) error {
	ctx = ensureContext(ctx)

	if !gate.CanInvite() {
		metrics.AuthorizationDenials.WithLabelValues("invitation.revoke").Inc()
		return apperrors.ErrUnauthorized
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invitation models.Invitation
		err := tx.First(&invitation, "id = ? AND team_id = ?", strings.TrimSpace(invitationID), strings.TrimSpace(teamID)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound.WithMessage("Invitation not found")
		}
		if err != nil {
			return storeError(err, "load invitation")
		}

		switch invitation.Status {
		case models.InvitationRevoked:
			return apperrors.ErrAlreadyRevoked
		case models.InvitationAccepted:
			return apperrors.ErrInvalidState
		}

		res := tx.Model(&models.Invitation{}).
			Where("id = ? AND status = ?", invitation.ID, models.InvitationPending).
			Updates(map[string]any{
				"status":    models.InvitationRevoked,
				"dedup_key": nil,
			})
		if res.Error != nil {
			return storeError(res.Error, "revoke invitation")
		}
		if res.RowsAffected == 0 {
			// Lost a race with another terminal transition.
			return apperrors.ErrInvalidState
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.InvitationEvents.WithLabelValues("revoked").Inc()
	s.log.Info("invitation revoked",
		zap.String("team_id", teamID),
		zap.String("invitation_id", invitationID))
	return nil
}

// Accept transitions a pending invitation to accepted and creates exactly one
// member with the invitation's roles. Only the invited email may accept; the
// match is case-insensitive. Concurrent accepts race on the guarded update and
// exactly one caller wins.
func (s *InvitationService) Accept(ctx context.Context, invitationID string, acceptor *models.User) (*models.Member, error) {
	ctx = ensureContext(ctx)

	if acceptor == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	var member *models.Member
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invitation models.Invitation
		err := tx.First(&invitation, "id = ?", strings.TrimSpace(invitationID)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound.WithMessage("Invitation not found")
		}
		if err != nil {
			return storeError(err, "load invitation")
		}

		if !strings.EqualFold(invitation.Email, strings.TrimSpace(acceptor.Email)) {
			return apperrors.ErrUnauthorized.WithMessage("Invitation was issued to a different email")
		}
		if invitation.Status != models.InvitationPending {
			return apperrors.ErrInvalidState
		}

		res := tx.Model(&models.Invitation{}).
			Where("id = ? AND status = ?", invitation.ID, models.InvitationPending).
			Updates(map[string]any{
				"status":    models.InvitationAccepted,
				"dedup_key": nil,
			})
		if res.Error != nil {
			return storeError(res.Error, "accept invitation")
		}
		if res.RowsAffected == 0 {
			// First concurrent accept wins; everyone else lands here.
			return apperrors.ErrInvalidState
		}

		member = &models.Member{
			TeamID:    invitation.TeamID,
			UserID:    acceptor.ID,
			Email:     normalizeEmail(acceptor.Email),
			FirstName: fallbackName(acceptor.FirstName, invitation.FirstName),
			LastName:  fallbackName(acceptor.LastName, invitation.LastName),
			Roles:     invitation.Roles,
		}
		if err := tx.Create(member).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.ErrInvalidState.WithMessage("User is already a member of this team")
			}
			return storeError(err, "create member")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.InvitationEvents.WithLabelValues("accepted").Inc()
	s.log.Info("invitation accepted",
		zap.String("invitation_id", invitationID),
		zap.String("member_id", member.ID))
	return member, nil
}

// ListPending returns the team's pending invitations in creation order.
func (s *InvitationService) ListPending(ctx context.Context, teamID string) ([]models.Invitation, error) {
	return pendingInvitations(s.db.WithContext(ensureContext(ctx)), teamID)
}

func pendingInvitations(tx *gorm.DB, teamID string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := tx.
		Where("team_id = ? AND status = ?", strings.TrimSpace(teamID), models.InvitationPending).
		Order("created_at ASC, id ASC").
		Find(&invitations).Error
	if err != nil {
		return nil, storeError(err, "list invitations")
	}
	return invitations, nil
}

func fallbackName(primary *string, secondary string) *string {
	if primary != nil && strings.TrimSpace(*primary) != "" {
		return primary
	}
	secondary = strings.TrimSpace(secondary)
	if secondary == "" {
		return nil
	}
	return &secondary
}
