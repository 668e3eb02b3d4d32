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

// MembershipService lists active members and removes them.
type MembershipService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewMembershipService constructs a MembershipService instance.
func NewMembershipService(db *gorm.DB) (*MembershipService, error) {
	if db == nil {
		return nil, errors.New("membership service: db is required")
	}
	return &MembershipService{
		db:  db,
		log: logger.WithModule("membership"),
	}, nil
}

// List returns the team's members in creation order. The ordering is stable
// and deterministic so callers can render it directly.
func (s *MembershipService) List(ctx context.Context, teamID string) ([]models.Member, error) {
	return membersInCreationOrder(s.db.WithContext(ensureContext(ctx)), teamID)
}

func membersInCreationOrder(tx *gorm.DB, teamID string) ([]models.Member, error) {
	var members []models.Member
	err := tx.
		Where("team_id = ?", strings.TrimSpace(teamID)).
		Order("created_at ASC, id ASC").
		Find(&members).Error
	if err != nil {
		return nil, storeError(err, "list members")
	}
	return members, nil
}

// Remove hard-deletes a member record. The gate forbids self-removal
// regardless of capability, so a team can never orphan itself by accident.
func (s *MembershipService) Remove(ctx context.Context, teamID string, gate *rbac.Gate, memberID string) error {
	ctx = ensureContext(ctx)

	if !gate.CanInvite() {
		metrics.AuthorizationDenials.WithLabelValues("member.remove").Inc()
		return apperrors.ErrUnauthorized
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.Member
		err := tx.First(&member, "id = ? AND team_id = ?", strings.TrimSpace(memberID), strings.TrimSpace(teamID)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound.WithMessage("Member not found")
		}
		if err != nil {
			return storeError(err, "load member")
		}

		if !gate.CanRemove(member.Email) {
			metrics.AuthorizationDenials.WithLabelValues("member.remove").Inc()
			return apperrors.ErrUnauthorized
		}

		if err := tx.Delete(&member).Error; err != nil {
			return storeError(err, "delete member")
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.MemberRemovals.Inc()
	s.log.Info("member removed",
		zap.String("team_id", teamID),
		zap.String("member_id", memberID))
	return nil
}
