package rbac

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rosterhq/roster/internal/models"
	apperrors "github.com/rosterhq/roster/pkg/errors"
)

// Resolver computes per-request authorization gates from membership records.
type Resolver struct {
	db *gorm.DB
}

// NewResolver constructs a Resolver backed by the provided database.
func NewResolver(db *gorm.DB) (*Resolver, error) {
	if db == nil {
		return nil, errors.New("rbac resolver: db is required")
	}
	return &Resolver{db: db}, nil
}

// GateFor loads the principal's member record in the team and derives their
// gate. Principals without a membership get a gate with no capabilities, so
// every capability query answers false.
func (r *Resolver) GateFor(ctx context.Context, teamID string, principal *models.User) (*Gate, error) {
	if principal == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, apperrors.NewInvalidArgument("team id is required")
	}

	var member models.Member
	err := r.db.WithContext(ctx).
		First(&member, "team_id = ? AND user_id = ?", teamID, principal.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewGate(principal.Email, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("rbac resolver: load member: %w", err)
	}

	return NewGate(principal.Email, member.Roles), nil
}
