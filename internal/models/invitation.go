package models

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// InvitationStatus is the lifecycle state of an invitation. Pending is the
// only non-terminal state: accepted and revoked admit no further transitions.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
)

// Invitation represents an offer to join a team. While pending, DedupKey holds
// team_id:email so the unique index enforces at most one pending invitation
// per (team, email) pair; terminal transitions null it out.
type Invitation struct {
	BaseModel

	TeamID string `gorm:"type:uuid;not null;index" json:"team_id"`

	Email     string `gorm:"not null;index" json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Roles  datatypes.JSONSlice[Role] `json:"roles"`
	Status InvitationStatus          `gorm:"not null;default:pending;index" json:"status"`

	DedupKey *string `gorm:"uniqueIndex" json:"-"`

	Team *Team `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// InvitationDedupKey builds the uniqueness key for a pending invitation.
func InvitationDedupKey(teamID, email string) string {
	return fmt.Sprintf("%s:%s", teamID, strings.ToLower(strings.TrimSpace(email)))
}

// IsPending reports whether the invitation can still transition.
func (i *Invitation) IsPending() bool {
	return i != nil && i.Status == InvitationPending
}
