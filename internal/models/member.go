package models

import "gorm.io/datatypes"

// Member is an active, accepted participant of exactly one team per record.
// Members are only created by accepting an invitation and are hard-deleted on
// removal. Email and names are denormalized from the accepted invitation so
// directory listings never need a join.
type Member struct {
	BaseModel

	TeamID string `gorm:"type:uuid;not null;uniqueIndex:idx_members_team_user" json:"team_id"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_members_team_user" json:"user_id"`

	Email     string  `gorm:"not null;index" json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`

	Roles datatypes.JSONSlice[Role] `json:"roles"`

	Team *Team `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
