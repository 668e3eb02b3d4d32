package models

// Team groups members and their pending invitations. The name is optional
// until set once by an authorized principal; after that it may be renamed but
// never cleared.
type Team struct {
	BaseModel

	Name *string `json:"name,omitempty"`

	Members     []Member     `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Invitations []Invitation `gorm:"constraint:OnDelete:CASCADE" json:"invitations,omitempty"`
}

// HasName reports whether the team identity has been completed.
func (t *Team) HasName() bool {
	return t != nil && t.Name != nil && *t.Name != ""
}

// DisplayName returns the team name or an empty string when unset.
func (t *Team) DisplayName() string {
	if t.HasName() {
		return *t.Name
	}
	return ""
}
