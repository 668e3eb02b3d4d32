package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster/internal/models"
	"github.com/rosterhq/roster/internal/rbac"
	"github.com/rosterhq/roster/internal/services"
	"github.com/rosterhq/roster/pkg/response"
)

// DirectoryHandler exposes the team directory operations over HTTP.
type DirectoryHandler struct {
	directory *services.DirectoryService
	resolver  *rbac.Resolver
}

// NewDirectoryHandler constructs a DirectoryHandler instance.
func NewDirectoryHandler(directory *services.DirectoryService, resolver *rbac.Resolver) (*DirectoryHandler, error) {
	if directory == nil || resolver == nil {
		return nil, errors.New("directory handler: directory service and resolver are required")
	}
	return &DirectoryHandler{directory: directory, resolver: resolver}, nil
}

// CreateInviteRequest is the payload for inviting someone to a team.
type CreateInviteRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	FirstName string   `json:"first_name" validate:"omitempty,max=128"`
	LastName  string   `json:"last_name" validate:"omitempty,max=128"`
	Roles     []string `json:"roles" validate:"required,min=1,dive,oneof=admin collaborator billing"`
}

// SetTeamNameRequest is the payload for naming or renaming a team.
type SetTeamNameRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

// GetDirectory handles GET /api/teams/:teamID/directory.
func (h *DirectoryHandler) GetDirectory(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	snapshot, err := h.directory.Snapshot(requestContext(c), c.Param("teamID"), principal)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, snapshot)
}

// CreateInvite handles POST /api/teams/:teamID/invitations.
func (h *DirectoryHandler) CreateInvite(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req CreateInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := requestContext(c)
	teamID := c.Param("teamID")

	gate, err := h.resolver.GateFor(ctx, teamID, principal)
	if err != nil {
		response.Error(c, err)
		return
	}

	roles := make([]models.Role, 0, len(req.Roles))
	for _, role := range req.Roles {
		roles = append(roles, models.Role(role))
	}

	invitation, err := h.directory.CreateInvite(ctx, teamID, gate, services.CreateInvitationInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Roles:     roles,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, invitation)
}

// RevokeInvite handles DELETE /api/teams/:teamID/invitations/:invitationID.
func (h *DirectoryHandler) RevokeInvite(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	ctx := requestContext(c)
	teamID := c.Param("teamID")

	gate, err := h.resolver.GateFor(ctx, teamID, principal)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.directory.RevokeInvite(ctx, teamID, gate, c.Param("invitationID")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Invitation revoked"})
}

// AcceptInvite handles POST /api/invitations/:invitationID/accept. The
// invitation is addressed to an email, so the acceptor is identified by their
// authenticated account rather than a team-scoped gate.
func (h *DirectoryHandler) AcceptInvite(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	member, err := h.directory.AcceptInvite(requestContext(c), c.Param("invitationID"), principal)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, member)
}

// RemoveMember handles DELETE /api/teams/:teamID/members/:memberID.
func (h *DirectoryHandler) RemoveMember(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	ctx := requestContext(c)
	teamID := c.Param("teamID")

	gate, err := h.resolver.GateFor(ctx, teamID, principal)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.directory.RemoveMember(ctx, teamID, gate, c.Param("memberID")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Member removed"})
}

// SetTeamName handles PUT /api/teams/:teamID/name.
func (h *DirectoryHandler) SetTeamName(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req SetTeamNameRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := requestContext(c)
	teamID := c.Param("teamID")

	gate, err := h.resolver.GateFor(ctx, teamID, principal)
	if err != nil {
		response.Error(c, err)
		return
	}

	team, err := h.directory.RenameTeam(ctx, teamID, gate, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, team)
}
