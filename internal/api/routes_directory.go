package api

import (
	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster/internal/handlers"
)

func registerDirectoryRoutes(api *gin.RouterGroup, directory *handlers.DirectoryHandler) {
	teams := api.Group("/teams/:teamID")
	{
		teams.GET("/directory", directory.GetDirectory)
		teams.PUT("/name", directory.SetTeamName)
		teams.POST("/invitations", directory.CreateInvite)
		teams.DELETE("/invitations/:invitationID", directory.RevokeInvite)
		teams.DELETE("/members/:memberID", directory.RemoveMember)
	}

	api.POST("/invitations/:invitationID/accept", directory.AcceptInvite)
}
