package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/rosterhq/roster/internal/app"
	iauth "github.com/rosterhq/roster/internal/auth"
	"github.com/rosterhq/roster/internal/handlers"
	"github.com/rosterhq/roster/internal/middleware"
	"github.com/rosterhq/roster/internal/rbac"
	"github.com/rosterhq/roster/internal/services"
	"github.com/rosterhq/roster/pkg/mail"
)

// NewRouter builds the Gin engine, wires middleware and registers routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	directoryHandler, err := buildDirectoryHandler(db, cfg)
	if err != nil {
		return nil, err
	}

	api := r.Group("/api")
	api.Use(middleware.Auth(jwt, db))

	registerDirectoryRoutes(api, directoryHandler)

	return r, nil
}

func buildDirectoryHandler(db *gorm.DB, cfg *app.Config) (*handlers.DirectoryHandler, error) {
	mailer, err := mail.NewSMTPMailer(cfg.Email.SMTPSettings())
	if err != nil {
		return nil, err
	}

	invitations, err := services.NewInvitationService(db, services.NewInviteNotifier(mailer))
	if err != nil {
		return nil, err
	}
	members, err := services.NewMembershipService(db)
	if err != nil {
		return nil, err
	}
	resolver, err := rbac.NewResolver(db)
	if err != nil {
		return nil, err
	}
	directory, err := services.NewDirectoryService(db, invitations, members, resolver)
	if err != nil {
		return nil, err
	}

	return handlers.NewDirectoryHandler(directory, resolver)
}
