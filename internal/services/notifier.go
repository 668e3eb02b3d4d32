package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rosterhq/roster/internal/models"
	"github.com/rosterhq/roster/pkg/logger"
	"github.com/rosterhq/roster/pkg/mail"
)

const notifyTimeout = 10 * time.Second

// InviteNotifier emails newly invited people. Dispatch is fire-and-forget:
// delivery failures are logged and never surface to the inviting request.
type InviteNotifier struct {
	mailer mail.Mailer
	log    *zap.Logger
}

// NewInviteNotifier builds a notifier; a nil mailer disables delivery.
func NewInviteNotifier(mailer mail.Mailer) *InviteNotifier {
	return &InviteNotifier{
		mailer: mailer,
		log:    logger.WithModule("invite-notifier"),
	}
}

// Dispatch sends the invitation email in the background.
func (n *InviteNotifier) Dispatch(team *models.Team, invitation *models.Invitation) {
	if n == nil || n.mailer == nil || invitation == nil {
		return
	}

	teamName := "your team"
	if team.HasName() {
		teamName = team.DisplayName()
	}

	msg := mail.Message{
		To:      []string{invitation.Email},
		Subject: fmt.Sprintf("You've been invited to join %s", teamName),
		Body: fmt.Sprintf(
			"Hello %s,\n\nYou have been invited to join %s. Sign in with this email address to accept the invitation.\n\nIf you did not expect this email, you can ignore it.\n",
			invitation.FirstName, teamName,
		),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := n.mailer.Send(ctx, msg); err != nil && !errors.Is(err, mail.ErrSMTPDisabled) {
			n.log.Warn("invite email delivery failed",
				zap.String("invitation_id", invitation.ID),
				zap.Error(err))
		}
	}()
}
