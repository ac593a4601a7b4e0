package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
)

var errNotificationFailed = errors.New("notification failed")

// notifyBeforeCommit sends n inside a repository transaction so that a failed send rolls
// the write back.
func notifyBeforeCommit(notifier clients.Notifier, n clients.Notification) portsrepo.BeforeCommitFunc {
	return func(ctx context.Context) error {
		if err := notifier.Send(ctx, n); err != nil {
			return fmt.Errorf("%w: %w", errNotificationFailed, err)
		}
		return nil
	}
}

func verificationEmail(to, code string) clients.Notification {
	return clients.Notification{
		To:      to,
		Subject: "Verify your MsaadaPlus account",
		Body: fmt.Sprintf("Welcome to MsaadaPlus!\n\nYour verification code is: %s\n\n"+
			"Enter it on the verification page to activate your account.", code),
	}
}

func passwordResetEmail(to, frontendBaseURL, token string) clients.Notification {
	link := fmt.Sprintf("%s/reset-password?token=%s", frontendBaseURL, url.QueryEscape(token))
	return clients.Notification{
		To:      to,
		Subject: "Reset your MsaadaPlus password",
		Body: fmt.Sprintf("We received a request to reset your password.\n\n"+
			"Open the link below within 24 hours to choose a new one:\n%s\n\n"+
			"If you did not ask for this, you can ignore this email.", link),
	}
}

func applicationReviewedEmail(to, charityName string, status domain.CharityStatus) clients.Notification {
	body := fmt.Sprintf("Congratulations! Your application for %s has been approved. "+
		"You can now receive donations on MsaadaPlus.", charityName)
	if status == domain.CharityRejected {
		body = fmt.Sprintf("We are sorry, your application for %s has been rejected. "+
			"Contact support for more details.", charityName)
	}
	return clients.Notification{
		To:      to,
		Subject: "Your MsaadaPlus charity application",
		Body:    body,
	}
}
