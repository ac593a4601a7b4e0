// Package clients declares the outbound collaborators the core calls synchronously:
// the mobile-money gateway, the email sender and the image host.
package clients

import (
	"context"
	"io"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
)

// PaymentGateway initiates push payments.
//
// Errors: apperrors.ErrGatewayAuth when no access token could be obtained,
// apperrors.ErrGatewayTransport for network or decoding failures, and
// *apperrors.GatewayRejection when the gateway answered with a non-success code.
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentAck, error)
}

// Notification is a plain-text email.
type Notification struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers notifications.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// ImageStore hosts uploaded images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader, size int64) (string, error)
}

// ClientProvider holds the outbound clients needed by services.
type ClientProvider struct {
	Payments PaymentGateway
	Notifier Notifier
	Images   ImageStore
}

// EventTracker records product analytics events. Implementations must not block.
type EventTracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}
