package providers

import (
	"context"

	"github.com/surgiplan/backend/internal/domain/entities"
)

// Notifier accepts exactly one notification per completed mutation attempt
type Notifier interface {
	Notify(ctx context.Context, message string, kind entities.NotificationKind)
}
