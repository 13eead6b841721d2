package resolve_portal_access

import (
	"context"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/service/bookings/models"
)

type BookingService interface {
	ResolvePortalAccess(ctx context.Context, portalCode string) (*models.PortalAccessResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
