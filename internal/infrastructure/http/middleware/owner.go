package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/briefing-assistant/errors"
)

// OwnerIDHeader carries the pre-validated caller identity. Token validation
// happens upstream; this service only consumes the opaque owner id.
const OwnerIDHeader = "X-Owner-ID"

const ownerContextKey = "owner_id"

// RequireOwner extracts the owner id header and stores it in the request
// context, rejecting requests without one
func RequireOwner(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ownerID := c.Request().Header.Get(OwnerIDHeader)
			if ownerID == "" {
				logger.Warn("Request rejected: missing owner id",
					zap.String("path", c.Path()),
				)
				appErr := errors.ErrUnauthenticated()
				return c.JSON(appErr.HTTPCode, map[string]interface{}{
					"code":    appErr.Code,
					"message": appErr.Message,
				})
			}

			c.Set(ownerContextKey, ownerID)
			return next(c)
		}
	}
}

// OwnerID returns the owner id stored by RequireOwner, or ""
func OwnerID(c echo.Context) string {
	ownerID, _ := c.Get(ownerContextKey).(string)
	return ownerID
}
