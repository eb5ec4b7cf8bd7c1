package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/menuhub/restaurant-api/internal/api/handler"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// Session opens one storage session per request and closes it once the
// handler chain has returned, whatever the outcome.
func Session(factory ports.SessionFactory, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := factory.Open(c.Request().Context())
			if err != nil {
				return err
			}
			defer func() {
				if cerr := sess.Close(); cerr != nil {
					log.Warn().Err(cerr).Str("path", c.Path()).Msg("closing storage session")
				}
			}()

			handler.SetSession(c, sess)
			return next(c)
		}
	}
}
