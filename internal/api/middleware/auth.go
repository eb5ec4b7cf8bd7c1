package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/menuhub/restaurant-api/internal/api/handler"
	"github.com/menuhub/restaurant-api/internal/api/metrics"
	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

const authScheme = "Token"

// ExtractToken returns the credential of an "Authorization: Token <value>"
// header. Any other shape yields the empty string.
func ExtractToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) {
		return ""
	}
	return parts[1]
}

// Auth resolves the request token to a principal and rejects the request
// when it cannot. Must run after Session.
func Auth(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := handler.SessionFrom(c)
			if err != nil {
				return err
			}

			raw := ExtractToken(c.Request().Header.Get(echo.HeaderAuthorization))
			p, err := authService.Resolve(c.Request().Context(), sess, raw)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthorized):
					metrics.AuthFailuresTotal.WithLabelValues("missing_credential").Inc()
				case errors.Is(err, domain.ErrInvalidToken):
					metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				default:
					metrics.AuthFailuresTotal.WithLabelValues("error").Inc()
				}
				return err
			}

			handler.SetPrincipal(c, *p)
			return next(c)
		}
	}
}
