package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

const (
	sessionKey   = "storage_session"
	principalKey = "principal"
)

var errNoSession = errors.New("storage session not opened for request")

// RequestContext is what a protected handler gets to work with: the caller
// and the storage session of the current request.
type RequestContext struct {
	Principal domain.Principal
	Session   ports.Session
}

// SetSession stores the request-scoped storage session.
func SetSession(c echo.Context, sess ports.Session) {
	c.Set(sessionKey, sess)
}

// SessionFrom returns the storage session opened by the session middleware.
func SessionFrom(c echo.Context) (ports.Session, error) {
	sess, ok := c.Get(sessionKey).(ports.Session)
	if !ok || sess == nil {
		return nil, errNoSession
	}
	return sess, nil
}

// SetPrincipal stores the authenticated caller.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// requestContext fails fast when the route gate has not run.
func requestContext(c echo.Context) (RequestContext, error) {
	p, ok := c.Get(principalKey).(domain.Principal)
	if !ok {
		return RequestContext{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	sess, err := SessionFrom(c)
	if err != nil {
		return RequestContext{}, err
	}
	return RequestContext{Principal: p, Session: sess}, nil
}
