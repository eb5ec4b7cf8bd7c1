package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/menuhub/restaurant-api/internal/api/metrics"
	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Root greets the caller and makes sure the administrator account exists.
//
// @Summary      Greeting
// @Tags         meta
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       / [get]
func (h *AuthHandler) Root(c echo.Context) error {
	sess, err := SessionFrom(c)
	if err != nil {
		return err
	}
	if _, err := h.authService.Bootstrap(c.Request().Context(), sess); err != nil {
		h.log.Warn().Err(err).Msg("admin bootstrap failed")
	}
	return c.JSON(http.StatusOK, messageResponse{Msg: "Hello "})
}

// Login exchanges email and password for a bearer token. While the user
// holds an unexpired token the same token is returned.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	sess, err := SessionFrom(c)
	if err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), sess, ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		RemoteIP: ClientIP(c),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	outcome := "issued"
	if res.Reused {
		outcome = "reused"
	}
	metrics.TokensIssuedTotal.WithLabelValues(outcome).Inc()

	return c.JSON(http.StatusOK, toTokenResponse(res.Token))
}

// Register creates a restaurant owner account.
//
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  domain.Principal
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := SessionFrom(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), sess, ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RemoteIP: ClientIP(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, domain.NewPrincipal(user))
}

// Me returns the authenticated caller.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     tokenAuth
// @Success      200  {object}  domain.Principal
// @Failure      401  {object}  map[string]string
// @Router       /auth/me/ [get]
func (h *AuthHandler) Me(c echo.Context) error {
	rc, err := requestContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rc.Principal)
}

// ChangePassword replaces the caller's password. Tokens already issued stay valid.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Security     tokenAuth
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/password/ [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	rc, err := requestContext(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.authService.ChangePassword(c.Request().Context(), rc.Session, ports.ChangePasswordInput{
		UserID:   rc.Principal.ID,
		Current:  req.CurrentPassword,
		Next:     req.NewPassword,
		RemoteIP: ClientIP(c),
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
