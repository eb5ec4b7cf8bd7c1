package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// RestaurantHandler serves the caller's restaurant profile.
type RestaurantHandler struct {
	service ports.RestaurantService
}

func NewRestaurantHandler(service ports.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// Get returns the caller's restaurant.
//
// @Summary      Get restaurant
// @Tags         restaurant
// @Produce      json
// @Security     tokenAuth
// @Success      200  {object}  restaurantResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /restaurant/ [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	rc, err := requestContext(c)
	if err != nil {
		return err
	}

	r, err := h.service.Get(c.Request().Context(), rc.Session, rc.Principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}

// Upsert creates or replaces the caller's restaurant profile.
//
// @Summary      Create or update restaurant
// @Tags         restaurant
// @Accept       multipart/form-data
// @Produce      json
// @Security     tokenAuth
// @Param        name          formData  string  true   "Name"
// @Param        email         formData  string  true   "Email"
// @Param        mobile        formData  string  true   "Mobile"
// @Param        address       formData  string  true   "Address"
// @Param        opening_time  formData  string  true   "Opening time"
// @Param        closing_time  formData  string  true   "Closing time"
// @Param        logo          formData  file    false  "Logo image"
// @Success      200  {object}  restaurantResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /restaurant/ [put]
func (h *RestaurantHandler) Upsert(c echo.Context) error {
	rc, err := requestContext(c)
	if err != nil {
		return err
	}

	var form restaurantForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	logo, closeLogo, err := formImage(c, "logo")
	if err != nil {
		return err
	}
	defer closeLogo()

	r, err := h.service.Upsert(c.Request().Context(), rc.Session, rc.Principal, ports.RestaurantInput{
		Name:        form.Name,
		Email:       form.Email,
		Mobile:      form.Mobile,
		Address:     form.Address,
		OpeningTime: form.OpeningTime,
		ClosingTime: form.ClosingTime,
		Logo:        logo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}
