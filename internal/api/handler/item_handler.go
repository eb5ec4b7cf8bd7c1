package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/menuhub/restaurant-api/internal/api/metrics"
	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// ItemHandler serves menu items.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List returns the items of any restaurant.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Security     tokenAuth
// @Param        id   path      int  true  "Restaurant ID"
// @Success      200  {array}   itemResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id}/ [get]
func (h *ItemHandler) List(c echo.Context) error {
	rc, err := requestContext(c)
	if err != nil {
		return err
	}
	restaurantID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), rc.Session, restaurantID)
	if errors.Is(err, domain.ErrRestaurantNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Invalid Restaurant ID")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponses(items))
}

// Create adds an item to the caller's restaurant.
//
// @Summary      Create item
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Security     tokenAuth
// @Param        restaurant_id  formData  int     true   "Restaurant ID"
// @Param        name           formData  string  true   "Name"
// @Param        description    formData  string  false  "Description"
// @Param        cost           formData  number  false  "Cost"
// @Param        price          formData  number  false  "Price"
// @Param        is_active      formData  bool    false  "Active"
// @Param        image          formData  file    false  "Image"
// @Success      200  {object}  itemResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/ [post]
func (h *ItemHandler) Create(c echo.Context) error {
	rc, err := requestContext(c)
	if err != nil {
		return err
	}

	var form createItemForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	in, closeImage, err := itemInput(c, form.item())
	if err != nil {
		return err
	}
	defer closeImage()

	item, err := h.service.Create(c.Request().Context(), rc.Session, rc.Principal, ports.CreateItemInput{
		RestaurantID: form.RestaurantID,
		ItemInput:    in,
	})
	if err != nil {
		return err
	}
	metrics.ItemWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Update replaces the editable fields of an item of the caller's restaurant.
//
// @Summary      Update item
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Security     tokenAuth
// @Param        id           path      int     true   "Item ID"
// @Param        name         formData  string  true   "Name"
// @Param        description  formData  string  true   "Description"
// @Param        cost         formData  number  true   "Cost"
// @Param        price        formData  number  true   "Price"
// @Param        is_active    formData  bool    true   "Active"
// @Param        image        formData  file    false  "Image"
// @Success      200  {object}  itemResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id}/ [put]
func (h *ItemHandler) Update(c echo.Context) error {
	rc, err := requestContext(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var form itemForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := requireFormFields(c, "description", "cost", "price", "is_active"); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	in, closeImage, err := itemInput(c, form)
	if err != nil {
		return err
	}
	defer closeImage()

	item, err := h.service.Update(c.Request().Context(), rc.Session, rc.Principal, itemID, in)
	if err != nil {
		return err
	}
	metrics.ItemWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Delete removes one item of the caller's restaurant.
//
// @Summary      Delete item
// @Tags         items
// @Produce      json
// @Security     tokenAuth
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  detailResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id}/ [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	rc, err := requestContext(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), rc.Session, rc.Principal, itemID); err != nil {
		return err
	}
	metrics.ItemWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, detailResponse{Detail: "Item deleted successfully"})
}

// DeleteAll removes every item of the caller's restaurant.
//
// @Summary      Delete all items
// @Tags         items
// @Produce      json
// @Security     tokenAuth
// @Success      200  {object}  detailResponse
// @Failure      401  {object}  map[string]string
// @Router       /items/all/ [delete]
func (h *ItemHandler) DeleteAll(c echo.Context) error {
	rc, err := requestContext(c)
	if err != nil {
		return err
	}

	if _, err := h.service.DeleteAll(c.Request().Context(), rc.Session, rc.Principal); err != nil {
		return err
	}
	metrics.ItemWritesTotal.WithLabelValues("delete_all").Inc()
	return c.JSON(http.StatusOK, detailResponse{Detail: "All items deleted successfully"})
}

func itemInput(c echo.Context, form itemForm) (ports.ItemInput, func(), error) {
	image, closeImage, err := formImage(c, "image")
	if err != nil {
		return ports.ItemInput{}, closeImage, err
	}
	return ports.ItemInput{
		Name:        form.Name,
		Description: form.Description,
		Cost:        form.Cost,
		Price:       form.Price,
		IsActive:    parseActive(form.IsActive),
		Image:       image,
	}, closeImage, nil
}
