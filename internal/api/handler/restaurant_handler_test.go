package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

func restaurantFields() map[string]string {
	return map[string]string{
		"name":         "La Fonda",
		"email":        "fonda@example.com",
		"mobile":       "5550001",
		"address":      "Main St 1",
		"opening_time": "09:00",
		"closing_time": "22:00",
	}
}

func TestRestaurantHandler_Upsert(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubRestaurantService{}
	h := NewRestaurantHandler(svc)

	req := multipartRequest(t, http.MethodPut, "/restaurant", restaurantFields(), "logo", "logo.png")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	authenticated(c, domain.Principal{ID: 3})

	if err := h.Upsert(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	in := svc.upserted
	if in == nil || in.Email != "fonda@example.com" || in.ClosingTime != "22:00" {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.Logo == nil || in.Logo.Filename != "logo.png" {
		t.Fatalf("expected uploaded logo, got %+v", in.Logo)
	}
}

func TestRestaurantHandler_Upsert_MissingFields(t *testing.T) {
	for _, field := range []string{"email", "mobile", "address", "opening_time", "closing_time"} {
		t.Run(field, func(t *testing.T) {
			e := echo.New()
			e.Validator = NewValidator()
			svc := &stubRestaurantService{}
			h := NewRestaurantHandler(svc)

			fields := restaurantFields()
			delete(fields, field)
			req := multipartRequest(t, http.MethodPut, "/restaurant", fields, "", "")
			c := e.NewContext(req, httptest.NewRecorder())
			authenticated(c, domain.Principal{ID: 3})

			err := h.Upsert(c)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !strings.HasSuffix(err.Error(), field+" is required") {
				t.Fatalf("unexpected message %q", err.Error())
			}
			if svc.upserted != nil {
				t.Fatal("service must not be called")
			}
		})
	}
}
