package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/menuhub/restaurant-api/internal/core/domain"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

// formImage opens the optional file part named field. The returned close
// function is never nil.
func formImage(c echo.Context, field string) (*ports.ImageUpload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, domain.ValidationError("invalid %s upload", field)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open upload: %w", err)
	}
	return &ports.ImageUpload{Filename: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError("invalid %s", name)
	}
	return id, nil
}

// parseActive defaults to true when the field was not sent.
func parseActive(s string) bool {
	if s == "" {
		return true
	}
	v, err := strconv.ParseBool(s)
	return err == nil && v
}

// requireFormFields reports the named fields that are absent from the
// request body. An empty value counts as present.
func requireFormFields(c echo.Context, names ...string) error {
	params, err := c.FormParams()
	if err != nil {
		return domain.ValidationError("invalid form")
	}
	var missing []string
	for _, name := range names {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domain.ValidationError("%s is required", strings.Join(missing, ", "))
	}
	return nil
}
