package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// bindAndValidate binds the request into dst and runs the registered validator.
// Bind failures are 400, validation failures 422.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
