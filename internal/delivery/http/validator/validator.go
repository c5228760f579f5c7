// Package validator adapts go-playground validation to echo's Validator hook.
package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *validator.Validate
}

// New creates the request validator installed on the echo server.
func New() echo.Validator {
	return &echoValidator{validate: validator.New()}
}

// Validate runs struct-tag validation and converts failures into a 400 so the
// error handler renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
