package validators

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to echo's Validator interface.
type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator used by the echo instance.
func NewValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Tag failures become 400 responses with
// the validator's field-level message.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// ValidatePublicationYear enforces the library domain's single business rule:
// a publication year must lie in [1000, current calendar year].
func ValidatePublicationYear(year int) error {
	currentYear := time.Now().Year()
	if year > currentYear {
		return fmt.Errorf("publication year cannot be in the future (current year is %d)", currentYear)
	}
	if year < 1000 {
		return fmt.Errorf("publication year must be a valid year (1000 or later)")
	}
	return nil
}
