package validators

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestValidatePublicationYear(t *testing.T) {
	currentYear := time.Now().Year()

	valid := []int{1000, 1813, 1949, currentYear}
	for _, year := range valid {
		if err := ValidatePublicationYear(year); err != nil {
			t.Errorf("year %d: unexpected error %v", year, err)
		}
	}

	if err := ValidatePublicationYear(currentYear + 1); err == nil {
		t.Error("expected future year to be rejected")
	} else if !strings.Contains(err.Error(), "future") {
		t.Errorf("future year error should name the bound, got %q", err)
	}

	for _, year := range []int{999, 0, -50} {
		if err := ValidatePublicationYear(year); err == nil {
			t.Errorf("expected year %d to be rejected", year)
		}
	}
}

func TestValidateStructFailureIsBadRequest(t *testing.T) {
	cv := NewValidator()

	type payload struct {
		Name string `validate:"required"`
	}

	if err := cv.Validate(&payload{Name: "ok"}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	err := cv.Validate(&payload{})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected an echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
}
