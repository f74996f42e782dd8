package controller

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"bid-approval-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 50
	defaultOffset = 0
)

type errorResponse struct {
	Reason string `json:"reason"`
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// not-found 404, authorization mismatch 403, state precondition 409,
// validation 400, anything else 500.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrBidNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrBuyerNotFound),
		errors.Is(err, service.ErrBidderNotFound),
		errors.Is(err, service.ErrVendorNotFound),
		errors.Is(err, service.ErrSubmissionNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{err.Error()}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrBuyerNotAssigned):
		if e := c.JSON(http.StatusForbidden, errorResponse{err.Error()}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrPreconditionFailed):
		if e := c.JSON(http.StatusConflict, errorResponse{err.Error()}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrValidationFailed):
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

func getAllErrorMessages(err error) string {
	var builder strings.Builder
	for _, fe := range err.(validator.ValidationErrors) {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	s, i := "", int32(0)
	if fe.Type() == reflect.TypeOf(s) {
		return getMessageForString(fe)
	}

	if fe.Type() == reflect.TypeOf(i) {
		return getMessageForInt(fe)
	}

	if fe.Type() == reflect.TypeOf(0) {
		return getMessageForInt(fe)
	}

	return "incorrect value passed"
}

func getMessageForInt(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	}

	return "incorrect value passed"
}
