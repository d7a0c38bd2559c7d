package response

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

const (
	StatusError = "error"
)

var EmptyRequestBodyResponse = Response{
	Status:  StatusError,
	Error:   "Empty Request Body",
	Message: "Request body is empty. Please provide necessary data.",
}

var BadRequestResponse = Response{
	Status:  StatusError,
	Error:   "Bad Request",
	Message: "Request body is malformed. Please check your data.",
}

type Response struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
	Details []any  `json:"details,omitempty"`
}

type validationError struct {
	Field string `json:"field"`
	Value any    `json:"value"`
	Issue string `json:"issue"`
}

func getValidationErrors(err error) []validationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	errs := make([]validationError, 0, len(validationErrs))
	for _, e := range validationErrs {
		issue := "Invalid value."

		switch e.Tag() {
		case "required":
			issue = "This field is required."
		case "url":
			issue = "Invalid url."
		}

		errs = append(errs, validationError{
			Field: e.Field(),
			Value: e.Value(),
			Issue: issue,
		})
	}

	return errs
}

func ValidationErrorResponse(err error) Response {
	resp := Response{
		Status:  StatusError,
		Error:   "Validation Error",
		Message: "Request body contains invalid data.",
	}

	for _, e := range getValidationErrors(err) {
		resp.Details = append(resp.Details, e)
	}

	return resp
}
