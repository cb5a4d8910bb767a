package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedBodyError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError         = NewSimple(404, "Resource not found")
	InvalidIDError        = NewSimple(400, "The provided ID is invalid")
	UnauthorizedError     = NewSimple(401, "Missing or invalid credentials")
	InvalidAuthTokenError = NewSimple(401, "Authorization token is invalid or expired")
	UserMissingPermsError = NewSimple(403, "You do not have permission to perform this action")
	UnknownSubjectError   = NewSimple(401, "Token subject has no active account")

	InvalidCNPJError      = NewSimple(400, "The provided CNPJ is not valid")
	InvalidMediaTypeError = NewSimple(415, "Unsupported media type for this endpoint")
	FormJSONRequiredError = NewSimple(400, "Multipart requests must carry a 'json_payload' field")
	MissingFileError      = NewSimple(400, "Expected a file under the 'file' form field")

	/*
	 * Used by the merge flow. These are preconditions the UI must enforce,
	 * so hitting them means a broken client.
	 */
	MergeTargetRequiredError  = NewSimple(400, "Merge requires a target store")
	MergeSourcesRequiredError = NewSimple(400, "Merge requires at least one source store")
	MergeTargetInSourcesError = NewSimple(400, "The merge target cannot also be a source")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "cnpj":
			problems[field] = append(problems[field], "Value must be a valid CNPJ (14 digits)")
		case "uf":
			problems[field] = append(problems[field], "Value must be a two-letter state code")
		case "nodupes":
			problems[field] = append(problems[field], "Value cannot contain duplicates")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewForbiddenError(reason string) *APIError {
	return NewSimple(http.StatusForbidden, "Forbidden: %s", reason)
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}
