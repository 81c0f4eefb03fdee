package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RequestIDKey is the gin context key of the request ID
const RequestIDKey = "request_id"

// SetupValidator configures gin's validator: JSON (or form) tag names in
// errors, and numeric or time views of the decimal, date and optional
// field types so that min/max/required rules apply to them
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(shared.Date); ok {
			return d.Time()
		}
		return nil
	}, shared.Date{})
	v.RegisterCustomTypeFunc(nullableValue,
		shared.Nullable[string]{},
		shared.Nullable[int]{},
		shared.Nullable[int64]{},
		shared.Nullable[decimal.Decimal]{},
		shared.Nullable[shared.Date]{},
	)
}

// nullableValue validates the carried value of an optional field; absent
// and null fields are seen as nil
func nullableValue(field reflect.Value) any {
	n, ok := field.Interface().(interface{ ValidationValue() any })
	if !ok {
		return nil
	}
	switch v := n.ValidationValue().(type) {
	case decimal.Decimal:
		return v.InexactFloat64()
	case shared.Date:
		return v.Time()
	default:
		return v
	}
}

// BindingErrorDetails turns a binding or validation failure into the
// per-field detail list
func BindingErrorDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]dto.ValidationDetail, 0, len(validationErrors))
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []dto.ValidationDetail{{Field: field, Message: "Must be a " + typeErr.Type.String()}}
	}

	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return []dto.ValidationDetail{{Field: "body", Message: "Invalid JSON"}}
	case errors.Is(err, io.EOF):
		return []dto.ValidationDetail{{Field: "body", Message: "Request body is required"}}
	case errors.Is(err, shared.ErrInvalidDate):
		return []dto.ValidationDetail{{Field: "date", Message: err.Error()}}
	}
	return []dto.ValidationDetail{{Field: "body", Message: err.Error()}}
}

// HandleValidationError answers a failed bind: 413 for oversized bodies,
// 422 with field details otherwise
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(RequestIDKey)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
			dto.NewErrorResponseWithRequestID(dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size", requestID))
		return
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(requestID, BindingErrorDetails(err)))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	isString := e.Kind() == reflect.String
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if isString {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if isString {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "lt":
		return "Must be less than " + e.Param()
	case "url":
		return "Invalid URL format"
	default:
		return "Invalid value"
	}
}
