package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// jsonTagParts is the number of parts when splitting a JSON tag by comma.
// The first part is the field name, subsequent parts are options like "omitempty".
const jsonTagParts = 2

// Binding errors.
var (
	// ErrValidation indicates a validation failure occurred.
	ErrValidation = errors.New("validation failed")

	// ErrBinding indicates the body could not be decoded.
	ErrBinding = errors.New("binding failed")
)

var (
	// validate is the singleton validator instance.
	validate     *validator.Validate
	validateOnce sync.Once
)

// wholeHourPattern accepts "00:00" through "23:00".
var wholeHourPattern = regexp.MustCompile(`^([01]\d|2[0-3]):00$`)

// Validator returns the singleton validator instance.
// It initializes the validator with custom validations on first call.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use JSON tag names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", jsonTagParts)[0]
			if name == "-" {
				return ""
			}

			return name
		})

		_ = validate.RegisterValidation("wholehour", validateWholeHour)
		_ = validate.RegisterValidation("notempty", validateNotEmpty)
	})

	return validate
}

// Validate validates a struct using the validator instance.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate binds the JSON body to v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	// ShouldBindJSON also runs gin's own validator, which knows nothing of
	// our custom tags, so decode without it.
	err := c.ShouldBindWith(v, jsonDecoder{})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// BindingError turns a BindAndValidate failure into a domain validation
// error the response builder can render as a 400.
func BindingError(err error) error {
	if fields := ValidationErrors(err); len(fields) > 0 {
		return domain.NewValidationErrorWithFields(MessageInvalidBody, fields)
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)

	switch {
	case errors.Is(err, io.EOF):
		return domain.NewValidationError("", "Missing request body")
	case errors.As(err, &maxErr):
		return domain.NewValidationError("", fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}

		return domain.NewValidationError(field, "must be a "+typeErr.Type.String())
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.NewValidationError("", "Request body must be valid JSON")
	default:
		return domain.NewValidationError("", MessageInvalidBody)
	}
}

// ValidationErrors extracts field-level error messages from a validator error.
// Returns a map of field names to error messages suitable for API responses.
func ValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldPath(fieldErr)] = validationMessage(fieldErr)
		}
	}

	return fieldErrors
}

// fieldPath drops the root struct name: "SubmissionRequest.quotes[0].link"
// becomes "quotes[0].link".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return fe.Field()
}

// validationMessages maps validation tags to message templates.
// Use {param} as placeholder for the validation parameter.
var validationMessages = map[string]string{
	"required":  "this field is required",
	"notempty":  "must not be empty",
	"oneof":     "must be one of: {param}",
	"wholehour": "must be a whole hour between 00:00 and 23:00",
	"timezone":  "must be an IANA time zone such as Europe/Paris",
}

// validationMessage returns a human-readable message for a validation error.
func validationMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	if tag == "min" || tag == "max" {
		return minMaxMessage(tag, param, fe.Kind())
	}

	if msg, ok := validationMessages[tag]; ok {
		return strings.ReplaceAll(msg, "{param}", param)
	}

	return "failed validation: " + tag
}

// minMaxMessage returns the appropriate message for min/max validation.
func minMaxMessage(tag, param string, kind reflect.Kind) string {
	var suffix string

	switch kind {
	case reflect.String:
		suffix = " characters"
	case reflect.Slice:
		suffix = " items"
	}

	if tag == "min" {
		return "must be at least " + param + suffix
	}

	return "must be at most " + param + suffix
}

func validateWholeHour(fl validator.FieldLevel) bool {
	return wholeHourPattern.MatchString(fl.Field().String())
}

// validateNotEmpty validates that a string is not empty after trimming whitespace.
func validateNotEmpty(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// jsonDecoder is a gin binding that decodes JSON without gin's validator.
type jsonDecoder struct{}

func (jsonDecoder) Name() string { return "json" }

func (jsonDecoder) Bind(req *http.Request, obj any) error {
	if req == nil || req.Body == nil {
		return io.EOF
	}

	return json.NewDecoder(req.Body).Decode(obj)
}
