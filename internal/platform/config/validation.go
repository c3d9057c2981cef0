package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance. Field names follow the
// koanf tags so errors name the key an operator would set.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	v.RegisterStructValidation(validateStore, StoreConfig{})

	return v
}

// Validate validates the configuration and returns an error if invalid.
// Validation fails fast - the service should not start with invalid config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// validateStore checks the settings each driver needs.
func validateStore(sl validator.StructLevel) {
	s, ok := sl.Current().Interface().(StoreConfig)
	if !ok {
		return
	}

	switch s.Driver {
	case StoreDriverSQLite, StoreDriverMySQL:
		if s.SQL.DSN == "" {
			sl.ReportError(s.SQL.DSN, "sql.dsn", "DSN", "required_for_driver", s.Driver)
		}
	case StoreDriverPostgREST:
		if s.PostgREST.URL == "" {
			sl.ReportError(s.PostgREST.URL, "postgrest.url", "URL", "required_for_driver", s.Driver)
		}

		if s.PostgREST.APIKey == "" {
			sl.ReportError(s.PostgREST.APIKey, "postgrest.api_key", "APIKey", "required_for_driver", s.Driver)
		}
	}
}

// formatValidationErrors converts validator errors to a readable format.
func formatValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	errs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, formatFieldError(e))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	field := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, e.Param())
	case "required_for_driver":
		return fmt.Sprintf("%s is required for store driver %q", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// formatFieldPath converts "Config.server.max_request_size" to
// "server.max_request_size" and drops slice indexes.
func formatFieldPath(namespace string) string {
	// Remove the root struct name (Config.)
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	for i, part := range parts {
		if idx := strings.IndexByte(part, '['); idx >= 0 {
			part = part[:idx]
		}

		parts[i] = strings.ToLower(part)
	}

	return strings.Join(parts, ".")
}
