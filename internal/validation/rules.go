// Package validation provides custom validation rules for the application.
package validation

import (
	"net/url"
	"slices"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/secretcache/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// URLScheme validates that a string is a URL using one of the allowed schemes.
type URLScheme struct {
	Schemes []string
}

// Validate checks the scheme of the URL. Empty strings pass; combine with
// validation.Required when the value is mandatory.
func (u URLScheme) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_url_scheme_type", "must be a string")
	}
	if s == "" {
		return nil
	}

	parsed, err := url.Parse(s)
	if err != nil || parsed.Scheme == "" {
		return validation.NewError("validation_url", "must be a valid URL")
	}
	if !slices.Contains(u.Schemes, parsed.Scheme) {
		return validation.NewError(
			"validation_url_scheme",
			"scheme must be one of: "+strings.Join(u.Schemes, ", "),
		)
	}
	return nil
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
