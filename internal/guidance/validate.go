package guidance

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports the first rule a payload violated.
// Field is a dotted path into the payload, empty for the payload itself.
type ValidationError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed on '%s': %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// searchRequest is the pre-validation shape of a search body.
// Pointers distinguish a missing key from an empty value.
type searchRequest struct {
	Type  *string `json:"type" validate:"required,oneof=job_apps related_careers suggest_major"`
	Query *string `json:"query" validate:"required,min=1"`
}

// searchRequestFields is the order in which rules are evaluated.
var searchRequestFields = []string{"type", "query"}

// ParseSearchQuery validates a raw JSON body and builds a [SearchQuery].
// An empty body is treated as an empty object. On failure the returned
// error is always a *[ValidationError] describing the first violation.
func ParseSearchQuery(body []byte) (SearchQuery, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	if !json.Valid(body) {
		return SearchQuery{}, &ValidationError{Message: "Malformed JSON body", Field: ""}
	}
	if kind := jsonKind(body); kind != "object" {
		return SearchQuery{}, &ValidationError{Message: "Expected object, received " + kind, Field: ""}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return SearchQuery{}, &ValidationError{Message: "Malformed JSON body", Field: ""}
	}

	var req searchRequest
	mismatched := make(map[string]string)
	for _, field := range searchRequestFields {
		val, ok := raw[field]
		if !ok {
			continue
		}
		if kind := jsonKind(val); kind != "string" {
			mismatched[field] = kind
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			mismatched[field] = "string"
			continue
		}
		switch field {
		case "type":
			req.Type = &s
		case "query":
			req.Query = &s
		}
	}

	ruleErrs := make(map[string]validator.FieldError)
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return SearchQuery{}, fmt.Errorf("failed to validate search request: %w", err)
		}
		for _, fe := range verrs {
			if _, exists := ruleErrs[fe.Field()]; !exists {
				ruleErrs[fe.Field()] = fe
			}
		}
	}

	for _, field := range searchRequestFields {
		if kind, ok := mismatched[field]; ok {
			return SearchQuery{}, &ValidationError{Message: "Expected string, received " + kind, Field: field}
		}
		if fe, ok := ruleErrs[field]; ok {
			return SearchQuery{}, &ValidationError{Message: ruleMessage(fe), Field: field}
		}
	}

	return SearchQuery{Type: Category(*req.Type), Query: *req.Query}, nil
}

// ValidateResponse checks a suggestion payload against the response shape
// expected for category c. Job application results must carry a link.
func ValidateResponse(c Category, resp SuggestionResponse) error {
	if err := validate.Struct(resp); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate suggestion response: %w", err)
		}
		fe := verrs[0]
		return &ValidationError{Message: ruleMessage(fe), Field: namespacePath(fe.Namespace())}
	}

	if c == CategoryJobApps {
		for i, s := range resp.Results {
			if s.Link == "" {
				return &ValidationError{Message: "Required", Field: fmt.Sprintf("results.%d.link", i)}
			}
		}
	}
	return nil
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "oneof":
		opts := strings.Fields(fe.Param())
		for i, o := range opts {
			opts[i] = "'" + o + "'"
		}
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", strings.Join(opts, " | "), fe.Value())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Array must contain at least %s element(s)", fe.Param())
	default:
		return fmt.Sprintf("Failed '%s' rule", fe.Tag())
	}
}

// namespacePath turns "SuggestionResponse.results[0].title" into "results.0.title".
func namespacePath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ""
	}
	rest = strings.ReplaceAll(rest, "[", ".")
	return strings.ReplaceAll(rest, "]", "")
}

// jsonKind names the JSON type of a valid raw value.
func jsonKind(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "undefined"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
