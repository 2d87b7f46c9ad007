package intake

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/wolfman30/webmcpsetup/internal/leads"
)

const requiredMessage = "Required"

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9_'+\-.]*[A-Z0-9_+-]@([A-Z0-9][A-Z0-9\-]*\.)+[A-Z]{2,}$`)

// FieldError is one violated constraint. Field is the dotted path into the payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of Validate. Errors is never nil.
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

// Validate checks payload against the intake fields. It never panics and has no side effects.
// Fields are checked in declaration order; within a field, presence, then type, then
// format or length, then enum membership. Unknown keys are ignored.
func Validate(payload map[string]any) Result {
	errs := make([]FieldError, 0)
	for _, f := range fields {
		errs = append(errs, checkField(f, payload)...)
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func checkField(f Field, payload map[string]any) []FieldError {
	value, present := payload[f.Key]
	if !present {
		if f.Required {
			return []FieldError{{Field: f.Key, Message: requiredMessage}}
		}
		return nil
	}

	if f.Kind == KindStringList {
		return checkList(f, value)
	}

	s, ok := value.(string)
	if !ok {
		expected := "string"
		if f.Kind == KindEnum {
			expected = quotedValues(f.Values())
		}
		return []FieldError{{Field: f.Key, Message: typeMessage(expected, value)}}
	}

	switch f.Kind {
	case KindEmail:
		if !isEmail(s) {
			return []FieldError{{Field: f.Key, Message: f.Message}}
		}
	case KindURL:
		if !isURL(s) {
			return []FieldError{{Field: f.Key, Message: f.Message}}
		}
	case KindEnum:
		if !contains(f.Values(), s) {
			return []FieldError{{Field: f.Key, Message: fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", quotedValues(f.Values()), s)}}
		}
	default:
		if utf8.RuneCountInString(s) < f.MinLength {
			return []FieldError{{Field: f.Key, Message: f.Message}}
		}
	}
	return nil
}

func checkList(f Field, value any) []FieldError {
	items, ok := asList(value)
	if !ok {
		return []FieldError{{Field: f.Key, Message: typeMessage("array", value)}}
	}
	var errs []FieldError
	for i, item := range items {
		if _, ok := item.(string); !ok {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("%s.%d", f.Key, i),
				Message: typeMessage("string", item),
			})
		}
	}
	if len(items) < f.MinLength {
		errs = append(errs, FieldError{Field: f.Key, Message: f.Message})
	}
	return errs
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func typeMessage(expected string, value any) string {
	return fmt.Sprintf("Expected %s, received %s", expected, typeName(value))
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int32, int64, json.Number:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	}
	return "unknown"
}

func quotedValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, " | ")
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func isEmail(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}

// isURL accepts any absolute URL: a scheme plus a host or an opaque part.
func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

// Decode validates payload and, when valid, converts it into a Submission.
// Unknown keys are dropped.
func Decode(payload map[string]any) (*leads.Submission, Result) {
	res := Validate(payload)
	if !res.Valid {
		return nil, res
	}
	str := func(key string) string {
		s, _ := payload[key].(string)
		return s
	}
	items, _ := asList(payload["primary_user_actions"])
	actions := make([]string, 0, len(items))
	for _, item := range items {
		actions = append(actions, item.(string))
	}
	return &leads.Submission{
		FullName:           str("full_name"),
		Email:              str("email"),
		Company:            str("company"),
		WebsiteURL:         str("website_url"),
		ProjectType:        str("what_are_you_building"),
		AuthRequired:       str("auth_required"),
		PrimaryUserActions: actions,
		CurrentStack:       str("current_stack"),
		Timeline:           str("timeline"),
		Notes:              str("notes"),
	}, res
}

// ParsePayload decodes a request body that must be a single JSON object.
func ParsePayload(body []byte) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if payload == nil {
		return nil, ErrMalformedRequest
	}
	return payload, nil
}
