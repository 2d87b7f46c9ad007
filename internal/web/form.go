package web

import (
	"net/url"
	"strings"

	"github.com/wolfman30/webmcpsetup/internal/intake"
)

// formField is an intake field prepared for the form template.
type formField struct {
	intake.Field
	Control  string // input, select, checkboxes, textarea
	Type     string // HTML input type
	Value    string
	Selected map[string]bool
	Error    string
}

type formView struct {
	ToolName        string
	ToolDescription string
	Fields          []formField
	Message         string
}

// newFormView builds the form from intake.Fields so the declarative tool metadata
// always matches the validation rules. values and errs refill a rejected submission.
func newFormView(values url.Values, errs []intake.FieldError, message string) formView {
	byField := make(map[string]string, len(errs))
	var unplaced []string
	for _, e := range errs {
		key, _, _ := strings.Cut(e.Field, ".")
		if _, known := intake.FieldByKey(key); !known {
			unplaced = append(unplaced, e.Message)
			continue
		}
		if _, seen := byField[key]; !seen {
			byField[key] = e.Message
		}
	}
	// Errors with no matching input still have to reach the visitor.
	if len(unplaced) > 0 {
		message = strings.TrimSpace(message + " " + strings.Join(unplaced, " "))
	}

	var out []formField
	for _, f := range intake.Fields() {
		ff := formField{Field: f, Error: byField[f.Key], Value: values.Get(f.Key)}
		switch f.Kind {
		case intake.KindEnum:
			ff.Control = "select"
		case intake.KindStringList:
			ff.Control = "checkboxes"
			ff.Selected = make(map[string]bool)
			for _, v := range values[f.Key] {
				ff.Selected[v] = true
			}
		case intake.KindLongText:
			ff.Control = "textarea"
		case intake.KindEmail:
			ff.Control, ff.Type = "input", "email"
		case intake.KindURL:
			ff.Control, ff.Type = "input", "url"
		default:
			ff.Control, ff.Type = "input", "text"
		}
		out = append(out, ff)
	}
	return formView{
		ToolName:        intake.FormToolName,
		ToolDescription: intake.FormToolDescription,
		Fields:          out,
		Message:         message,
	}
}

// payloadFromForm converts posted form values to an intake payload. Fields absent
// from the post are left out so validation reports them as missing; an empty
// optional company is dropped.
func payloadFromForm(values url.Values) map[string]any {
	payload := make(map[string]any)
	for _, f := range intake.Fields() {
		vals, ok := values[f.Key]
		if f.Kind == intake.KindStringList {
			items := make([]any, 0, len(vals))
			for _, v := range vals {
				items = append(items, v)
			}
			payload[f.Key] = items
			continue
		}
		if !ok || len(vals) == 0 {
			continue
		}
		if f.Key == "company" && vals[0] == "" {
			continue
		}
		payload[f.Key] = vals[0]
	}
	return payload
}
