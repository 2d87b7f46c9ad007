package intake

import "github.com/wolfman30/webmcpsetup/internal/leads"

// Form-level tool metadata carried by the rendered intake form.
const (
	FormToolName        = "submit_webmcp_setup_intake"
	FormToolDescription = "Submit a WebMCP setup intake form to request implementation services. Use this tool when a user wants to get a quote, start a project, or request WebMCP implementation for their website."
)

// FieldKind selects the checks applied to a field after presence.
type FieldKind string

const (
	KindText       FieldKind = "text"
	KindEmail      FieldKind = "email"
	KindURL        FieldKind = "url"
	KindEnum       FieldKind = "enum"
	KindStringList FieldKind = "string_list"
	KindLongText   FieldKind = "long_text"
)

// Option is one allowed value of an enum field, or one suggested value of a list field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes one intake field. The ordered field list is the single source for
// validation, the JSON schema, and the form's declarative tool attributes.
type Field struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	// MinLength applies to text (characters) and string lists (items).
	MinLength int `json:"min_length,omitempty"`
	// Message is reported when the format or length constraint fails.
	Message string   `json:"message,omitempty"`
	Options []Option `json:"options,omitempty"`
	// Description is the JSON schema description; ParamDescription is the form's toolparamdescription.
	Description      string `json:"description"`
	ParamDescription string `json:"param_description"`
	Placeholder      string `json:"placeholder,omitempty"`
}

// Values returns the option values in declaration order.
func (f Field) Values() []string {
	out := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		out = append(out, o.Value)
	}
	return out
}

var fields = []Field{
	{
		Key: "full_name", Label: "Full Name", Kind: KindText, Required: true,
		MinLength: 1, Message: "Full name is required",
		Description:      "Full name of the person submitting",
		ParamDescription: "The full name of the person submitting the request",
	},
	{
		Key: "email", Label: "Email", Kind: KindEmail, Required: true,
		Message:          "Invalid email address",
		Description:      "Email address",
		ParamDescription: "Email address for contact and confirmation",
	},
	{
		Key: "company", Label: "Company", Kind: KindText,
		Description:      "Company name (optional)",
		ParamDescription: "Company or organization name (optional)",
	},
	{
		Key: "website_url", Label: "Website URL", Kind: KindURL, Required: true,
		Message:          "Invalid website URL",
		Description:      "Website URL",
		ParamDescription: "The URL of the website that needs WebMCP implementation",
		Placeholder:      "https://",
	},
	{
		Key: "what_are_you_building", Label: "What are you building?", Kind: KindEnum, Required: true,
		Options: []Option{
			{leads.ProjectLeadGen, "Lead Generation"},
			{leads.ProjectEcommerce, "E-commerce"},
			{leads.ProjectSaaS, "SaaS Product"},
			{leads.ProjectMarketplace, "Marketplace"},
			{leads.ProjectContent, "Content Site"},
			{leads.ProjectOther, "Other"},
		},
		Description:      "Type of website",
		ParamDescription: "The type of website or application",
	},
	{
		Key: "auth_required", Label: "Authentication", Kind: KindEnum, Required: true,
		Options: []Option{
			{"no_login", "No login required"},
			{"login_required", "Login required"},
		},
		Description:      "Authentication requirement",
		ParamDescription: "Whether the site requires user login for key actions",
	},
	{
		Key: "primary_user_actions", Label: "Primary User Actions", Kind: KindStringList, Required: true,
		MinLength: 1, Message: "Select at least one primary action",
		Options: []Option{
			{"book", "Book"},
			{"buy", "Buy"},
			{"quote", "Quote"},
			{"apply", "Apply"},
			{"contact", "Contact"},
			{"search", "Search"},
			{"subscribe", "Subscribe"},
			{"download", "Download"},
			{"other", "Other"},
		},
		Description:      "Primary user actions (multiple selections allowed)",
		ParamDescription: "Key actions users perform on the site (can select multiple)",
	},
	{
		Key: "current_stack", Label: "Current Tech Stack", Kind: KindText, Required: true,
		MinLength: 1, Message: "Current tech stack is required",
		Description:      "Current tech stack",
		ParamDescription: "The technologies and frameworks currently used",
		Placeholder:      "e.g., Next.js, React, WordPress, Ruby on Rails",
	},
	{
		Key: "timeline", Label: "Timeline", Kind: KindEnum, Required: true,
		Options: []Option{
			{"1-2_weeks", "1-2 weeks"},
			{"2-4_weeks", "2-4 weeks"},
			{"1-2_months", "1-2 months"},
			{"2-3_months", "2-3 months"},
			{"flexible", "Flexible"},
		},
		Description:      "Desired timeline",
		ParamDescription: "Desired implementation timeline",
	},
	{
		Key: "notes", Label: "Additional Notes", Kind: KindLongText,
		Description:      "Additional notes (optional)",
		ParamDescription: "Additional notes, requirements, or questions (optional)",
		Placeholder:      "Any additional context, requirements, or questions",
	},
}

// Fields returns the intake fields in declaration order. The result is a copy.
func Fields() []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Options = append([]Option(nil), f.Options...)
		out[i] = f
	}
	return out
}

// FieldByKey looks up a field by its wire key.
func FieldByKey(key string) (Field, bool) {
	for _, f := range Fields() {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// JSONSchema renders the payload schema as a JSON Schema object.
func JSONSchema() map[string]any {
	properties := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		prop := map[string]any{"description": f.Description}
		switch f.Kind {
		case KindEmail:
			prop["type"] = "string"
			prop["format"] = "email"
		case KindURL:
			prop["type"] = "string"
			prop["format"] = "uri"
		case KindEnum:
			prop["type"] = "string"
			prop["enum"] = f.Values()
		case KindStringList:
			prop["type"] = "array"
			prop["items"] = map[string]any{"type": "string"}
			if f.MinLength > 0 {
				prop["minItems"] = f.MinLength
			}
		default:
			prop["type"] = "string"
			if f.MinLength > 0 {
				prop["minLength"] = f.MinLength
			}
		}
		properties[f.Key] = prop
		if f.Required {
			required = append(required, f.Key)
		}
	}
	return map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"title":      "WebMCP setup intake",
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
