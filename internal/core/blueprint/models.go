package blueprint

import "maps"

// Blueprint describes the payload accepted when creating one kind of inventory record.
type Blueprint struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Endpoint    string                 `json:"endpoint"`
	Schema      map[string]interface{} `json:"schema"`
}

type ListBlueprintsResponse struct {
	Blueprints []*Blueprint `json:"blueprints"`
	Total      int          `json:"total"`
}

const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

// Field is one JSON schema property of a record payload.
type Field struct {
	Type      string        `json:"type"`
	Title     string        `json:"title,omitempty"`
	Format    string        `json:"format,omitempty"`
	Enum      []interface{} `json:"enum,omitempty"`
	Minimum   *float64      `json:"minimum,omitempty"`
	MinLength *int          `json:"minLength,omitempty"`
}

// Fields maps payload keys to their schema.
type Fields map[string]Field

// With returns a copy of f extended by extra.
func (f Fields) With(extra Fields) Fields {
	out := maps.Clone(f)
	if out == nil {
		out = make(Fields, len(extra))
	}
	maps.Copy(out, extra)
	return out
}

// ObjectSchema renders fields as a JSON schema object. Unknown keys are allowed.
func ObjectSchema(title string, fields Fields, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"title":      title,
		"properties": fields,
		"required":   required,
	}
}

func atLeast(v float64) *float64 {
	return &v
}

func minLength(n int) *int {
	return &n
}
