package tools

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/florianilch/linkedin-mcp/internal/domain"
	"github.com/florianilch/linkedin-mcp/internal/usecase"
)

// schemaBuilder assembles an object schema from named properties.
type schemaBuilder struct {
	properties map[string]*jsonschema.Schema
	required   []string
}

func object() schemaBuilder {
	return schemaBuilder{properties: make(map[string]*jsonschema.Schema)}
}

func (b schemaBuilder) prop(name string, s *jsonschema.Schema) schemaBuilder {
	b.properties[name] = s
	return b
}

func (b schemaBuilder) requiredProp(name string, s *jsonschema.Schema) schemaBuilder {
	b.properties[name] = s
	b.required = append(b.required, name)
	return b
}

func (b schemaBuilder) build() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: b.properties,
		Required:   b.required,
	}
}

func stringSchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func textSchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: description,
		MinLength:   ptr(1),
		MaxLength:   ptr(usecase.MaxPostLength),
	}
}

func enumSchema[T ~string](description string, values ...T) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}
	return &jsonschema.Schema{Type: "string", Description: description, Enum: enum}
}

func visibilitySchema() *jsonschema.Schema {
	s := enumSchema("Who can see the post",
		domain.VisibilityPublic, domain.VisibilityConnections, domain.VisibilityLoggedIn)
	s.Default = json.RawMessage(`"` + domain.DefaultVisibility + `"`)
	return s
}

func limitSchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: description,
		Minimum:     ptr(float64(usecase.MinLimit)),
		Maximum:     ptr(float64(usecase.MaxLimit)),
		Default:     json.RawMessage(`10`),
	}
}

func ptr[T any](v T) *T {
	return &v
}
