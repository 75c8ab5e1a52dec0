package toolcall

import (
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ToolSchema is the provider-facing description of one tool. Parameters is
// a JSON Schema object whose properties follow parameter declaration order.
type ToolSchema struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// SchemaFor deterministically maps a definition to its provider schema.
// Pure: no side effects, the same definition always yields the same schema.
func SchemaFor(def *ToolDefinition) *ToolSchema {
	props := orderedmap.New[string, *jsonschema.Schema]()
	var required []string
	for _, p := range def.Parameters() {
		props.Set(p.Name, propertySchema(p))
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return &ToolSchema{
		Name:        def.Name(),
		Description: def.Description(),
		Parameters: &jsonschema.Schema{
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}
}

func propertySchema(p ParameterSpec) *jsonschema.Schema {
	s := primitiveSchema(p.Type)
	if p.Type == TypeArray && p.Elem != "" {
		s.Items = primitiveSchema(p.Elem)
	}
	s.Description = p.Description
	return s
}

// primitiveSchema maps a parameter type to its JSON Schema primitive.
// Unrecognized types degrade to string.
func primitiveSchema(t ParamType) *jsonschema.Schema {
	switch t {
	case TypeString, TypeAtom:
		return &jsonschema.Schema{Type: "string"}
	case TypeInteger:
		return &jsonschema.Schema{Type: "integer"}
	case TypeFloat:
		return &jsonschema.Schema{Type: "number"}
	case TypeBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	case TypeUUID:
		return &jsonschema.Schema{Type: "string", Format: "uuid"}
	case TypeMap:
		return &jsonschema.Schema{Type: "object"}
	case TypeArray:
		return &jsonschema.Schema{Type: "array"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}
