package api

type DataType string

const (
	TypeString  DataType = "string"
	TypeNumber  DataType = "number"
	TypeInteger DataType = "integer"
	TypeBoolean DataType = "boolean"
	TypeArray   DataType = "array"
	TypeObject  DataType = "object"
)

// Schema is an incomplete OpenAPI 3.0 schema object
type Schema struct {
	Description string             `json:"description,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Title       string             `json:"title,omitempty"`
	Type        DataType           `json:"type,omitempty"`
}

// ObjectSchema returns an object schema where every listed
// property is a required string.
func ObjectSchema(required ...string) *Schema {
	props := make(map[string]*Schema, len(required))
	for _, name := range required {
		props[name] = &Schema{Type: TypeString}
	}
	return &Schema{
		Type:       TypeObject,
		Properties: props,
		Required:   required,
	}
}

// ArrayOf returns an array schema of items.
func ArrayOf(items *Schema) *Schema {
	return &Schema{
		Type:  TypeArray,
		Items: items,
	}
}
