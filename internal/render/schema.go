package render

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/typeweaver/typeweaver/internal/errors"
	"github.com/typeweaver/typeweaver/internal/models"
)

const schemaVersion = "https://json-schema.org/draft/2020-12/schema"

// SchemaRenderer emits a JSON Schema (Draft 2020-12) document. Every
// composite definition lands in $defs and is referenced through
// #/$defs/<Name>, so declaration order never matters to a validator. The
// invopop document model keeps properties in first-seen field order.
type SchemaRenderer struct{}

func (r *SchemaRenderer) Target() Target { return TargetJSONSchema }
func (r *SchemaRenderer) Ext() string    { return "jsonschema" }

func (r *SchemaRenderer) Render(graph *models.TypeGraph) (string, error) {
	root := &jsonschema.Schema{
		Version: schemaVersion,
		Title:   graph.RootName,
	}

	if graph.Root.Kind == models.Object {
		root.Ref = "#/$defs/" + graph.Root.Ref.Name
	} else {
		rootSchema, err := r.typeSchema(graph.Root)
		if err != nil {
			return "", err
		}
		root.Type = rootSchema.Type
		root.Items = rootSchema.Items
		root.AnyOf = rootSchema.AnyOf
		root.Ref = rootSchema.Ref
	}

	if len(graph.Definitions) > 0 {
		defs := jsonschema.Definitions{}
		for _, def := range graph.Definitions {
			defSchema, err := r.compositeSchema(def)
			if err != nil {
				return "", err
			}
			defs[def.Name] = defSchema
		}
		root.Definitions = defs
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return "", errors.NewRenderError("failed to marshal schema document", err)
	}
	return string(out) + "\n", nil
}

func (r *SchemaRenderer) compositeSchema(def *models.CompositeDef) (*jsonschema.Schema, error) {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, field := range def.Fields {
		fieldSchema, err := r.typeSchema(field.Type)
		if err != nil {
			return nil, err
		}
		s.Properties.Set(field.Key, fieldSchema)
		// A key is required only when present with a non-null value in
		// every observed instance — the same predicate the declaration
		// renderers use for their optional markers.
		if field.Required() {
			s.Required = append(s.Required, field.Key)
		}
	}
	return s, nil
}

func (r *SchemaRenderer) typeSchema(ft models.FieldType) (*jsonschema.Schema, error) {
	switch ft.Kind {
	case models.Null:
		return &jsonschema.Schema{Type: "null"}, nil
	case models.Bool:
		return &jsonschema.Schema{Type: "boolean"}, nil
	case models.Integer:
		return &jsonschema.Schema{Type: "integer"}, nil
	case models.Float:
		return &jsonschema.Schema{Type: "number"}, nil
	case models.String:
		return &jsonschema.Schema{Type: "string"}, nil
	case models.Array:
		items, err := r.typeSchema(*ft.Elem)
		if err != nil {
			return nil, err
		}
		return &jsonschema.Schema{Type: "array", Items: items}, nil
	case models.Object:
		return &jsonschema.Schema{Ref: "#/$defs/" + ft.Ref.Name}, nil
	case models.Optional:
		// Omitting the key from required is not enough: a present-but-null
		// value must still validate, so null joins the type union.
		inner, err := r.typeSchema(*ft.Elem)
		if err != nil {
			return nil, err
		}
		return &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{inner, {Type: "null"}},
		}, nil
	case models.Unknown, models.Mixed:
		// Empty schema: accepts anything.
		return &jsonschema.Schema{}, nil
	}
	return nil, errors.NewRenderError(fmt.Sprintf("no schema rendering for field type kind %s", ft.Kind), nil)
}
