package render

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/typeweaver/typeweaver/internal/errors"
	"github.com/typeweaver/typeweaver/internal/models"
)

// GoRenderer emits one struct declaration per composite definition, fields
// in first-seen order, with json tags. Optional fields become pointers with
// omitempty.
type GoRenderer struct {
	pkg    string
	format bool
}

func (r *GoRenderer) Target() Target { return TargetGo }
func (r *GoRenderer) Ext() string    { return "go" }

func (r *GoRenderer) Render(graph *models.TypeGraph) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package %s\n\n", r.pkg)

	// A non-object root still gets a named declaration so the output has a
	// predictable entry point.
	if rootAliasNeeded(graph) {
		rootType, err := r.typeString(graph.Root)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&buf, "type %s %s\n\n", graph.RootName, rootType)
	}

	for _, def := range graph.Definitions {
		fmt.Fprintf(&buf, "type %s struct {\n", def.Name)
		used := make(map[string]bool, len(def.Fields))
		for _, field := range def.Fields {
			typeStr, err := r.fieldTypeString(field)
			if err != nil {
				return "", err
			}
			name := strcase.ToCamel(field.Key)
			if name == "" {
				name = "Field"
			}
			// Distinct keys can sanitize to one identifier (user_id, userId);
			// the struct still needs distinct fields.
			if used[name] {
				base := name
				for i := 1; used[name]; i++ {
					name = fmt.Sprintf("%s%d", base, i)
				}
			}
			used[name] = true
			tag := fmt.Sprintf("`json:%q`", field.Key+omitempty(field))
			fmt.Fprintf(&buf, "\t%s %s %s\n", name, typeStr, tag)
		}
		buf.WriteString("}\n\n")
	}

	out := buf.Bytes()
	if r.format {
		formatted, err := format.Source(out)
		if err != nil {
			return "", errors.NewRenderError("generated Go code does not parse", err)
		}
		out = formatted
	}
	return string(out), nil
}

func omitempty(field models.Field) string {
	if field.Required() {
		return ""
	}
	return ",omitempty"
}

// fieldTypeString renders a field's type, adding a pointer when the field
// is presence-optional and the base type is not already nilable.
func (r *GoRenderer) fieldTypeString(field models.Field) (string, error) {
	typeStr, err := r.typeString(field.Type)
	if err != nil {
		return "", err
	}
	if field.Optional && !nilable(typeStr) {
		typeStr = "*" + typeStr
	}
	return typeStr, nil
}

func nilable(typeStr string) bool {
	return strings.HasPrefix(typeStr, "*") ||
		strings.HasPrefix(typeStr, "[]") ||
		typeStr == "interface{}"
}

func (r *GoRenderer) typeString(ft models.FieldType) (string, error) {
	switch ft.Kind {
	case models.Bool:
		return "bool", nil
	case models.Integer:
		return "int64", nil
	case models.Float:
		return "float64", nil
	case models.String:
		return "string", nil
	case models.Array:
		elem, err := r.typeString(*ft.Elem)
		if err != nil {
			return "", err
		}
		return "[]" + elem, nil
	case models.Object:
		return ft.Ref.Name, nil
	case models.Optional:
		inner, err := r.typeString(*ft.Elem)
		if err != nil {
			return "", err
		}
		if nilable(inner) {
			return inner, nil
		}
		return "*" + inner, nil
	case models.Null, models.Unknown, models.Mixed:
		return "interface{}", nil
	}
	return "", errors.NewRenderError(fmt.Sprintf("no Go rendering for field type kind %s", ft.Kind), nil)
}
