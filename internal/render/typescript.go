package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/typeweaver/typeweaver/internal/errors"
	"github.com/typeweaver/typeweaver/internal/models"
)

var tsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// TypeScriptRenderer emits one exported interface per composite definition.
// Presence-optional keys are marked with '?', nullable types become
// 'T | null' unions.
type TypeScriptRenderer struct{}

func (r *TypeScriptRenderer) Target() Target { return TargetTypeScript }
func (r *TypeScriptRenderer) Ext() string    { return "ts" }

func (r *TypeScriptRenderer) Render(graph *models.TypeGraph) (string, error) {
	var buf bytes.Buffer

	if rootAliasNeeded(graph) {
		rootType, err := r.typeString(graph.Root)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&buf, "export type %s = %s;\n\n", graph.RootName, rootType)
	}

	for _, def := range graph.Definitions {
		fmt.Fprintf(&buf, "export interface %s {\n", def.Name)
		for _, field := range def.Fields {
			typeStr, err := r.typeString(field.Type)
			if err != nil {
				return "", err
			}
			key := field.Key
			if !tsIdentifier.MatchString(key) {
				key = strconv.Quote(key)
			}
			marker := ""
			if field.Optional {
				marker = "?"
			}
			fmt.Fprintf(&buf, "  %s%s: %s;\n", key, marker, typeStr)
		}
		buf.WriteString("}\n\n")
	}

	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

func (r *TypeScriptRenderer) typeString(ft models.FieldType) (string, error) {
	switch ft.Kind {
	case models.Null:
		return "null", nil
	case models.Bool:
		return "boolean", nil
	case models.Integer, models.Float:
		return "number", nil
	case models.String:
		return "string", nil
	case models.Array:
		elem, err := r.typeString(*ft.Elem)
		if err != nil {
			return "", err
		}
		// Union element types need grouping: (string | null)[]
		if strings.Contains(elem, "|") {
			elem = "(" + elem + ")"
		}
		return elem + "[]", nil
	case models.Object:
		return ft.Ref.Name, nil
	case models.Optional:
		inner, err := r.typeString(*ft.Elem)
		if err != nil {
			return "", err
		}
		return inner + " | null", nil
	case models.Unknown:
		return "unknown", nil
	case models.Mixed:
		return "any", nil
	}
	return "", errors.NewRenderError(fmt.Sprintf("no TypeScript rendering for field type kind %s", ft.Kind), nil)
}
