// Package render turns a type graph into source text for one of the
// supported output targets.
package render

import (
	"fmt"

	"github.com/typeweaver/typeweaver/internal/errors"
	"github.com/typeweaver/typeweaver/internal/models"
)

// Target selects an output format.
type Target string

const (
	TargetGo         Target = "go"
	TargetTypeScript Target = "typescript"
	TargetJSONSchema Target = "jsonschema"
)

// Targets returns all supported targets in the order outputs are generated
// when no target is selected.
func Targets() []Target {
	return []Target{TargetGo, TargetTypeScript, TargetJSONSchema}
}

// ParseTarget resolves a user-supplied target name, accepting the common
// short forms.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "go", "golang":
		return TargetGo, nil
	case "typescript", "ts":
		return TargetTypeScript, nil
	case "jsonschema", "json-schema", "schema":
		return TargetJSONSchema, nil
	}
	return "", errors.NewInputError(fmt.Sprintf("unknown output target '%s'", s), errors.ErrUnknownTarget)
}

// Options configures rendering. Zero values get sensible defaults via For.
type Options struct {
	// Package is the package name for Go output.
	Package string
	// Format runs go/format on Go output.
	Format bool
}

// Renderer renders a complete type graph as text. Rendering is total for
// any graph the inference engine can produce; an unhandled field type kind
// is a programming error and is reported as a render error rather than
// producing silent output.
type Renderer interface {
	Target() Target
	// Ext is the file extension, without dot, used when writing one output
	// file per target.
	Ext() string
	Render(graph *models.TypeGraph) (string, error)
}

// rootAliasNeeded reports whether a declaration renderer should emit a
// named alias for a non-object root. A root array of objects names its
// element shape after the root, so an alias would redeclare that name; the
// element declaration is the deliverable there.
func rootAliasNeeded(graph *models.TypeGraph) bool {
	if graph.Root.Kind == models.Object {
		return false
	}
	if graph.Root.Kind == models.Array &&
		graph.Root.Elem.Kind == models.Object &&
		graph.Root.Elem.Ref.Name == graph.RootName {
		return false
	}
	return true
}

// For returns the renderer for a target.
func For(target Target, opts Options) (Renderer, error) {
	if opts.Package == "" {
		opts.Package = "main"
	}
	switch target {
	case TargetGo:
		return &GoRenderer{pkg: opts.Package, format: opts.Format}, nil
	case TargetTypeScript:
		return &TypeScriptRenderer{}, nil
	case TargetJSONSchema:
		return &SchemaRenderer{}, nil
	}
	return nil, errors.NewInputError(fmt.Sprintf("unknown output target '%s'", target), errors.ErrUnknownTarget)
}
