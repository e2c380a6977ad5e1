// Package inference walks a parsed JSON value and produces a type graph: a
// deduplicated, named set of composite definitions plus a root type.
// Inference is total — shapes it cannot reconcile degrade to Mixed or
// Unknown instead of failing.
package inference

import (
	"fmt"
	"strings"

	"encoding/json"

	"github.com/typeweaver/typeweaver/internal/errors"
	"github.com/typeweaver/typeweaver/internal/models"
	"github.com/typeweaver/typeweaver/internal/naming"
)

// DefaultRootName is the name given to the root type when none is specified.
const DefaultRootName = "RootType"

// Engine performs one inference run. Each run owns its own name allocator
// and definition table, so runs are independent and deterministic.
type Engine struct {
	alloc      *naming.Allocator
	graph      *models.TypeGraph
	defsByPath map[string]*models.CompositeDef
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Infer is a convenience wrapper around a fresh engine.
func Infer(root models.JSONValue, rootName string) (*models.TypeGraph, error) {
	return NewEngine().Infer(root, rootName)
}

// Infer derives the type graph of one document. rootName names the root
// composite when the document root is an object and the element shape for
// array roots; non-identifier names are sanitized first.
func (e *Engine) Infer(root models.JSONValue, rootName string) (*models.TypeGraph, error) {
	// The root name is used verbatim when it is already a clean identifier;
	// anything else would poison every rendered declaration.
	rootName = naming.SanitizeName(rootName, DefaultRootName)
	e.alloc = naming.NewAllocator()
	e.graph = &models.TypeGraph{RootName: rootName}
	e.defsByPath = make(map[string]*models.CompositeDef)

	var rootType models.FieldType
	var err error
	if obj, ok := root.(*models.JSONObject); ok {
		e.alloc.Reserve(rootName)
		rootType, err = e.inferObject(obj, nil, rootName)
	} else {
		// Non-object roots carry the root name down so that e.g. the
		// element shape of a root array is named after it.
		rootType, err = e.inferValue(root, []string{rootName})
	}
	if err != nil {
		return nil, err
	}

	e.finalize()
	e.graph.Root = rootType
	return e.graph, nil
}

// inferValue maps one value to its field type. path is the sequence of
// object keys from the root down to this value's slot; array traversal does
// not extend it, which is what makes elements of one array share a shape.
func (e *Engine) inferValue(value models.JSONValue, path []string) (models.FieldType, error) {
	switch v := value.(type) {
	case nil:
		return models.FieldType{Kind: models.Null}, nil
	case bool:
		return models.FieldType{Kind: models.Bool}, nil
	case string:
		return models.FieldType{Kind: models.String}, nil
	case json.Number:
		return numberType(v), nil
	case *models.JSONObject:
		return e.inferObject(v, path, "")
	case models.JSONArray:
		return e.inferArray(v, path)
	default:
		return models.FieldType{}, errors.NewInferenceError(
			fmt.Sprintf("unexpected json value type %T", v), nil)
	}
}

// numberType splits JSON numbers on the literal: no fraction or exponent
// means integer. The distinction matters because targets render the two
// differently.
func numberType(n json.Number) models.FieldType {
	if !strings.ContainsAny(n.String(), ".eE") {
		if _, err := n.Int64(); err == nil {
			return models.FieldType{Kind: models.Integer}
		}
	}
	return models.FieldType{Kind: models.Float}
}

// inferObject allocates or revisits the composite definition for the object
// shape at path. A revisit merges: the field set becomes the union of keys,
// keys missing on either side turn optional, and common keys unify.
func (e *Engine) inferObject(obj *models.JSONObject, path []string, forcedName string) (models.FieldType, error) {
	key := strings.Join(path, ".")
	def, ok := e.defsByPath[key]
	if !ok {
		name := forcedName
		if name == "" {
			name = e.alloc.Allocate(path)
		}
		def = &models.CompositeDef{Name: name}
		e.defsByPath[key] = def
		// Discovery order: the definition is registered before its fields
		// are explored, so parents precede their children.
		e.graph.Definitions = append(e.graph.Definitions, def)

		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			ft, err := e.inferValue(v, childPath(path, k))
			if err != nil {
				return models.FieldType{}, err
			}
			def.Fields = append(def.Fields, models.Field{Key: k, Type: ft})
		}
		return models.ObjectRef(def), nil
	}

	seen := make(map[string]bool, obj.Len())
	for _, k := range obj.Keys() {
		seen[k] = true
		v, _ := obj.Get(k)
		ft, err := e.inferValue(v, childPath(path, k))
		if err != nil {
			return models.FieldType{}, err
		}
		if idx, found := def.FieldIndex(k); found {
			def.Fields[idx].Type = Unify(def.Fields[idx].Type, ft)
		} else {
			def.Fields = append(def.Fields, models.Field{Key: k, Type: ft, Optional: true})
		}
	}
	for i := range def.Fields {
		if !seen[def.Fields[i].Key] {
			def.Fields[i].Optional = true
		}
	}
	return models.ObjectRef(def), nil
}

// inferArray left-fold-unifies the element types. An empty array learns
// nothing about its elements.
func (e *Engine) inferArray(arr models.JSONArray, path []string) (models.FieldType, error) {
	if len(arr) == 0 {
		return models.ArrayOf(models.FieldType{Kind: models.Unknown}), nil
	}

	elem, err := e.inferValue(arr[0], path)
	if err != nil {
		return models.FieldType{}, err
	}
	for _, v := range arr[1:] {
		next, err := e.inferValue(v, path)
		if err != nil {
			return models.FieldType{}, err
		}
		elem = Unify(elem, next)
	}
	return models.ArrayOf(elem), nil
}

// finalize seals the graph. A field whose only observed values were null has
// taught us nothing; it becomes Unknown rather than keeping the Null tag,
// so renderers emit a placeholder instead of a literal null type.
func (e *Engine) finalize() {
	for _, def := range e.graph.Definitions {
		for i := range def.Fields {
			if def.Fields[i].Type.Kind == models.Null {
				def.Fields[i].Type = models.FieldType{Kind: models.Unknown}
			}
		}
	}
}

// childPath copies before appending; sibling recursions must not share the
// backing array.
func childPath(path []string, key string) []string {
	child := make([]string, len(path)+1)
	copy(child, path)
	child[len(path)] = key
	return child
}
