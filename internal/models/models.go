// Package models defines the value model and the inferred type graph shared
// by the parser, the inference engine and the renderers.
package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, boolean, nil, *JSONObject, or JSONArray.
type JSONValue interface{}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// JSONObject represents a JSON object with its key order preserved.
// encoding/json maps would lose document order, which the inference engine
// relies on for first-seen field ordering, so the parser builds these from
// the token stream instead.
type JSONObject struct {
	keys   []string
	values map[string]JSONValue
}

// NewJSONObject creates an empty ordered object.
func NewJSONObject() *JSONObject {
	return &JSONObject{values: make(map[string]JSONValue)}
}

// Set inserts or replaces a key. Insertion order is kept; replacing an
// existing key keeps its original position (last value wins, as in JSON).
func (o *JSONObject) Set(key string, value JSONValue) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value for key and whether it is present.
func (o *JSONObject) Get(key string) (JSONValue, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the object's keys in document order.
func (o *JSONObject) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *JSONObject) Len() int {
	return len(o.keys)
}

// Kind discriminates the variants of a FieldType.
type Kind int

const (
	Null Kind = iota
	Bool
	Integer
	Float
	String
	Array
	Object
	Optional
	Unknown
	Mixed
)

// String returns the kind name, mostly for error messages and test output.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	case Optional:
		return "optional"
	case Unknown:
		return "unknown"
	case Mixed:
		return "mixed"
	}
	return "invalid"
}

// FieldType is the inferred type of one field or array-element slot.
// Elem is set for Array (element type) and Optional (inner type);
// Ref is set for Object.
type FieldType struct {
	Kind Kind
	Elem *FieldType
	Ref  *CompositeDef
}

// ArrayOf returns an array type over elem.
func ArrayOf(elem FieldType) FieldType {
	return FieldType{Kind: Array, Elem: &elem}
}

// OptionalOf wraps inner as nullable. Wrapping an Optional is a no-op.
func OptionalOf(inner FieldType) FieldType {
	if inner.Kind == Optional {
		return inner
	}
	return FieldType{Kind: Optional, Elem: &inner}
}

// ObjectRef returns a reference to a composite definition.
func ObjectRef(def *CompositeDef) FieldType {
	return FieldType{Kind: Object, Ref: def}
}

// Field is one key of a composite definition. Optional records presence
// (the key was missing from at least one observed instance); nullability is
// carried by an Optional field type instead.
type Field struct {
	Key      string
	Type     FieldType
	Optional bool
}

// Required reports whether the field must appear, with a non-null value, in
// every instance. Declaration renderers and the schema renderer both use
// this so optional markers and the schema's required list always agree.
func (f Field) Required() bool {
	return !f.Optional && f.Type.Kind != Optional
}

// CompositeDef is a named record type describing one object shape. Fields
// are in first-seen order; keys discovered on later instances are appended.
type CompositeDef struct {
	Name   string
	Fields []Field
}

// FieldIndex returns the position of key in Fields, or false if absent.
func (d *CompositeDef) FieldIndex(key string) (int, bool) {
	for i := range d.Fields {
		if d.Fields[i].Key == key {
			return i, true
		}
	}
	return 0, false
}

// TypeGraph is the full inferred schema of one document: the root type, the
// root type's name, and every composite definition in discovery order.
type TypeGraph struct {
	RootName    string
	Root        FieldType
	Definitions []*CompositeDef
}
