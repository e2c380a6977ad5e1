package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeweaver/typeweaver/internal/inference"
	"github.com/typeweaver/typeweaver/internal/models"
	"github.com/typeweaver/typeweaver/internal/parser"
)

func inferGraph(t *testing.T, input string) *models.TypeGraph {
	t.Helper()
	value, err := parser.ParseString(input)
	require.NoError(t, err)
	graph, err := inference.Infer(value, "")
	require.NoError(t, err)
	return graph
}

func renderGo(t *testing.T, input string, opts Options) string {
	t.Helper()
	renderer, err := For(TargetGo, opts)
	require.NoError(t, err)
	out, err := renderer.Render(inferGraph(t, input))
	require.NoError(t, err)
	return out
}

func TestGoRenderer_FlatObject(t *testing.T) {
	out := renderGo(t, `{"name": "Ada", "age": 36, "score": 1.5, "active": true}`, Options{})

	expected := `package main

type RootType struct {
	Name string ` + "`json:\"name\"`" + `
	Age int64 ` + "`json:\"age\"`" + `
	Score float64 ` + "`json:\"score\"`" + `
	Active bool ` + "`json:\"active\"`" + `
}

`
	assert.Equal(t, expected, out)
}

func TestGoRenderer_FormattedOutput(t *testing.T) {
	out := renderGo(t, `{"id": 1, "name": "Ada"}`, Options{Format: true})

	// go/format aligns the field columns.
	assert.Contains(t, out, "type RootType struct {\n")
	assert.Contains(t, out, "Id   int64  `json:\"id\"`")
	assert.Contains(t, out, "Name string `json:\"name\"`")
}

func TestGoRenderer_CustomPackage(t *testing.T) {
	out := renderGo(t, `{"id": 1}`, Options{Package: "types"})
	assert.Contains(t, out, "package types\n")
}

func TestGoRenderer_NestedStructs(t *testing.T) {
	out := renderGo(t, `{"user": {"name": "Ada", "address": {"city": "London"}}}`, Options{})

	assert.Contains(t, out, "type RootType struct {")
	assert.Contains(t, out, "type User struct {")
	assert.Contains(t, out, "type Address struct {")
	assert.Contains(t, out, "User User `json:\"user\"`")
	assert.Contains(t, out, "Address Address `json:\"address\"`")
}

func TestGoRenderer_OptionalFieldsArePointersWithOmitempty(t *testing.T) {
	out := renderGo(t, `[{"a": 1, "b": 2}, {"b": 3, "c": "x"}]`, Options{})

	assert.Contains(t, out, "A *int64 `json:\"a,omitempty\"`")
	assert.Contains(t, out, "B int64 `json:\"b\"`")
	assert.Contains(t, out, "C *string `json:\"c,omitempty\"`")
}

func TestGoRenderer_NullableFieldIsPointer(t *testing.T) {
	out := renderGo(t, `[{"note": null}, {"note": "hi"}]`, Options{})

	// Present in every element but sometimes null: pointer with omitempty,
	// no double pointer.
	assert.Contains(t, out, "Note *string `json:\"note,omitempty\"`")
}

func TestGoRenderer_ArraysAndPlaceholders(t *testing.T) {
	out := renderGo(t, `{"tags": ["a"], "empty": [], "mixed": [1, "x"], "ghost": null}`, Options{})

	assert.Contains(t, out, "Tags []string `json:\"tags\"`")
	assert.Contains(t, out, "Empty []interface{} `json:\"empty\"`")
	assert.Contains(t, out, "Mixed []interface{} `json:\"mixed\"`")
	assert.Contains(t, out, "Ghost interface{} `json:\"ghost\"`")
}

func TestGoRenderer_CollidingKeysGetDistinctFields(t *testing.T) {
	out := renderGo(t, `{"user_id": 1, "userId": "x"}`, Options{})

	// Both keys PascalCase to UserId; the struct needs two distinct fields,
	// tags keep the original keys.
	assert.Contains(t, out, "UserId int64 `json:\"user_id\"`")
	assert.Contains(t, out, "UserId1 string `json:\"userId\"`")
}

func TestGoRenderer_RootArrayOfObjects(t *testing.T) {
	out := renderGo(t, `[{"id": 1}]`, Options{})

	// The element struct takes the root name; an alias would redeclare it.
	assert.Contains(t, out, "type RootType struct {")
	assert.NotContains(t, out, "type RootType []")
}

func TestGoRenderer_RootArrayOfScalars(t *testing.T) {
	out := renderGo(t, `[1, 2, 3]`, Options{})
	assert.Contains(t, out, "type RootType []int64\n")
}

func TestGoRenderer_RootScalar(t *testing.T) {
	out := renderGo(t, `"hello"`, Options{})
	assert.Contains(t, out, "type RootType string\n")
}

func TestGoRenderer_OptionalSliceStaysSlice(t *testing.T) {
	out := renderGo(t, `[{"a": 1, "tags": ["x"]}, {"a": 2}]`, Options{})

	// Slices are already nilable; no pointer-to-slice.
	assert.Contains(t, out, "Tags []string `json:\"tags,omitempty\"`")
	assert.NotContains(t, out, "*[]string")
}

func TestGoRenderer_FormattedOutputParses(t *testing.T) {
	out := renderGo(t, `[{"id": 1, "meta": {"tags": [null, "x"]}}, {"id": 2, "note": "n"}]`, Options{Format: true})
	// format.Source inside Render would have failed on unparsable output.
	assert.Contains(t, out, "package main")
}
