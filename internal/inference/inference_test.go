package inference

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeweaver/typeweaver/internal/models"
	"github.com/typeweaver/typeweaver/internal/parser"
)

func infer(t *testing.T, input string) *models.TypeGraph {
	t.Helper()
	value, err := parser.ParseString(input)
	require.NoError(t, err)
	graph, err := Infer(value, "")
	require.NoError(t, err)
	return graph
}

func mustField(t *testing.T, def *models.CompositeDef, key string) models.Field {
	t.Helper()
	idx, ok := def.FieldIndex(key)
	require.True(t, ok, "field %q not found on %s", key, def.Name)
	return def.Fields[idx]
}

func TestInfer_FlatObject(t *testing.T) {
	graph := infer(t, `{"name": "Ada", "age": 36, "score": 1.5, "active": true}`)

	assert.Equal(t, "RootType", graph.RootName)
	require.Len(t, graph.Definitions, 1)
	root := graph.Definitions[0]
	assert.Equal(t, "RootType", root.Name)
	require.Len(t, root.Fields, 4)

	assert.Equal(t, models.String, mustField(t, root, "name").Type.Kind)
	assert.Equal(t, models.Integer, mustField(t, root, "age").Type.Kind)
	assert.Equal(t, models.Float, mustField(t, root, "score").Type.Kind)
	assert.Equal(t, models.Bool, mustField(t, root, "active").Type.Kind)

	assert.Equal(t, models.Object, graph.Root.Kind)
	assert.Same(t, root, graph.Root.Ref)
}

func TestInfer_FieldOrderIsDocumentOrder(t *testing.T) {
	graph := infer(t, `{"zebra": 1, "apple": 2, "mango": 3}`)

	root := graph.Definitions[0]
	keys := make([]string, 0, len(root.Fields))
	for _, f := range root.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, keys)
}

func TestInfer_NestedObjectsGetOwnDefinitions(t *testing.T) {
	graph := infer(t, `{"user": {"name": "Ada", "address": {"city": "London"}}}`)

	require.Len(t, graph.Definitions, 3)
	assert.Equal(t, "RootType", graph.Definitions[0].Name)
	assert.Equal(t, "User", graph.Definitions[1].Name)
	assert.Equal(t, "Address", graph.Definitions[2].Name)

	user := mustField(t, graph.Definitions[0], "user")
	assert.Equal(t, models.Object, user.Type.Kind)
	assert.Same(t, graph.Definitions[1], user.Type.Ref)
}

func TestInfer_SameShapeDifferentPathsStayDistinct(t *testing.T) {
	graph := infer(t, `{"user": {"id": 1}, "meta": {"id": 2}}`)

	require.Len(t, graph.Definitions, 3)
	assert.Equal(t, "User", graph.Definitions[1].Name)
	assert.Equal(t, "Meta", graph.Definitions[2].Name)
	assert.NotSame(t, graph.Definitions[1], graph.Definitions[2])
}

func TestInfer_ArrayElementsShareOneDefinition(t *testing.T) {
	graph := infer(t, `{"users": [{"id": 1}, {"id": 2}, {"id": 3}]}`)

	require.Len(t, graph.Definitions, 2)
	users := mustField(t, graph.Definitions[0], "users")
	require.Equal(t, models.Array, users.Type.Kind)
	require.Equal(t, models.Object, users.Type.Elem.Kind)
	assert.Same(t, graph.Definitions[1], users.Type.Elem.Ref)
	assert.Equal(t, "Users", graph.Definitions[1].Name)
}

func TestInfer_KeyUnionAcrossArrayElements(t *testing.T) {
	graph := infer(t, `[{"a": 1, "b": 2}, {"b": 3, "c": 4}]`)

	require.Len(t, graph.Definitions, 1)
	def := graph.Definitions[0]

	keys := make([]string, 0, len(def.Fields))
	for _, f := range def.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys, "first-seen key order")

	assert.True(t, mustField(t, def, "a").Optional, "missing from second element")
	assert.False(t, mustField(t, def, "b").Optional, "present in all elements")
	assert.True(t, mustField(t, def, "c").Optional, "missing from first element")
}

func TestInfer_NullThenValueIsOptional(t *testing.T) {
	graph := infer(t, `[{"note": null}, {"note": "hi"}]`)

	note := mustField(t, graph.Definitions[0], "note")
	require.Equal(t, models.Optional, note.Type.Kind)
	assert.Equal(t, models.String, note.Type.Elem.Kind)
	assert.False(t, note.Optional, "key is present in every element")
}

func TestInfer_AllNullFieldBecomesUnknown(t *testing.T) {
	graph := infer(t, `{"ghost": null}`)

	ghost := mustField(t, graph.Definitions[0], "ghost")
	assert.Equal(t, models.Unknown, ghost.Type.Kind)
	assert.True(t, ghost.Required())
}

func TestInfer_MixedScalarArray(t *testing.T) {
	graph := infer(t, `{"values": [1, "two", 3]}`)

	values := mustField(t, graph.Definitions[0], "values")
	require.Equal(t, models.Array, values.Type.Kind)
	assert.Equal(t, models.Mixed, values.Type.Elem.Kind)
}

func TestInfer_IntegerFloatSplit(t *testing.T) {
	graph := infer(t, `{"count": 7, "ratio": 0.5, "sci": 1e3, "big": 9999999999}`)

	root := graph.Definitions[0]
	assert.Equal(t, models.Integer, mustField(t, root, "count").Type.Kind)
	assert.Equal(t, models.Float, mustField(t, root, "ratio").Type.Kind)
	assert.Equal(t, models.Float, mustField(t, root, "sci").Type.Kind, "exponent form reads as float")
	assert.Equal(t, models.Integer, mustField(t, root, "big").Type.Kind)
}

func TestInfer_EmptyArray(t *testing.T) {
	graph := infer(t, `{"items": []}`)

	items := mustField(t, graph.Definitions[0], "items")
	require.Equal(t, models.Array, items.Type.Kind)
	assert.Equal(t, models.Unknown, items.Type.Elem.Kind)
}

func TestInfer_EmptyArrayLearnsFromSibling(t *testing.T) {
	graph := infer(t, `[{"tags": []}, {"tags": ["a"]}]`)

	tags := mustField(t, graph.Definitions[0], "tags")
	require.Equal(t, models.Array, tags.Type.Kind)
	assert.Equal(t, models.String, tags.Type.Elem.Kind)
}

func TestInfer_RootArrayNamesElementAfterRoot(t *testing.T) {
	graph := infer(t, `[{"id": 1}]`)

	require.Equal(t, models.Array, graph.Root.Kind)
	require.Equal(t, models.Object, graph.Root.Elem.Kind)
	require.Len(t, graph.Definitions, 1)
	assert.Equal(t, "RootType", graph.Definitions[0].Name)
}

func TestInfer_RootScalar(t *testing.T) {
	graph := infer(t, `"hello"`)

	assert.Equal(t, models.String, graph.Root.Kind)
	assert.Empty(t, graph.Definitions)
}

func TestInfer_RootNull(t *testing.T) {
	value, err := parser.ParseString(`null`)
	require.NoError(t, err)
	graph, err := Infer(value, "")
	require.NoError(t, err)

	assert.Equal(t, models.Null, graph.Root.Kind)
	assert.Empty(t, graph.Definitions)
}

func TestInfer_CustomRootName(t *testing.T) {
	value, err := parser.ParseString(`{"id": 1}`)
	require.NoError(t, err)
	graph, err := Infer(value, "Invoice")
	require.NoError(t, err)

	assert.Equal(t, "Invoice", graph.RootName)
	assert.Equal(t, "Invoice", graph.Definitions[0].Name)
}

func TestInfer_RootNameSanitized(t *testing.T) {
	tests := []struct {
		rootName string
		want     string
	}{
		{"Invoice", "Invoice"},
		{"my type", "MyType"},
		{"root-type", "RootType"},
		{"$$$", "RootType"},
		{"", "RootType"},
	}
	for _, tt := range tests {
		value, err := parser.ParseString(`{"id": 1}`)
		require.NoError(t, err)
		graph, err := Infer(value, tt.rootName)
		require.NoError(t, err)
		assert.Equal(t, tt.want, graph.RootName, "root name %q", tt.rootName)
		assert.Equal(t, tt.want, graph.Definitions[0].Name)
	}
}

func TestInfer_NameCollisionGetsSuffix(t *testing.T) {
	graph := infer(t, `{"meta": {"id": 1}, "user": {"meta": {"id": 2}}}`)

	names := make([]string, 0, len(graph.Definitions))
	for _, def := range graph.Definitions {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"RootType", "Meta", "User", "Meta1"}, names)
}

func TestInfer_NestedArrays(t *testing.T) {
	graph := infer(t, `{"grid": [[1, 2], [3]]}`)

	grid := mustField(t, graph.Definitions[0], "grid")
	require.Equal(t, models.Array, grid.Type.Kind)
	require.Equal(t, models.Array, grid.Type.Elem.Kind)
	assert.Equal(t, models.Integer, grid.Type.Elem.Elem.Kind)
}

func TestInfer_Deterministic(t *testing.T) {
	const input = `{
		"users": [
			{"id": 1, "name": "Ada", "tags": ["x"]},
			{"id": 2, "email": "b@example.com", "tags": []}
		],
		"meta": {"count": 2, "cursor": null}
	}`

	run := func() *models.TypeGraph {
		value, err := parser.ParseString(input)
		require.NoError(t, err)
		graph, err := Infer(value, "")
		require.NoError(t, err)
		return graph
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("inference is not deterministic (-first +second):\n%s", diff)
	}
}
