package inference

import "github.com/typeweaver/typeweaver/internal/models"

// Unify merges two field types observed for the same key or array slot.
// The rules, in order:
//
//	Mixed absorbs everything.
//	Identical tags unify structurally (array elements, optional inners,
//	object definitions field-wise).
//	Unknown carries no information and yields the other side.
//	Null paired with a concrete type marks it Optional.
//	Optional unwraps, unifies, and re-wraps.
//	Any remaining pair is irreconcilable: Mixed.
//
// Note that Integer and Float do not widen into each other; a slot that has
// seen both is Mixed.
func Unify(a, b models.FieldType) models.FieldType {
	if a.Kind == models.Mixed || b.Kind == models.Mixed {
		return models.FieldType{Kind: models.Mixed}
	}

	if a.Kind == b.Kind {
		switch a.Kind {
		case models.Array:
			return models.ArrayOf(Unify(*a.Elem, *b.Elem))
		case models.Optional:
			return models.OptionalOf(Unify(*a.Elem, *b.Elem))
		case models.Object:
			if a.Ref != b.Ref {
				mergeComposites(a.Ref, b.Ref)
			}
			return a
		default:
			return a
		}
	}

	switch {
	case a.Kind == models.Unknown:
		return b
	case b.Kind == models.Unknown:
		return a
	case a.Kind == models.Null:
		return models.OptionalOf(b)
	case b.Kind == models.Null:
		return models.OptionalOf(a)
	case a.Kind == models.Optional:
		return models.OptionalOf(Unify(*a.Elem, b))
	case b.Kind == models.Optional:
		return models.OptionalOf(Unify(a, *b.Elem))
	default:
		return models.FieldType{Kind: models.Mixed}
	}
}

// mergeComposites folds src's field set into dst: union of keys, one-sided
// keys optional, shared keys unified. Path-keyed allocation means two
// references at one slot normally already share a definition; this handles
// the remaining case conservatively.
func mergeComposites(dst, src *models.CompositeDef) {
	for _, f := range src.Fields {
		if idx, ok := dst.FieldIndex(f.Key); ok {
			dst.Fields[idx].Type = Unify(dst.Fields[idx].Type, f.Type)
			if f.Optional {
				dst.Fields[idx].Optional = true
			}
		} else {
			merged := f
			merged.Optional = true
			dst.Fields = append(dst.Fields, merged)
		}
	}
	for i := range dst.Fields {
		if _, ok := src.FieldIndex(dst.Fields[i].Key); !ok {
			dst.Fields[i].Optional = true
		}
	}
}
