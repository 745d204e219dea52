package value

// SameShape reports whether a and b can be elements of the same Array.
//
// Two values have the same shape when their kinds match and, for kinds that
// carry type information, that information matches too: struct names and the
// names and shapes of their fields, fixed array lengths, the inner shapes of
// present options and the shapes of all array items. An absent option or an
// empty array is compatible with any payload of its kind. Enum values of any
// variant share a shape.
func SameShape(a, b Value) bool {
	_, ok := unify(a, b)
	return ok
}

// Homogeneous reports whether all items share one shape.
//
// Compatibility with an absent option or an empty array is not transitive, so
// items are folded into a reference shape that picks up every payload seen so
// far; None, Some(u8), Some(string) is rejected at index 2.
//
// Returns:
//   - the index of the first item that does not fit, or -1
//   - true if the items are homogeneous
func Homogeneous(items []Value) (int, bool) {
	if len(items) == 0 {
		return -1, true
	}

	ref := items[0]
	for i := 1; i < len(items); i++ {
		merged, ok := unify(ref, items[i])
		if !ok {
			return i, false
		}
		ref = merged
	}

	return -1, true
}

// unify returns the most specific shape covering both a and b. The result
// describes a shape only; it is not meant to be encoded.
func unify(a, b Value) (Value, bool) {
	if a == nil || b == nil {
		return a, a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return nil, false
	}

	switch av := a.(type) {
	case Struct:
		bv, _ := b.(Struct)
		if av.Name != bv.Name || len(av.Fields) != len(bv.Fields) {
			return nil, false
		}

		fields := make([]Field, len(av.Fields))
		for i, f := range av.Fields {
			if f.Name != bv.Fields[i].Name {
				return nil, false
			}
			v, ok := unify(f.Value, bv.Fields[i].Value)
			if !ok {
				return nil, false
			}
			fields[i] = Field{Name: f.Name, Value: v}
		}

		return Struct{Name: av.Name, Fields: fields}, true
	case FixedArray:
		bv, _ := b.(FixedArray)
		return a, av.Len == bv.Len
	case Optional:
		bv, _ := b.(Optional)
		switch {
		case !av.Present():
			return b, true
		case !bv.Present():
			return a, true
		}

		v, ok := unify(av.Value, bv.Value)
		if !ok {
			return nil, false
		}

		return Optional{Value: v}, true
	case Array:
		bv, _ := b.(Array)
		ref, ok := itemShape(av)
		if !ok {
			return nil, false
		}
		other, ok := itemShape(bv)
		if !ok {
			return nil, false
		}

		switch {
		case ref == nil:
			return arrayShape(other), true
		case other == nil:
			return arrayShape(ref), true
		}

		v, ok := unify(ref, other)
		if !ok {
			return nil, false
		}

		return arrayShape(v), true
	default:
		return a, true
	}
}

// itemShape folds the items of arr into one shape; nil for an empty array.
func itemShape(arr Array) (Value, bool) {
	if len(arr.Items) == 0 {
		return nil, true
	}

	ref := arr.Items[0]
	for _, item := range arr.Items[1:] {
		merged, ok := unify(ref, item)
		if !ok {
			return nil, false
		}
		ref = merged
	}

	return ref, true
}

func arrayShape(item Value) Array {
	if item == nil {
		return Array{}
	}

	return Array{Items: []Value{item}}
}
