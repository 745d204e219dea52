package schema

import (
	"fmt"
	"strings"

	"github.com/arloliu/borsh/format"
)

// Type describes the declared type of a struct field.
//
// Types are immutable once built. Use the constructors in this package:
//
//	schema.U64()
//	schema.Option(schema.String())
//	schema.Array(schema.Ref("Item"))
//	schema.FixedArray(32)
type Type struct {
	kind     format.Kind
	elem     *Type
	size     int
	ref      string
	variants []*Type
}

func scalar(k format.Kind) *Type { return &Type{kind: k} }

func U8() *Type     { return scalar(format.KindU8) }
func U16() *Type    { return scalar(format.KindU16) }
func U32() *Type    { return scalar(format.KindU32) }
func U64() *Type    { return scalar(format.KindU64) }
func U128() *Type   { return scalar(format.KindU128) }
func I8() *Type     { return scalar(format.KindI8) }
func I16() *Type    { return scalar(format.KindI16) }
func I32() *Type    { return scalar(format.KindI32) }
func I64() *Type    { return scalar(format.KindI64) }
func I128() *Type   { return scalar(format.KindI128) }
func F32() *Type    { return scalar(format.KindF32) }
func F64() *Type    { return scalar(format.KindF64) }
func Bool() *Type   { return scalar(format.KindBool) }
func Unit() *Type   { return scalar(format.KindUnit) }
func Bytes() *Type  { return scalar(format.KindBytes) }
func String() *Type { return scalar(format.KindString) }

// FixedArray declares a raw byte array of exactly size bytes.
func FixedArray(size int) *Type {
	return &Type{kind: format.KindFixedArray, size: size}
}

// Option declares an optional elem.
func Option(elem *Type) *Type {
	return &Type{kind: format.KindOptional, elem: elem}
}

// Array declares a dynamic-length sequence of elem.
func Array(elem *Type) *Type {
	return &Type{kind: format.KindArray, elem: elem}
}

// Ref declares a field holding the struct registered under name.
// The struct must be defined before any struct referencing it.
func Ref(name string) *Type {
	return &Type{kind: format.KindStruct, ref: name}
}

// Enum declares a tagged union. The variant index is the position in
// variants; a nil entry declares a variant without payload.
func Enum(variants ...*Type) *Type {
	return &Type{kind: format.KindEnum, variants: append([]*Type(nil), variants...)}
}

// Kind returns the value kind this type accepts.
func (t *Type) Kind() format.Kind { return t.kind }

// Elem returns the element type of options and arrays.
func (t *Type) Elem() *Type { return t.elem }

// Size returns the declared length of a fixed array.
func (t *Type) Size() int { return t.size }

// RefName returns the referenced struct name.
func (t *Type) RefName() string { return t.ref }

// Variants returns the payload types of an enum.
func (t *Type) Variants() []*Type { return append([]*Type(nil), t.variants...) }

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.kind { //nolint: exhaustive
	case format.KindFixedArray:
		return fmt.Sprintf("[u8; %d]", t.size)
	case format.KindOptional:
		return fmt.Sprintf("option<%s>", t.elem)
	case format.KindArray:
		return fmt.Sprintf("vec<%s>", t.elem)
	case format.KindStruct:
		return t.ref
	case format.KindEnum:
		parts := make([]string, len(t.variants))
		for i, v := range t.variants {
			if v == nil {
				parts[i] = "unit"
				continue
			}
			parts[i] = v.String()
		}

		return "enum{" + strings.Join(parts, ", ") + "}"
	default:
		return t.kind.String()
	}
}
