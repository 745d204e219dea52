// Package value defines the closed set of values the Borsh encoder accepts.
//
// Every encodable value is one of the variants declared here; the set cannot
// be extended outside this package because Value carries an unexported marker
// method. Domain types become values either by building them directly or by
// implementing Valuer, usually through a schema.Binding.
//
//	v := value.NewStruct("Point",
//	    value.F("x", value.U8(1)),
//	    value.F("y", value.U16(2)),
//	)
package value

import (
	"math/big"

	"github.com/arloliu/borsh/format"
)

// Value is a Borsh value. The concrete type is one of the variants in this package.
type Value interface {
	Kind() format.Kind
	isValue()
}

// Valuer is implemented by types that can present themselves as a Value.
type Valuer interface {
	BorshValue() (Value, error)
}

type (
	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64
	I8  int8
	I16 int16
	I32 int32
	I64 int64
	F32 float32
	F64 float64

	Bool   bool
	Bytes  []byte
	String string
)

// Unit is the zero-sized value.
type Unit struct{}

// U128 is an unsigned 128-bit integer. Int must satisfy 0 <= Int < 2^128;
// out-of-range values are rejected at encode time, never wrapped.
type U128 struct {
	Int *big.Int
}

// I128 is a signed 128-bit integer in the range [-2^127, 2^127).
type I128 struct {
	Int *big.Int
}

// Optional is a value that may be absent. A nil Value means absent.
type Optional struct {
	Value Value
}

// Field is one named member of a Struct.
type Field struct {
	Name  string
	Value Value
}

// Struct is an ordered sequence of named fields. Field order is part of the
// wire layout.
type Struct struct {
	Name   string
	Fields []Field
}

// Enum is a tagged union member: the variant index followed by its payload.
// A nil Payload encodes like Unit.
type Enum struct {
	Variant uint8
	Payload Value
}

// FixedArray is a raw byte buffer whose length Len is declared by the schema
// and never written. len(Data) must equal Len.
type FixedArray struct {
	Data []byte
	Len  int
}

// Array is a dynamic-length homogeneous sequence of values.
type Array struct {
	Items []Value
}

func (U8) Kind() format.Kind         { return format.KindU8 }
func (U16) Kind() format.Kind        { return format.KindU16 }
func (U32) Kind() format.Kind        { return format.KindU32 }
func (U64) Kind() format.Kind        { return format.KindU64 }
func (U128) Kind() format.Kind       { return format.KindU128 }
func (I8) Kind() format.Kind         { return format.KindI8 }
func (I16) Kind() format.Kind        { return format.KindI16 }
func (I32) Kind() format.Kind        { return format.KindI32 }
func (I64) Kind() format.Kind        { return format.KindI64 }
func (I128) Kind() format.Kind       { return format.KindI128 }
func (F32) Kind() format.Kind        { return format.KindF32 }
func (F64) Kind() format.Kind        { return format.KindF64 }
func (Bool) Kind() format.Kind       { return format.KindBool }
func (Unit) Kind() format.Kind       { return format.KindUnit }
func (Bytes) Kind() format.Kind      { return format.KindBytes }
func (String) Kind() format.Kind     { return format.KindString }
func (Optional) Kind() format.Kind   { return format.KindOptional }
func (Struct) Kind() format.Kind     { return format.KindStruct }
func (Enum) Kind() format.Kind       { return format.KindEnum }
func (FixedArray) Kind() format.Kind { return format.KindFixedArray }
func (Array) Kind() format.Kind      { return format.KindArray }

func (U8) isValue()         {}
func (U16) isValue()        {}
func (U32) isValue()        {}
func (U64) isValue()        {}
func (U128) isValue()       {}
func (I8) isValue()         {}
func (I16) isValue()        {}
func (I32) isValue()        {}
func (I64) isValue()        {}
func (I128) isValue()       {}
func (F32) isValue()        {}
func (F64) isValue()        {}
func (Bool) isValue()       {}
func (Unit) isValue()       {}
func (Bytes) isValue()      {}
func (String) isValue()     {}
func (Optional) isValue()   {}
func (Struct) isValue()     {}
func (Enum) isValue()       {}
func (FixedArray) isValue() {}
func (Array) isValue()      {}
