package value

import "math/big"

// NewU128 wraps v as a U128. v is not copied.
func NewU128(v *big.Int) U128 {
	return U128{Int: v}
}

// U128FromUint64 returns the U128 holding v.
func U128FromUint64(v uint64) U128 {
	return U128{Int: new(big.Int).SetUint64(v)}
}

// U128FromParts returns the U128 equal to hi*2^64 + lo.
func U128FromParts(hi, lo uint64) U128 {
	v := new(big.Int).SetUint64(hi)
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(lo))

	return U128{Int: v}
}

// NewI128 wraps v as an I128. v is not copied.
func NewI128(v *big.Int) I128 {
	return I128{Int: v}
}

// I128FromInt64 returns the I128 holding v.
func I128FromInt64(v int64) I128 {
	return I128{Int: big.NewInt(v)}
}

// Some returns a present Optional holding v.
func Some(v Value) Optional {
	return Optional{Value: v}
}

// None returns an absent Optional.
func None() Optional {
	return Optional{}
}

// Present reports whether the option holds a value.
func (o Optional) Present() bool {
	return o.Value != nil
}

// F builds a struct field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// NewStruct builds a struct from fields in declaration order.
func NewStruct(name string, fields ...Field) Struct {
	return Struct{Name: name, Fields: fields}
}

// NewEnum builds an enum value. Pass a nil payload for unit variants.
func NewEnum(variant uint8, payload Value) Enum {
	return Enum{Variant: variant, Payload: payload}
}

// NewFixedArray builds a fixed byte array with the declared length size.
func NewFixedArray(data []byte, size int) FixedArray {
	return FixedArray{Data: data, Len: size}
}

// FixedArrayOf builds a fixed byte array whose declared length is len(data).
func FixedArrayOf(data []byte) FixedArray {
	return FixedArray{Data: data, Len: len(data)}
}

// NewArray builds an array from items.
func NewArray(items ...Value) Array {
	return Array{Items: items}
}

// Field returns the value of the named field.
func (s Struct) Field(name string) (Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}
