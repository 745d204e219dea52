package schema

import (
	"testing"

	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/value"
	"github.com/stretchr/testify/require"
)

func newOrderRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry()
	reg.MustDefine("Item",
		Field("sku", String()),
		Field("qty", U32()),
	)
	reg.MustDefine("Order",
		Field("id", U64()),
		Field("hash", FixedArray(4)),
		Field("items", Array(Ref("Item"))),
		Field("note", Option(String())),
		Field("status", Enum(nil, U64())),
	)

	return reg
}

func validOrder() value.Struct {
	return value.NewStruct("Order",
		value.F("id", value.U64(7)),
		value.F("hash", value.FixedArrayOf([]byte{1, 2, 3, 4})),
		value.F("items", value.NewArray(
			value.NewStruct("Item", value.F("sku", value.String("a")), value.F("qty", value.U32(1))),
		)),
		value.F("note", value.None()),
		value.F("status", value.NewEnum(0, nil)),
	)
}

func TestValidate_Valid(t *testing.T) {
	reg := newOrderRegistry(t)
	require.NoError(t, reg.Validate(validOrder()))
}

func TestValidate_Mismatches(t *testing.T) {
	reg := newOrderRegistry(t)

	tests := []struct {
		name   string
		mutate func(s value.Struct) value.Value
		err    error
		path   string
	}{
		{
			name: "not a struct",
			mutate: func(value.Struct) value.Value {
				return value.U8(1)
			},
			err: errs.ErrSchemaMismatch,
		},
		{
			name: "unknown struct",
			mutate: func(s value.Struct) value.Value {
				s.Name = "Invoice"
				return s
			},
			err: errs.ErrUnknownType,
		},
		{
			name: "missing field",
			mutate: func(s value.Struct) value.Value {
				s.Fields = s.Fields[:4]
				return s
			},
			err: errs.ErrSchemaMismatch,
		},
		{
			name: "swapped fields",
			mutate: func(s value.Struct) value.Value {
				fields := append([]value.Field(nil), s.Fields...)
				fields[0], fields[1] = fields[1], fields[0]
				s.Fields = fields
				return s
			},
			err:  errs.ErrSchemaMismatch,
			path: "out of order",
		},
		{
			name: "wrong scalar kind",
			mutate: func(s value.Struct) value.Value {
				s.Fields = replaceField(s.Fields, 0, value.U32(7))
				return s
			},
			err:  errs.ErrSchemaMismatch,
			path: `"Order.id"`,
		},
		{
			name: "nil field value",
			mutate: func(s value.Struct) value.Value {
				s.Fields = replaceField(s.Fields, 0, nil)
				return s
			},
			err: errs.ErrSchemaMismatch,
		},
		{
			name: "fixed array declared length",
			mutate: func(s value.Struct) value.Value {
				s.Fields = replaceField(s.Fields, 1, value.FixedArrayOf([]byte{1, 2}))
				return s
			},
			err: errs.ErrSchemaMismatch,
		},
		{
			name: "fixed array data length",
			mutate: func(s value.Struct) value.Value {
				s.Fields = replaceField(s.Fields, 1, value.NewFixedArray([]byte{1, 2}, 4))
				return s
			},
			err: errs.ErrPreconditionViolation,
		},
		{
			name: "array element",
			mutate: func(s value.Struct) value.Value {
				s.Fields = replaceField(s.Fields, 2, value.NewArray(
					value.NewStruct("Item", value.F("sku", value.String("a")), value.F("qty", value.U64(1))),
				))
				return s
			},
			err:  errs.ErrSchemaMismatch,
			path: `"Order.items[0].qty"`,
		},
		{
			name: "nested struct name",
			mutate: func(s value.Struct) value.Value {
				s.Fields = replaceField(s.Fields, 2, value.NewArray(value.NewStruct("Order")))
				return s
			},
			err: errs.ErrSchemaMismatch,
		},
		{
			name: "optional payload",
			mutate: func(s value.Struct) value.Value {
				s.Fields = replaceField(s.Fields, 3, value.Some(value.U8(1)))
				return s
			},
			err: errs.ErrSchemaMismatch,
		},
		{
			name: "enum variant out of range",
			mutate: func(s value.Struct) value.Value {
				s.Fields = replaceField(s.Fields, 4, value.NewEnum(2, nil))
				return s
			},
			err: errs.ErrSchemaMismatch,
		},
		{
			name: "enum unit variant with payload",
			mutate: func(s value.Struct) value.Value {
				s.Fields = replaceField(s.Fields, 4, value.NewEnum(0, value.U8(1)))
				return s
			},
			err: errs.ErrSchemaMismatch,
		},
		{
			name: "enum payload kind",
			mutate: func(s value.Struct) value.Value {
				s.Fields = replaceField(s.Fields, 4, value.NewEnum(1, value.U8(1)))
				return s
			},
			err: errs.ErrSchemaMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Validate(tt.mutate(validOrder()))
			require.ErrorIs(t, err, tt.err)
			if tt.path != "" {
				require.Contains(t, err.Error(), tt.path)
			}
		})
	}
}

func TestValidate_OptionalAndEnumPayloads(t *testing.T) {
	reg := newOrderRegistry(t)

	s := validOrder()
	s.Fields = replaceField(s.Fields, 3, value.Some(value.String("leave at door")))
	s.Fields = replaceField(s.Fields, 4, value.NewEnum(1, value.U64(99)))
	require.NoError(t, reg.Validate(s))

	s.Fields = replaceField(s.Fields, 4, value.NewEnum(0, value.Unit{}))
	require.NoError(t, reg.Validate(s), "unit payload is accepted for a payload-less variant")
}

func TestValidate_Nil(t *testing.T) {
	reg := NewRegistry()
	require.ErrorIs(t, reg.Validate(nil), errs.ErrNilValue)
}

func TestConforms(t *testing.T) {
	reg := NewRegistry()

	require.ErrorIs(t, reg.Conforms(nil, value.U8(1)), errs.ErrInvalidSchema)

	require.NoError(t, reg.Conforms(Array(U8()), value.NewArray(value.U8(1), value.U8(2))))
	require.ErrorIs(t, reg.Conforms(Array(U8()), value.NewArray(value.U8(1), value.U16(2))), errs.ErrSchemaMismatch)
	require.NoError(t, reg.Conforms(U128(), value.U128FromUint64(1)))
}

func replaceField(fields []value.Field, i int, v value.Value) []value.Field {
	out := append([]value.Field(nil), fields...)
	out[i].Value = v

	return out
}
