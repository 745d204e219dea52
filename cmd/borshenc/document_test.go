package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/borsh"
	"github.com/arloliu/borsh/encoder"
	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/format"
	"github.com/arloliu/borsh/value"
)

const orderDoc = `
structs:
  - name: Item
    fields:
      - {name: sku, type: string}
      - {name: qty, type: u32}
  - name: Order
    fields:
      - {name: id, type: u64}
      - {name: hash, type: "[u8; 4]"}
      - {name: items, type: vec<Item>}
      - {name: note, type: option<string>}
      - {name: total, type: u128}
      - {name: status, type: "enum{unit, u64}"}
value:
  type: struct
  name: Order
  fields:
    - {name: id, type: u64, value: 7}
    - {name: hash, type: fixed_array, value: "0xdeadbeef", len: 4}
    - name: items
      type: array
      items:
        - type: struct
          name: Item
          fields:
            - {name: sku, type: string, value: ab}
            - {name: qty, type: u32, value: 2}
    - name: note
      type: option
    - {name: total, type: u128, value: "300"}
    - name: status
      type: enum
      variant: 1
      payload: {type: u64, value: 1}
`

func TestParseDocument_WithSchema(t *testing.T) {
	v, reg, err := parseDocument([]byte(orderDoc))
	require.NoError(t, err)
	require.NotNil(t, reg)
	require.Equal(t, []string{"Item", "Order"}, reg.Names())
	require.NoError(t, reg.Validate(v))

	data, err := borsh.Encode(v, encoder.WithRegistry(reg))
	require.NoError(t, err)

	// id, hash, items, note, total, status
	expected := []byte{7, 0, 0, 0, 0, 0, 0, 0}
	expected = append(expected, 0xde, 0xad, 0xbe, 0xef)
	expected = append(expected, 1, 0, 0, 0, 2, 0, 0, 0, 'a', 'b', 2, 0, 0, 0)
	expected = append(expected, 0)
	expected = append(expected, 0x2c, 0x01)
	expected = append(expected, make([]byte, 14)...)
	expected = append(expected, 1, 1, 0, 0, 0, 0, 0, 0, 0)
	require.Equal(t, expected, data)
}

func TestParseDocument_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected value.Value
	}{
		{"u8", "value: {type: u8, value: 255}", value.U8(255)},
		{"u16 hex", "value: {type: u16, value: 0x0102}", value.U16(0x0102)},
		{"i32", "value: {type: i32, value: -5}", value.I32(-5)},
		{"i128", "value: {type: i128, value: -1}", value.I128FromInt64(-1)},
		{"f64", "value: {type: f64, value: 1.5}", value.F64(1.5)},
		{"f32", "value: {type: f32, value: 0.25}", value.F32(0.25)},
		{"bool", "value: {type: bool, value: true}", value.Bool(true)},
		{"unit", "value: {type: unit}", value.Unit{}},
		{"string", "value: {type: string, value: hi}", value.String("hi")},
		{"bytes", "value: {type: bytes, value: 00ff}", value.Bytes{0x00, 0xff}},
		{"fixed array", "value: {type: fixed_array, value: 0102}", value.FixedArrayOf([]byte{1, 2})},
		{"some", "value: {type: option, payload: {type: u8, value: 5}}", value.Some(value.U8(5))},
		{"none", "value: {type: option}", value.None()},
		{"enum", "value: {type: enum, variant: 2}", value.NewEnum(2, nil)},
		{
			"array",
			"value: {type: array, items: [{type: u8, value: 1}, {type: u8, value: 2}]}",
			value.NewArray(value.U8(1), value.U8(2)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, reg, err := parseDocument([]byte(tt.doc))
			require.NoError(t, err)
			require.Nil(t, reg)
			require.Equal(t, tt.expected, v)
		})
	}
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"no value", "structs: []", errs.ErrNilValue},
		{"unknown type", "value: {type: decimal, value: 1}", errs.ErrUnsupportedType},
		{"u8 overflow", "value: {type: u8, value: 256}", errs.ErrOverflow},
		{"u32 negative", "value: {type: u32, value: -1}", errs.ErrUnderflow},
		{"i8 underflow", "value: {type: i8, value: -129}", errs.ErrUnderflow},
		{"nested error", "value: {type: array, items: [{type: u16, value: 70000}]}", errs.ErrOverflow},
		{
			"duplicate field",
			"structs: [{name: A, fields: [{name: x, type: u8}, {name: x, type: u8}]}]\nvalue: {type: unit}",
			errs.ErrDuplicateField,
		},
		{
			"forward reference",
			"structs: [{name: A, fields: [{name: b, type: B}]}]\nvalue: {type: unit}",
			errs.ErrUnknownType,
		},
		{
			"bad fixed size",
			"structs: [{name: A, fields: [{name: h, type: \"[u8; x]\"}]}]\nvalue: {type: unit}",
			errs.ErrInvalidSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseDocument([]byte(tt.doc))
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, _, err := parseDocument([]byte("value: [unclosed"))
	require.Error(t, err)

	_, _, err = parseDocument([]byte("value: {type: bytes, value: zz}"))
	require.ErrorContains(t, err, "invalid hex")
}

func TestParseType(t *testing.T) {
	for _, expr := range []string{
		"u8", "i128", "string", "bytes", "[u8; 32]",
		"option<u64>", "vec<Item>", "vec<option<[u8; 2]>>", "enum{unit, u8}", "enum{vec<u8>, option<string>}",
	} {
		t.Run(expr, func(t *testing.T) {
			typ, err := parseType(expr)
			require.NoError(t, err)
			require.Equal(t, expr, typ.String())
		})
	}

	_, err := parseType("option")
	require.ErrorIs(t, err, errs.ErrInvalidSchema)

	typ, err := parseType("Account")
	require.NoError(t, err)
	require.Equal(t, format.KindStruct, typ.Kind())
}
