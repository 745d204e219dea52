package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/format"
	"github.com/arloliu/borsh/schema"
	"github.com/arloliu/borsh/value"
)

// document is the YAML input of borshenc. structs optionally declares a
// schema that value is validated against before encoding.
type document struct {
	Structs []structDecl `yaml:"structs"`
	Value   *node        `yaml:"value"`
}

type structDecl struct {
	Name   string      `yaml:"name"`
	Fields []fieldDecl `yaml:"fields"`
}

type fieldDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// node describes one value. Which keys apply depends on type:
//
//	scalars       value
//	bytes         value (hex)
//	fixed_array   value (hex), len
//	option        payload (absent means None)
//	struct        name, fields (each field node carries its name)
//	enum          variant, payload
//	array         items
type node struct {
	Type    string `yaml:"type"`
	Value   string `yaml:"value"`
	Name    string `yaml:"name"`
	Fields  []node `yaml:"fields"`
	Items   []node `yaml:"items"`
	Len     *int   `yaml:"len"`
	Variant uint8  `yaml:"variant"`
	Payload *node  `yaml:"payload"`
}

// parseDocument decodes a YAML document into the value to encode and, when
// the document declares structs, the registry holding them.
func parseDocument(data []byte) (value.Value, *schema.Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse document: %w", err)
	}
	if doc.Value == nil {
		return nil, nil, fmt.Errorf("%w: document has no value", errs.ErrNilValue)
	}

	var reg *schema.Registry
	if len(doc.Structs) > 0 {
		reg = schema.NewRegistry()
		for _, decl := range doc.Structs {
			if err := defineStruct(reg, decl); err != nil {
				return nil, nil, err
			}
		}
	}

	v, err := doc.Value.toValue("value")
	if err != nil {
		return nil, nil, err
	}

	return v, reg, nil
}

func defineStruct(reg *schema.Registry, decl structDecl) error {
	fields := make([]schema.FieldDecl, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		t, err := parseType(f.Type)
		if err != nil {
			return fmt.Errorf("struct %s field %q: %w", decl.Name, f.Name, err)
		}
		fields = append(fields, schema.Field(f.Name, t))
	}

	if _, err := reg.Define(decl.Name, fields...); err != nil {
		return fmt.Errorf("struct %s: %w", decl.Name, err)
	}

	return nil
}

// parseType parses a type expression as printed by schema.Type.String:
// primitive kind names, "[u8; N]", "option<T>", "vec<T>", "enum{T, ...}"
// with "unit" for a variant without payload, and struct names.
func parseType(expr string) (*schema.Type, error) {
	expr = strings.TrimSpace(expr)

	switch {
	case expr == "":
		return nil, fmt.Errorf("%w: empty type", errs.ErrInvalidSchema)
	case strings.HasPrefix(expr, "option<") && strings.HasSuffix(expr, ">"):
		elem, err := parseType(expr[len("option<") : len(expr)-1])
		if err != nil {
			return nil, err
		}

		return schema.Option(elem), nil
	case strings.HasPrefix(expr, "vec<") && strings.HasSuffix(expr, ">"):
		elem, err := parseType(expr[len("vec<") : len(expr)-1])
		if err != nil {
			return nil, err
		}

		return schema.Array(elem), nil
	case strings.HasPrefix(expr, "[u8;") && strings.HasSuffix(expr, "]"):
		n, err := strconv.Atoi(strings.TrimSpace(expr[len("[u8;") : len(expr)-1]))
		if err != nil {
			return nil, fmt.Errorf("%w: fixed array size in %q", errs.ErrInvalidSchema, expr)
		}

		return schema.FixedArray(n), nil
	case strings.HasPrefix(expr, "enum{") && strings.HasSuffix(expr, "}"):
		var variants []*schema.Type
		for _, part := range splitTopLevel(expr[len("enum{") : len(expr)-1]) {
			if strings.TrimSpace(part) == "unit" {
				variants = append(variants, nil)
				continue
			}
			t, err := parseType(part)
			if err != nil {
				return nil, err
			}
			variants = append(variants, t)
		}

		return schema.Enum(variants...), nil
	}

	kind, ok := format.ParseKind(expr)
	if !ok {
		return schema.Ref(expr), nil
	}

	switch kind { //nolint: exhaustive
	case format.KindU8:
		return schema.U8(), nil
	case format.KindU16:
		return schema.U16(), nil
	case format.KindU32:
		return schema.U32(), nil
	case format.KindU64:
		return schema.U64(), nil
	case format.KindU128:
		return schema.U128(), nil
	case format.KindI8:
		return schema.I8(), nil
	case format.KindI16:
		return schema.I16(), nil
	case format.KindI32:
		return schema.I32(), nil
	case format.KindI64:
		return schema.I64(), nil
	case format.KindI128:
		return schema.I128(), nil
	case format.KindF32:
		return schema.F32(), nil
	case format.KindF64:
		return schema.F64(), nil
	case format.KindBool:
		return schema.Bool(), nil
	case format.KindUnit:
		return schema.Unit(), nil
	case format.KindBytes:
		return schema.Bytes(), nil
	case format.KindString:
		return schema.String(), nil
	default:
		return nil, fmt.Errorf("%w: %q needs parameters", errs.ErrInvalidSchema, expr)
	}
}

// splitTopLevel splits s at commas that are not nested inside <>, {} or [].
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<', '{', '[':
			depth++
		case '>', '}', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}

func (n *node) toValue(path string) (value.Value, error) {
	kind, ok := format.ParseKind(n.Type)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", path, errs.ErrUnsupportedType, n.Type)
	}

	return n.convert(kind, path)
}

func (n *node) convert(kind format.Kind, path string) (value.Value, error) {
	switch kind {
	case format.KindU8, format.KindU16, format.KindU32, format.KindU64:
		return n.unsigned(kind, path)
	case format.KindI8, format.KindI16, format.KindI32, format.KindI64:
		return n.signed(kind, path)
	case format.KindU128, format.KindI128:
		i, ok := new(big.Int).SetString(strings.TrimSpace(n.Value), 0)
		if !ok {
			return nil, fmt.Errorf("%s: invalid %s %q", path, kind, n.Value)
		}
		if kind == format.KindU128 {
			return value.NewU128(i), nil
		}

		return value.NewI128(i), nil
	case format.KindF32, format.KindF64:
		bits := 64
		if kind == format.KindF32 {
			bits = 32
		}
		f, err := parseFloat(n.Value, bits)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid %s: %w", path, kind, err)
		}
		if kind == format.KindF32 {
			return value.F32(float32(f)), nil
		}

		return value.F64(f), nil
	case format.KindBool:
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid bool: %w", path, err)
		}

		return value.Bool(b), nil
	case format.KindUnit:
		return value.Unit{}, nil
	case format.KindString:
		return value.String(n.Value), nil
	case format.KindBytes:
		b, err := decodeHex(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return value.Bytes(b), nil
	case format.KindFixedArray:
		b, err := decodeHex(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if n.Len == nil {
			return value.FixedArrayOf(b), nil
		}

		return value.NewFixedArray(b, *n.Len), nil
	case format.KindOptional:
		if n.Payload == nil {
			return value.None(), nil
		}
		inner, err := n.Payload.toValue(path + "?")
		if err != nil {
			return nil, err
		}

		return value.Some(inner), nil
	case format.KindStruct:
		fields := make([]value.Field, 0, len(n.Fields))
		for i := range n.Fields {
			f := &n.Fields[i]
			fv, err := f.toValue(path + "." + f.Name)
			if err != nil {
				return nil, err
			}
			fields = append(fields, value.F(f.Name, fv))
		}

		return value.NewStruct(n.Name, fields...), nil
	case format.KindEnum:
		if n.Payload == nil {
			return value.NewEnum(n.Variant, nil), nil
		}
		payload, err := n.Payload.toValue(fmt.Sprintf("%s#%d", path, n.Variant))
		if err != nil {
			return nil, err
		}

		return value.NewEnum(n.Variant, payload), nil
	case format.KindArray:
		items := make([]value.Value, 0, len(n.Items))
		for i := range n.Items {
			item, err := n.Items[i].toValue(path + "[" + strconv.Itoa(i) + "]")
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}

		return value.NewArray(items...), nil
	default:
		return nil, fmt.Errorf("%s: %w: %s", path, errs.ErrUnsupportedType, kind)
	}
}

func (n *node) unsigned(kind format.Kind, path string) (value.Value, error) {
	width, _ := kind.FixedWidth()
	s := strings.TrimSpace(n.Value)
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("%s: %w: %s value %s", path, errs.ErrUnderflow, kind, s)
	}

	u, err := strconv.ParseUint(s, 0, width*8)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, numError(kind, err))
	}

	switch kind { //nolint: exhaustive
	case format.KindU8:
		return value.U8(u), nil
	case format.KindU16:
		return value.U16(u), nil
	case format.KindU32:
		return value.U32(u), nil
	default:
		return value.U64(u), nil
	}
}

func (n *node) signed(kind format.Kind, path string) (value.Value, error) {
	width, _ := kind.FixedWidth()

	i, err := strconv.ParseInt(strings.TrimSpace(n.Value), 0, width*8)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, numError(kind, err))
	}

	switch kind { //nolint: exhaustive
	case format.KindI8:
		return value.I8(i), nil
	case format.KindI16:
		return value.I16(i), nil
	case format.KindI32:
		return value.I32(i), nil
	default:
		return value.I64(i), nil
	}
}

// numError maps strconv range errors onto the encoder's error kinds.
func numError(kind format.Kind, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		var ne *strconv.NumError
		if errors.As(err, &ne) && strings.HasPrefix(ne.Num, "-") {
			return fmt.Errorf("%w: %s value %s", errs.ErrUnderflow, kind, ne.Num)
		}

		return fmt.Errorf("%w: %s value out of range", errs.ErrOverflow, kind)
	}

	return fmt.Errorf("invalid %s: %w", kind, err)
}

// parseFloat accepts Go float syntax and the YAML spellings .nan, .inf and -.inf.
func parseFloat(s string, bits int) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case ".nan":
		s = "NaN"
	case ".inf", "+.inf":
		s = "+Inf"
	case "-.inf":
		s = "-Inf"
	}

	return strconv.ParseFloat(s, bits)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}

	return b, nil
}
