package schema

import (
	"fmt"
	"strconv"

	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/format"
	"github.com/arloliu/borsh/value"
)

// Validate checks that v is a struct registered in r and that every field
// conforms to its declaration: kinds, field names and order, fixed array
// lengths, and nested structs, options, arrays and enums.
//
// Integer ranges are not checked here; the encoder rejects out-of-range
// 128-bit values when writing.
func (r *Registry) Validate(v value.Value) error {
	s, ok := v.(value.Struct)
	if !ok {
		if v == nil {
			return fmt.Errorf("%w: nil struct", errs.ErrNilValue)
		}

		return fmt.Errorf("%w: expected struct, got %s", errs.ErrSchemaMismatch, v.Kind())
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.conformsStruct(s.Name, s, s.Name)
}

// Conforms checks v against the declared type t.
func (r *Registry) Conforms(t *Type, v value.Value) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", errs.ErrInvalidSchema)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.conforms(t, v, "")
}

// conforms checks v against t. path names the position of v for errors.
// Caller holds r.mu for reading.
func (r *Registry) conforms(t *Type, v value.Value, path string) error {
	if v == nil {
		return fmt.Errorf("%w: %s: missing %s value", errs.ErrSchemaMismatch, displayPath(path), t)
	}
	if v.Kind() != t.kind {
		return fmt.Errorf("%w: %s: expected %s, got %s", errs.ErrSchemaMismatch, displayPath(path), t, v.Kind())
	}

	switch t.kind { //nolint: exhaustive
	case format.KindStruct:
		s, _ := v.(value.Struct)
		if s.Name != "" && s.Name != t.ref {
			return fmt.Errorf("%w: %s: expected struct %s, got %s", errs.ErrSchemaMismatch, displayPath(path), t.ref, s.Name)
		}

		return r.conformsStruct(t.ref, s, path)
	case format.KindFixedArray:
		fa, _ := v.(value.FixedArray)
		if fa.Len != t.size {
			return fmt.Errorf("%w: %s: declared length %d, schema expects %d",
				errs.ErrSchemaMismatch, displayPath(path), fa.Len, t.size)
		}
		if len(fa.Data) != t.size {
			return fmt.Errorf("%w: %s: got %d bytes, schema expects %d",
				errs.ErrPreconditionViolation, displayPath(path), len(fa.Data), t.size)
		}
	case format.KindOptional:
		o, _ := v.(value.Optional)
		if o.Present() {
			return r.conforms(t.elem, o.Value, path)
		}
	case format.KindArray:
		a, _ := v.(value.Array)
		for i, item := range a.Items {
			if err := r.conforms(t.elem, item, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	case format.KindEnum:
		e, _ := v.(value.Enum)
		if int(e.Variant) >= len(t.variants) {
			return fmt.Errorf("%w: %s: enum variant %d out of %d",
				errs.ErrSchemaMismatch, displayPath(path), e.Variant, len(t.variants))
		}

		payload := t.variants[e.Variant]
		if payload == nil {
			if e.Payload != nil && e.Payload.Kind() != format.KindUnit {
				return fmt.Errorf("%w: %s: enum variant %d has no payload, got %s",
					errs.ErrSchemaMismatch, displayPath(path), e.Variant, e.Payload.Kind())
			}

			return nil
		}

		return r.conforms(payload, e.Payload, path)
	}

	return nil
}

func (r *Registry) conformsStruct(name string, s value.Struct, path string) error {
	def, ok := r.structs[name]
	if !ok {
		return fmt.Errorf("%w: %q", errs.ErrUnknownType, name)
	}
	if len(s.Fields) != def.NumFields() {
		return fmt.Errorf("%w: %s: struct %s has %d fields, got %d",
			errs.ErrSchemaMismatch, displayPath(path), name, def.NumFields(), len(s.Fields))
	}

	for i, decl := range def.fields {
		f := s.Fields[i]
		if f.Name != decl.Name {
			if pos, declared := def.FieldIndex(f.Name); declared {
				return fmt.Errorf("%w: %s: field %q of %s is out of order: got it at %d, declared at %d",
					errs.ErrSchemaMismatch, displayPath(path), f.Name, name, i, pos)
			}

			return fmt.Errorf("%w: %s: field %d of %s must be %q, got %q",
				errs.ErrSchemaMismatch, displayPath(path), i, name, decl.Name, f.Name)
		}
		if err := r.conforms(decl.Type, f.Value, joinPath(path, f.Name)); err != nil {
			return err
		}
	}

	return nil
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}

	return path + "." + field
}

func displayPath(path string) string {
	if path == "" {
		return "value"
	}

	return strconv.Quote(path)
}
