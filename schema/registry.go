// Package schema declares struct layouts explicitly, replacing runtime
// reflection over struct fields.
//
// A Registry holds named struct declarations. Each declaration is an ordered
// field list; the order is the wire order. A struct may only reference
// structs that are already defined and definitions never change afterwards,
// so every registry is acyclic by construction and the encoder can recurse
// without cycle detection.
//
//	reg := schema.NewRegistry()
//	_, _ = reg.Define("Point",
//	    schema.Field("x", schema.U8()),
//	    schema.Field("y", schema.U16()),
//	)
//	_, _ = reg.Define("Path",
//	    schema.Field("points", schema.Array(schema.Ref("Point"))),
//	)
//
// Bindings (see Bind) attach typed accessors to a declaration so Go values
// can be turned into value.Struct without reflection.
package schema

import (
	"fmt"
	"sync"

	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/format"
	"github.com/arloliu/borsh/internal/names"
)

// FieldDecl is one declared struct field.
type FieldDecl struct {
	Name string
	Type *Type
}

// Field declares a struct field.
func Field(name string, t *Type) FieldDecl {
	return FieldDecl{Name: name, Type: t}
}

// StructDef is a registered struct declaration. It cannot be changed after
// Define, so a registry stays acyclic.
type StructDef struct {
	name   string
	fields []FieldDecl
	names  *names.Tracker
}

// Name returns the struct name.
func (d *StructDef) Name() string { return d.name }

// NumFields returns the number of declared fields.
func (d *StructDef) NumFields() int { return d.names.Count() }

// Field returns the i-th declared field in wire order.
func (d *StructDef) Field(i int) FieldDecl { return d.fields[i] }

// Fields returns a copy of the declared fields in wire order.
func (d *StructDef) Fields() []FieldDecl {
	return append([]FieldDecl(nil), d.fields...)
}

// FieldIndex returns the wire position of the named field.
func (d *StructDef) FieldIndex(name string) (int, bool) {
	return d.names.Position(name)
}

// Registry stores struct declarations. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	structs map[string]*StructDef
	types   *names.Tracker // struct names in definition order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		structs: make(map[string]*StructDef),
		types:   names.NewTracker(0),
	}
}

// Define registers a struct declaration with the given ordered fields.
//
// Returns:
//   - errs.ErrInvalidSchema for an empty name, empty field names, nil types,
//     negative fixed-array sizes or enums without variants
//   - errs.ErrDuplicateType if name is already defined
//   - errs.ErrDuplicateField if two fields share a name
//   - errs.ErrCyclicSchema if a field refers to the struct being defined
//   - errs.ErrUnknownType if a field refers to an undefined struct
func (r *Registry) Define(name string, fields ...FieldDecl) (*StructDef, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty struct name", errs.ErrInvalidSchema)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.structs[name]; exists {
		return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateType, name)
	}

	tracker := names.NewTracker(len(fields))
	for _, f := range fields {
		if err := tracker.Track(f.Name); err != nil {
			return nil, fmt.Errorf("struct %q: %w", name, err)
		}
		if err := r.checkType(name, f.Type); err != nil {
			return nil, fmt.Errorf("struct %q field %q: %w", name, f.Name, err)
		}
	}

	if err := r.types.Track(name); err != nil {
		return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateType, name)
	}

	def := &StructDef{
		name:   name,
		fields: append([]FieldDecl(nil), fields...),
		names:  tracker,
	}
	r.structs[name] = def

	return def, nil
}

// MustDefine is like Define but panics on error. It is meant for package-level
// schema declarations.
func (r *Registry) MustDefine(name string, fields ...FieldDecl) *StructDef {
	def, err := r.Define(name, fields...)
	if err != nil {
		panic(err)
	}

	return def
}

// checkType validates t for a field of struct owner. Caller holds r.mu.
func (r *Registry) checkType(owner string, t *Type) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", errs.ErrInvalidSchema)
	}

	switch t.kind { //nolint: exhaustive
	case format.KindFixedArray:
		if t.size < 0 {
			return fmt.Errorf("%w: negative fixed array size %d", errs.ErrInvalidSchema, t.size)
		}
	case format.KindOptional, format.KindArray:
		if t.elem == nil {
			return fmt.Errorf("%w: %s without element type", errs.ErrInvalidSchema, t.kind)
		}

		return r.checkType(owner, t.elem)
	case format.KindStruct:
		if t.ref == owner {
			return fmt.Errorf("%w: %q refers to itself", errs.ErrCyclicSchema, owner)
		}
		if _, ok := r.structs[t.ref]; !ok {
			return fmt.Errorf("%w: %q", errs.ErrUnknownType, t.ref)
		}
	case format.KindEnum:
		if len(t.variants) == 0 || len(t.variants) > 256 {
			return fmt.Errorf("%w: enum needs 1 to 256 variants, got %d", errs.ErrInvalidSchema, len(t.variants))
		}
		for _, v := range t.variants {
			if v == nil {
				continue
			}
			if err := r.checkType(owner, v); err != nil {
				return err
			}
		}
	default:
		if _, ok := t.kind.FixedWidth(); !ok && t.kind != format.KindBytes && t.kind != format.KindString {
			return fmt.Errorf("%w: unknown kind %d", errs.ErrInvalidSchema, t.kind)
		}
	}

	return nil
}

// Lookup returns the declaration registered under name.
func (r *Registry) Lookup(name string) (*StructDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.structs[name]

	return def, ok
}

// Names returns the registered struct names in definition order. Every
// struct appears after all structs it references.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.types.Names()...)
}

// Len returns the number of registered structs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.types.Count()
}
