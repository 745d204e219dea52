package schema

import (
	"fmt"

	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/value"
)

// Accessor produces the value of one declared field from a Go value of type T.
type Accessor[T any] struct {
	name string
	get  func(T) (value.Value, error)
}

// Access declares an accessor that cannot fail.
func Access[T any](name string, get func(T) value.Value) Accessor[T] {
	if get == nil {
		return Accessor[T]{name: name}
	}

	return Accessor[T]{
		name: name,
		get: func(t T) (value.Value, error) {
			return get(t), nil
		},
	}
}

// AccessErr declares an accessor that may fail.
func AccessErr[T any](name string, get func(T) (value.Value, error)) Accessor[T] {
	return Accessor[T]{name: name, get: get}
}

// Nested declares an accessor for a field holding another bound struct.
func Nested[T, U any](name string, binding *Binding[U], get func(T) U) Accessor[T] {
	return Accessor[T]{
		name: name,
		get: func(t T) (value.Value, error) {
			return binding.Value(get(t))
		},
	}
}

// Binding ties a struct declaration to accessors over Go values of type T.
// It is immutable and safe for concurrent use.
type Binding[T any] struct {
	registry  *Registry
	def       *StructDef
	accessors []Accessor[T]
}

// Bind creates a binding for the struct registered under name.
//
// The accessors must name exactly the declared fields, in declaration order;
// this makes the encode order an explicit, checked contract.
//
// Returns:
//   - errs.ErrUnknownType if name is not registered
//   - errs.ErrSchemaMismatch if accessor names or order differ from the declaration
//   - errs.ErrInvalidSchema if an accessor has no function
func Bind[T any](r *Registry, name string, accessors ...Accessor[T]) (*Binding[T], error) {
	def, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownType, name)
	}
	if len(accessors) != def.NumFields() {
		return nil, fmt.Errorf("%w: struct %s declares %d fields, got %d accessors",
			errs.ErrSchemaMismatch, name, def.NumFields(), len(accessors))
	}

	for i, a := range accessors {
		if decl := def.Field(i); a.name != decl.Name {
			return nil, fmt.Errorf("%w: struct %s accessor %d is %q, declared %q",
				errs.ErrSchemaMismatch, name, i, a.name, decl.Name)
		}
		if a.get == nil {
			return nil, fmt.Errorf("%w: struct %s accessor %q has no function", errs.ErrInvalidSchema, name, a.name)
		}
	}

	return &Binding[T]{
		registry:  r,
		def:       def,
		accessors: append([]Accessor[T](nil), accessors...),
	}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](r *Registry, name string, accessors ...Accessor[T]) *Binding[T] {
	b, err := Bind(r, name, accessors...)
	if err != nil {
		panic(err)
	}

	return b
}

// Def returns the bound struct declaration.
func (b *Binding[T]) Def() *StructDef {
	return b.def
}

// Value builds the struct value of t and checks it against the declaration.
func (b *Binding[T]) Value(t T) (value.Struct, error) {
	fields := make([]value.Field, len(b.accessors))
	for i, a := range b.accessors {
		v, err := a.get(t)
		if err != nil {
			return value.Struct{}, fmt.Errorf("struct %s field %q: %w", b.def.Name(), a.name, err)
		}
		fields[i] = value.Field{Name: a.name, Value: v}
	}

	s := value.Struct{Name: b.def.Name(), Fields: fields}
	if err := b.registry.Validate(s); err != nil {
		return value.Struct{}, err
	}

	return s, nil
}

// Valuer adapts t to value.Valuer through this binding.
func (b *Binding[T]) Valuer(t T) value.Valuer {
	return bound[T]{binding: b, target: t}
}

type bound[T any] struct {
	binding *Binding[T]
	target  T
}

func (v bound[T]) BorshValue() (value.Value, error) {
	return v.binding.Value(v.target)
}
