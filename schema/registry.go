// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"fmt"
	"slices"

	"codello.dev/z3950"
)

// A Registry holds a set of named types. Types in a schema refer to each other
// using [Ref] values that are resolved by a Registry.
//
// A Registry is safe for concurrent use as long as no types are defined
// concurrently.
type Registry struct {
	types map[string]Type
	names []string // in definition order
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// Define adds the type t to r using the given name. If t is a [*Sequence] or
// [*Choice] (optionally wrapped in [*Tagged] types) without a name, its name is
// set to name.
//
// Define panics if name is empty or already defined.
func (r *Registry) Define(name string, t Type) {
	if name == "" {
		panic("schema: Define with empty name")
	}
	if _, ok := r.types[name]; ok {
		panic("schema: duplicate definition of " + name)
	}
	switch s := untag(t).(type) {
	case *Sequence:
		if s.Name == "" {
			s.Name = name
		}
	case *Choice:
		if s.Name == "" {
			s.Name = name
		}
	}
	r.types[name] = t
	r.names = append(r.names, name)
}

// Lookup returns the type with the given name.
func (r *Registry) Lookup(name string) (Type, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.types[name]
	return t, ok
}

// Names returns the names of all types in r in the order they were defined.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}

// Build returns a [Builder] for a message of the named type. Tags of the named
// type are ignored.
func (r *Registry) Build(name string) *Builder {
	t := Type(Ref(name))
	for hops := 0; hops <= len(r.Names()); hops++ {
		rt, err := r.resolve(t)
		if err != nil {
			return &Builder{err: err}
		}
		if t = untag(rt); t.Kind() != KindRef {
			return Build(t)
		}
	}
	return &Builder{err: fmt.Errorf("%w: %s is a cyclic alias", ErrUnknownType, name)}
}

// resolve follows references until a type other than a [Ref] is reached.
func (r *Registry) resolve(t Type) (Type, error) {
	for hops := 0; ; hops++ {
		ref, ok := t.(Ref)
		if !ok {
			return t, nil
		}
		if r == nil || hops > len(r.names) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, ref)
		}
		if t, ok = r.types[string(ref)]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, ref)
		}
	}
}

// tagOf returns the tag of t. If t cannot be resolved or has no definite tag,
// ok is false.
func (r *Registry) tagOf(t Type) (tag z3950.Tag, ok bool) {
	rt, err := r.resolve(t)
	if err != nil {
		return z3950.Tag{}, false
	}
	return rt.tag(r)
}

// Validate checks the types in r for consistency. It reports references that
// cannot be resolved and CHOICE types whose tagged alternatives do not have
// distinct tags. All problems are returned together.
func (r *Registry) Validate() error {
	var errs []error
	seen := make(map[Type]bool)
	for _, name := range r.names {
		errs = r.validate(name, r.types[name], seen, errs)
	}
	return errors.Join(errs...)
}

// validate appends the problems of t to errs. Types in seen are skipped.
func (r *Registry) validate(name string, t Type, seen map[Type]bool, errs []error) []error {
	switch t := t.(type) {
	case Ref:
		if _, err := r.resolve(t); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return errs
	case *primitive, anyType:
		return errs
	}
	if seen[t] {
		return errs
	}
	seen[t] = true
	switch t := t.(type) {
	case *Tagged:
		errs = r.validate(name, t.Type, seen, errs)
	case *SequenceOf:
		errs = r.validate(name, t.Elem, seen, errs)
	case *Sequence:
		for _, f := range t.Fields {
			errs = r.validate(name+"."+f.Name, f.Type, seen, errs)
		}
	case *Choice:
		tags := make(map[z3950.Tag]string)
		for _, alt := range t.Alternatives {
			errs = r.validate(name+"."+alt.Name, alt.Type, seen, errs)
			tag, ok := r.tagOf(alt.Type)
			if !ok {
				continue
			}
			if other, dup := tags[tag]; dup {
				errs = append(errs, fmt.Errorf("%s: alternatives %s and %s share tag %s", name, other, alt.Name, tag))
			}
			tags[tag] = alt.Name
		}
	}
	return errs
}

// untag removes all [*Tagged] wrappers from t.
func untag(t Type) Type {
	for {
		tt, ok := t.(*Tagged)
		if !ok {
			return t
		}
		t = tt.Type
	}
}
