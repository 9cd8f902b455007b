// Package schema describes the parameters a command accepts and validates a
// decoded parameter bag against that description.
//
// A schema is declared once, at registration time:
//
//	schema.New(
//		schema.String("name", schema.Default("World"), schema.Min(1), schema.Max(64)),
//		schema.Boolean("detailed", schema.Default(false)),
//	)
//
// Validation never panics or returns an error; it reports a Result carrying
// either the coerced Values or the list of field-level Issues.
package schema

import (
	"fmt"
	"regexp"
	"slices"
)

// Type names the kind of value a field holds.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeEnum    Type = "enum"
)

// Field declares one parameter.
type Field struct {
	Name        string
	Type        Type
	Description string
	Required    bool
	Default     any
	HasDefault  bool
	// Min and Max bound string length, numeric value or array length.
	Min *float64
	Max *float64
	// Enum lists the allowed values of an enum field, or of each item of an
	// array field.
	Enum    []string
	Pattern string

	pattern *regexp.Regexp
}

// Option configures a Field.
type Option func(*Field)

// Optional marks the field as not required.
func Optional() Option {
	return func(f *Field) { f.Required = false }
}

// Default supplies the value used when the field is absent. It implies Optional.
func Default(v any) Option {
	return func(f *Field) {
		f.Default = v
		f.HasDefault = true
		f.Required = false
	}
}

// Min sets the lower bound.
func Min(n float64) Option {
	return func(f *Field) { f.Min = &n }
}

// Max sets the upper bound.
func Max(n float64) Option {
	return func(f *Field) { f.Max = &n }
}

// OneOf restricts the allowed values.
func OneOf(values ...string) Option {
	return func(f *Field) { f.Enum = slices.Clone(values) }
}

// Pattern requires string values to match the regular expression expr.
func Pattern(expr string) Option {
	return func(f *Field) { f.Pattern = expr }
}

// Description documents the field for the command catalog.
func Description(text string) Option {
	return func(f *Field) { f.Description = text }
}

func newField(name string, t Type, opts []Option) Field {
	f := Field{Name: name, Type: t, Required: true}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// String declares a required string field unless opts say otherwise.
func String(name string, opts ...Option) Field { return newField(name, TypeString, opts) }

// Number declares a float field. Query strings are parsed as numbers.
func Number(name string, opts ...Option) Field { return newField(name, TypeNumber, opts) }

// Integer declares a whole-number field.
func Integer(name string, opts ...Option) Field { return newField(name, TypeInteger, opts) }

// Boolean declares a boolean field.
func Boolean(name string, opts ...Option) Field { return newField(name, TypeBoolean, opts) }

// Array declares a list of strings. A single value is accepted as a
// one-element list.
func Array(name string, opts ...Option) Field { return newField(name, TypeArray, opts) }

// Enum declares a string field restricted to values.
func Enum(name string, values []string, opts ...Option) Field {
	return newField(name, TypeEnum, append([]Option{OneOf(values...)}, opts...))
}

// Object is a schema over a flat parameter bag. Keys not declared by any
// field are dropped from the validated Values.
type Object struct {
	fields []Field
}

// New builds an Object. It panics on duplicate field names or an invalid
// pattern, both of which are programming errors caught at startup.
func New(fields ...Field) *Object {
	seen := make(map[string]struct{}, len(fields))
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			panic(fmt.Sprintf("schema: duplicate field %q", f.Name))
		}
		seen[f.Name] = struct{}{}
		if f.Type == TypeEnum && len(f.Enum) == 0 {
			panic(fmt.Sprintf("schema: enum field %q has no values", f.Name))
		}
		if f.Pattern != "" {
			f.pattern = regexp.MustCompile(f.Pattern)
		}
		out = append(out, f)
	}
	return &Object{fields: out}
}

// Fields returns the declared fields in declaration order.
func (o *Object) Fields() []Field {
	return slices.Clone(o.fields)
}
