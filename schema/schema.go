// Package schema validates declarative device configuration. A Schema is an
// ordered list of keys, each with a validator, and can be extended by
// platforms that build on a shared base schema.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Values is a raw or validated configuration record.
type Values map[string]any

// ValidationError reports which key failed and why.
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%v: %v", e.Path, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Validator checks a single value and returns its normalized form.
type Validator func(value any) (any, error)

// Key describes a configuration key and its default.
type Key struct {
	Name       string
	Default    any
	hasDefault bool
}

// Optional declares a key that may be omitted. When a default is given, it
// is validated and stored for missing keys.
func Optional(name string, def ...any) Key {
	k := Key{Name: name}
	if len(def) > 0 {
		k.Default = def[0]
		k.hasDefault = true
	}
	return k
}

type Field struct {
	Key       Key
	Validator Validator
}

type Schema struct {
	fields []Field
}

func New(fields ...Field) *Schema {
	return (&Schema{}).Extend(fields...)
}

// Extend returns a new schema with the given fields added. A field whose
// name already exists replaces the existing one in place.
func (s *Schema) Extend(fields ...Field) *Schema {
	extended := &Schema{fields: make([]Field, len(s.fields), len(s.fields)+len(fields))}
	copy(extended.fields, s.fields)

	for _, f := range fields {
		if i := extended.index(f.Key.Name); i >= 0 {
			extended.fields[i] = f
		} else {
			extended.fields = append(extended.fields, f)
		}
	}

	return extended
}

// Keys returns the names of all keys in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Key.Name
	}
	return keys
}

// Validate checks raw against the schema and returns a new record with
// defaults applied. Unknown keys are rejected.
func (s *Schema) Validate(raw Values) (Values, error) {
	validated := make(Values, len(s.fields))

	for _, f := range s.fields {
		value, present := raw[f.Key.Name]

		if !present {
			if !f.Key.hasDefault {
				continue
			}
			value = f.Key.Default
		}

		if f.Validator != nil {
			normalized, err := f.Validator(value)
			if err != nil {
				return nil, wrap(f.Key.Name, err)
			}
			value = normalized
		}

		validated[f.Key.Name] = value
	}

	var extra []string
	for name := range raw {
		if s.index(name) < 0 {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, &ValidationError{
			Path: extra[0],
			Msg: fmt.Sprintf("extra keys not allowed (%v), valid keys are %v",
				strings.Join(extra, ", "), strings.Join(s.Keys(), ", ")),
		}
	}

	return validated, nil
}

func (s *Schema) index(name string) int {
	for i, f := range s.fields {
		if f.Key.Name == name {
			return i
		}
	}
	return -1
}

func wrap(path string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		if verr.Path != "" {
			path = path + "." + verr.Path
		}
		return &ValidationError{Path: path, Msg: verr.Msg}
	}
	return &ValidationError{Path: path, Msg: err.Error()}
}

// Bool returns the boolean stored under key, or false.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// String returns the string stored under key, or "".
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}
