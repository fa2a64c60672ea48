// Package codegen collects the statements produced while turning validated
// device configuration into device objects.
package codegen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

var ErrDuplicateID = errors.New("duplicate id")

// Object is a handle to a generated device object.
type Object struct {
	ID    string
	Class string
}

// Call builds a method call statement on the object.
func (o *Object) Call(method string, args ...any) Statement {
	return Statement{Object: o.ID, Method: method, Args: args}
}

// Statement is a single generated line. A statement without a method
// constructs the object.
type Statement struct {
	Object string
	Class  string
	Method string
	Args   []any
}

func (s Statement) String() string {
	if s.Method == "" {
		return fmt.Sprintf("auto *%v = new %v();", s.Object, s.Class)
	}

	args := make([]string, len(s.Args))
	for i, arg := range s.Args {
		args[i] = literal(arg)
	}

	return fmt.Sprintf("%v->%v(%v);", s.Object, s.Method, strings.Join(args, ", "))
}

func literal(arg any) string {
	switch v := arg.(type) {
	case bool:
		return strconv.FormatBool(v)
	case string:
		return strconv.Quote(v)
	case float32:
		return floatLiteral(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		return floatLiteral(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func floatLiteral(s string) string {
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "f"
}

// Buffer is the generation output shared by all platforms of one build.
type Buffer struct {
	mutex      sync.Mutex
	objects    map[string]*Object
	statements []Statement
}

func NewBuffer() *Buffer {
	return &Buffer{
		objects: map[string]*Object{},
	}
}

// New declares a new object and emits its construction.
func (b *Buffer) New(id string, class string) (*Object, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if _, ok := b.objects[id]; ok {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateID, id)
	}

	return b.declare(id, class), nil
}

// NewUnique declares a new object under the first free id of the form
// base_1, base_2, ...
func (b *Buffer) NewUnique(base string, class string) *Object {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for n := 1; ; n++ {
		id := fmt.Sprintf("%v_%d", base, n)
		if _, ok := b.objects[id]; !ok {
			return b.declare(id, class)
		}
	}
}

func (b *Buffer) declare(id string, class string) *Object {
	obj := &Object{ID: id, Class: class}
	b.objects[id] = obj
	b.statements = append(b.statements, Statement{Object: id, Class: class})
	return obj
}

// Add appends a statement to the output.
func (b *Buffer) Add(s Statement) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.statements = append(b.statements, s)
}

// Statements returns a copy of everything emitted so far.
func (b *Buffer) Statements() []Statement {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return append([]Statement(nil), b.statements...)
}

func (b *Buffer) String() string {
	var sb strings.Builder
	for _, s := range b.Statements() {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
