package object

import (
	"strconv"

	"corny/internal/ast"
)

// ObjectType identifies what kind of value we have
type ObjectType string

const (
	NUMBER_OBJ   ObjectType = "NUMBER"
	STRING_OBJ   ObjectType = "STRING"
	BOOLEAN_OBJ  ObjectType = "BOOLEAN"
	NULL_OBJ     ObjectType = "NULL"
	ARRAY_OBJ    ObjectType = "ARRAY"
	HASH_OBJ     ObjectType = "HASH"
	FUNCTION_OBJ ObjectType = "FUNCTION"
	BUILTIN_OBJ  ObjectType = "BUILTIN"
	ERROR_OBJ    ObjectType = "ERROR"
)

// Object is the interface for all runtime values
// Every value in our language implements this
type Object interface {
	Type() ObjectType
	Inspect() string // String representation for printing
}

// Handle names a slot in the collector's arena. Gen tells apart successive
// occupants of the same slot; the zero Handle means "not managed".
type Handle struct {
	Slot uint32
	Gen  uint32
}

// IsZero reports whether the handle was never assigned.
func (h Handle) IsZero() bool { return h.Gen == 0 }

// Header is embedded by every value the collector can own.
type Header struct {
	handle Handle
}

func (h *Header) Handle() Handle      { return h.handle }
func (h *Header) SetHandle(hd Handle) { h.handle = hd }

// Managed is a heap value that can be registered with the collector.
// Booleans, null and builtins are process-wide and never Managed.
type Managed interface {
	Object
	Handle() Handle
	SetHandle(Handle)
}

// Number is the only numeric type: a 64-bit float
type Number struct {
	Header
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return FormatNumber(n.Value) }

// FormatNumber renders the shortest decimal that round-trips: 7, 3.14, -0.5
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// String represents text values.
type String struct {
	Header
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return "\"" + s.Value + "\"" }

// Boolean represents true or false
// Only the two evaluator singletons ever exist at runtime.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

// Null represents the absence of value
// There's only one null value, but we use a struct for the interface
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

// Array is an ordered sequence of references. Elements are shared, never copied.
type Array struct {
	Header
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string  { return "array" }

// Hash maps string keys to values; iteration order carries no meaning.
type Hash struct {
	Header
	Pairs map[string]Object
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }
func (h *Hash) Inspect() string  { return "hash" }

// Function represents a user-defined function
// It has parameters, a body (AST block), and the environment it was defined in (closure)
type Function struct {
	Header
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return "function" }

type BuiltinFunction func(args ...Object) Object

// Builtin is a native function. Builtins live for the whole process.
type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin" }

// Error represents runtime errors (type mismatches, unknown identifiers, ...)
// It is an ordinary value: it propagates upward and is printed, never thrown.
type Error struct {
	Header
	Message string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Message }
