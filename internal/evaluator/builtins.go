package evaluator

import (
	"fmt"
	"strings"

	"corny/internal/object"
)

// newBuiltins builds the builtin table. Builtins are looked up after the
// environment chain and their names cannot be bound with let.
func (e *Evaluator) newBuiltins() map[string]*object.Builtin {
	return map[string]*object.Builtin{
		"size":  {Name: "size", Fn: builtinSize},
		"type":  {Name: "type", Fn: builtinType},
		"push":  {Name: "push", Fn: builtinPush},
		"print": {Name: "print", Fn: e.builtinPrint},
	}
}

func wrongArgCount(got, want int) *object.Error {
	return &object.Error{Message: fmt.Sprintf("wrong number of arguments. got=%d, want=%d", got, want)}
}

// size(x) is the length of a string (bytes), array (elements) or hash (keys).
func builtinSize(args ...object.Object) object.Object {
	if len(args) != 1 {
		return wrongArgCount(len(args), 1)
	}
	switch arg := args[0].(type) {
	case *object.String:
		return &object.Number{Value: float64(len(arg.Value))}
	case *object.Array:
		return &object.Number{Value: float64(len(arg.Elements))}
	case *object.Hash:
		return &object.Number{Value: float64(len(arg.Pairs))}
	default:
		return &object.Error{Message: fmt.Sprintf("argument to `size` not supported, got=%s", args[0].Type())}
	}
}

// type(x) is the name of x's runtime type, e.g. "NUMBER".
func builtinType(args ...object.Object) object.Object {
	if len(args) != 1 {
		return wrongArgCount(len(args), 1)
	}
	return &object.String{Value: string(args[0].Type())}
}

// push(arr, v...) returns a new array; arr itself is left untouched.
// Without values it appends a single null.
func builtinPush(args ...object.Object) object.Object {
	if len(args) == 0 {
		return wrongArgCount(0, 1)
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return &object.Error{Message: fmt.Sprintf("argument to `push` must be ARRAY, got=%s", args[0].Type())}
	}

	elements := make([]object.Object, 0, len(arr.Elements)+len(args))
	elements = append(elements, arr.Elements...)
	if len(args) == 1 {
		elements = append(elements, NULL)
	} else {
		elements = append(elements, args[1:]...)
	}
	return &object.Array{Elements: elements}
}

// print writes its arguments separated by spaces and ends the line.
// Strings are written raw, everything else in its inspect form.
func (e *Evaluator) builtinPrint(args ...object.Object) object.Object {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if s, ok := arg.(*object.String); ok {
			parts = append(parts, s.Value)
			continue
		}
		parts = append(parts, arg.Inspect())
	}
	if _, err := fmt.Fprintln(e.out, strings.Join(parts, " ")); err != nil {
		return &object.Error{Message: fmt.Sprintf("print: %v", err)}
	}
	return NULL
}
