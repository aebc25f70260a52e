package evaluator

import (
	"fmt"
	"io"
	"os"

	"fortio.org/log"

	"corny/internal/ast"
	"corny/internal/gc"
	"corny/internal/object"
)

// TRUE and FALSE are singletons - we reuse these instead of creating new booleans
// They are never registered with the heap, so no sweep can free them.
var (
	TRUE  = &object.Boolean{Value: true}
	FALSE = &object.Boolean{Value: false}
	NULL  = &object.Null{}
)

// DefaultThreshold is the number of executed statements between collections.
const DefaultThreshold = 100

// Evaluator walks the AST. It owns the heap every runtime value is
// registered with and decides when to collect.
type Evaluator struct {
	heap       *gc.Heap
	threshold  int
	statements int // executed since the last collection
	out        io.Writer
	builtins   map[string]*object.Builtin
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithThreshold sets how many statements run between collections.
func WithThreshold(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.threshold = n
		}
	}
}

// WithHeap makes the evaluator allocate from h.
func WithHeap(h *gc.Heap) Option {
	return func(e *Evaluator) { e.heap = h }
}

// WithOutput sets where print writes.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) { e.out = w }
}

// New returns an evaluator with a fresh heap, writing to stdout.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		threshold: DefaultThreshold,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.heap == nil {
		e.heap = gc.NewHeap()
	}
	e.builtins = e.newBuiltins()
	return e
}

// Heap returns the collector owning this evaluator's values.
func (e *Evaluator) Heap() *gc.Heap {
	return e.heap
}

// outcomeKind says how evaluation of a node finished.
type outcomeKind uint8

const (
	normal    outcomeKind = iota // obj is the value
	returning                    // a return statement is unwinding with obj
	failed                       // obj is the *object.Error being propagated
)

type outcome struct {
	kind outcomeKind
	obj  object.Object
}

func (o outcome) abrupt() bool { return o.kind != normal }

// valueOf classifies obj: errors produced by builtins become failures.
func valueOf(obj object.Object) outcome {
	if isError(obj) {
		return outcome{kind: failed, obj: obj}
	}
	return outcome{kind: normal, obj: obj}
}

// Eval is the heart of the interpreter
// It takes an AST node and returns an Object
// A Program never returns while "returning": a top-level return just ends it.
func (e *Evaluator) Eval(node ast.Node, env *object.Environment) object.Object {
	if program, ok := node.(*ast.Program); ok {
		return e.evalProgram(program, env)
	}
	return e.eval(node, env).obj
}

// eval dispatches on the node kind. Unknown node kinds are a bug in the
// parser or evaluator, not a user error, so they panic.
func (e *Evaluator) eval(node ast.Node, env *object.Environment) outcome {
	switch node := node.(type) {
	case *ast.Program:
		return valueOf(e.evalProgram(node, env))

	case *ast.BlockStatement:
		return e.evalBlockStatement(node, env)

	case *ast.ExpressionStatement:
		return e.eval(node.Expression, env)

	case *ast.LetStatement:
		return e.evalLetStatement(node, env)

	case *ast.ReturnStatement:
		val := e.eval(node.ReturnValue, env)
		if val.abrupt() {
			return val
		}
		return outcome{kind: returning, obj: val.obj}

	// Expressions
	case *ast.NumberLiteral:
		return e.ok(&object.Number{Value: node.Value})

	case *ast.StringLiteral:
		return e.ok(&object.String{Value: node.Value})

	case *ast.Boolean:
		return outcome{obj: nativeBoolToBooleanObject(node.Value)}

	case *ast.NullLiteral:
		return outcome{obj: NULL}

	case *ast.Identifier:
		return e.evalIdentifier(node, env)

	case *ast.PrefixExpression:
		right := e.eval(node.Right, env)
		if right.abrupt() {
			return right
		}
		return e.evalPrefixExpression(node.Operator, right.obj)

	case *ast.InfixExpression:
		if node.Operator == "and" || node.Operator == "or" {
			return e.evalLogicalExpression(node, env)
		}
		left := e.eval(node.Left, env)
		if left.abrupt() {
			return left
		}
		right := e.eval(node.Right, env)
		if right.abrupt() {
			return right
		}
		return e.evalInfixExpression(node.Operator, left.obj, right.obj)

	case *ast.IfExpression:
		return e.evalIfExpression(node, env)

	case *ast.ArrayLiteral:
		elements, bad := e.evalExpressions(node.Elements, env)
		if bad != nil {
			return *bad
		}
		return e.ok(&object.Array{Elements: elements})

	case *ast.HashLiteral:
		return e.evalHashLiteral(node, env)

	case *ast.FunctionLiteral:
		return e.ok(&object.Function{Parameters: node.Parameters, Body: node.Body, Env: env})

	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	}

	panic(fmt.Sprintf("evaluator: unknown node type %T", node))
}

// ok registers a freshly allocated value and yields it.
func (e *Evaluator) ok(obj object.Managed) outcome {
	e.heap.Register(obj)
	return outcome{obj: obj}
}

// adopt registers values created outside the evaluator (builtin results).
func (e *Evaluator) adopt(obj object.Object) object.Object {
	if m, ok := obj.(object.Managed); ok && !e.heap.Contains(m) {
		e.heap.Register(m)
	}
	return obj
}

// newError creates a registered error and starts propagating it.
func (e *Evaluator) newError(format string, a ...interface{}) outcome {
	err := &object.Error{Message: fmt.Sprintf(format, a...)}
	e.heap.Register(err)
	return outcome{kind: failed, obj: err}
}

// isError checks if an object is an error (to stop propagation)
func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}

func nativeBoolToBooleanObject(input bool) *object.Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// maybeCollect runs a cycle once enough statements have executed. It is
// only called between top-level statements: intermediates of a statement
// still being evaluated are not roots and would be freed.
func (e *Evaluator) maybeCollect(env *object.Environment, result object.Object) {
	if e.statements < e.threshold {
		return
	}
	log.LogVf("gc: threshold %d reached after %d statements", e.threshold, e.statements)
	e.heap.Collect(env, result)
	e.statements = 0
}
