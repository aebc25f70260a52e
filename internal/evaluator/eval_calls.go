package evaluator

import (
	"math"

	"fortio.org/log"

	"corny/internal/ast"
	"corny/internal/object"
	"corny/internal/token"
)

// evalExpressions evaluates exps left to right. On the first abrupt
// outcome it stops and returns it as bad.
func (e *Evaluator) evalExpressions(exps []ast.Expression, env *object.Environment) ([]object.Object, *outcome) {
	result := make([]object.Object, 0, len(exps))

	for _, exp := range exps {
		evaluated := e.eval(exp, env)
		if evaluated.abrupt() {
			return nil, &evaluated
		}
		result = append(result, evaluated.obj)
	}

	return result, nil
}

// evalCallExpression covers f(args), arr[i], str[i] and hash[key]: which one
// it is depends only on the callee's runtime type.
func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *object.Environment) outcome {
	if node.Token.Type == token.DOT {
		return e.evalMethodCall(node, env)
	}

	callee := e.eval(node.Function, env)
	if callee.abrupt() {
		return callee
	}

	args, bad := e.evalExpressions(node.Arguments, env)
	if bad != nil {
		return *bad
	}

	switch fn := callee.obj.(type) {
	case *object.Function:
		return e.applyFunction(fn, args)
	case *object.Builtin:
		log.LogVf("call builtin %s with %d args", fn.Name, len(args))
		return valueOf(e.adopt(fn.Fn(args...)))
	case *object.Array:
		return e.evalArrayAccess(fn, args)
	case *object.String:
		return e.evalStringAccess(fn, args)
	case *object.Hash:
		return e.evalHashAccess(fn, args)
	default:
		return e.newError("invalid callable object")
	}
}

// evalMethodCall runs x.name(args) as name(x, args) where name must be a
// builtin. Bindings in env never shadow the builtin here, and the receiver
// is not rebound to the result.
func (e *Evaluator) evalMethodCall(node *ast.CallExpression, env *object.Environment) outcome {
	name := node.Function.String()
	builtin, found := e.builtins[name]
	if !found {
		return e.newError("invalid method: %s", name)
	}

	args, bad := e.evalExpressions(node.Arguments, env)
	if bad != nil {
		return *bad
	}

	log.LogVf("call builtin %s as method with %d args", name, len(args))
	return valueOf(e.adopt(builtin.Fn(args...)))
}

// applyFunction binds args in a new scope enclosed by the closure and runs
// the body there. A return unwinds exactly to here.
func (e *Evaluator) applyFunction(fn *object.Function, args []object.Object) outcome {
	if len(args) != len(fn.Parameters) {
		return e.newError("unexpected arguments, got: %d want: %d", len(args), len(fn.Parameters))
	}

	extendedEnv := object.NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Parameters {
		extendedEnv.Set(param.Value, args[i])
	}

	result := e.evalBlockStatement(fn.Body, extendedEnv)
	if result.kind == returning {
		return outcome{obj: result.obj}
	}
	return result
}

// subscript validates the single Number argument of an array or string
// access and converts it to an offset in [0, length).
func (e *Evaluator) subscript(args []object.Object, length int) (int, *outcome) {
	if len(args) != 1 {
		bad := e.newError("unexpected arguments, got: %d want: 1", len(args))
		return 0, &bad
	}
	n, ok := args[0].(*object.Number)
	if !ok || n.Value != math.Trunc(n.Value) {
		bad := e.newError("invalid subscript reference")
		return 0, &bad
	}
	if n.Value < 0 || n.Value >= float64(length) {
		bad := e.newError("index out of bounds")
		return 0, &bad
	}
	return int(n.Value), nil
}

// evalArrayAccess yields the element itself, not a copy.
func (e *Evaluator) evalArrayAccess(arr *object.Array, args []object.Object) outcome {
	idx, bad := e.subscript(args, len(arr.Elements))
	if bad != nil {
		return *bad
	}
	return outcome{obj: arr.Elements[idx]}
}

// evalStringAccess yields a new one-byte string.
func (e *Evaluator) evalStringAccess(str *object.String, args []object.Object) outcome {
	idx, bad := e.subscript(args, len(str.Value))
	if bad != nil {
		return *bad
	}
	return e.ok(&object.String{Value: str.Value[idx : idx+1]})
}

// evalHashAccess yields null for a missing key.
func (e *Evaluator) evalHashAccess(hash *object.Hash, args []object.Object) outcome {
	if len(args) != 1 {
		return e.newError("unexpected arguments, got: %d want: 1", len(args))
	}
	key, ok := args[0].(*object.String)
	if !ok {
		return e.newError("invalid subscript reference")
	}
	if val, ok := hash.Pairs[key.Value]; ok {
		return outcome{obj: val}
	}
	return outcome{obj: NULL}
}
