package evaluator

import (
	"corny/internal/ast"
	"corny/internal/object"
)

func (e *Evaluator) evalPrefixExpression(operator string, right object.Object) outcome {
	switch operator {
	case "!":
		b, ok := right.(*object.Boolean)
		if !ok {
			return e.newError("invalid data type for !: %s", right.Type())
		}
		return outcome{obj: nativeBoolToBooleanObject(!b.Value)}
	case "-":
		n, ok := right.(*object.Number)
		if !ok {
			return e.newError("invalid data type for -: %s", right.Type())
		}
		return e.ok(&object.Number{Value: -n.Value})
	default:
		return e.newError("invalid operator: %s", operator)
	}
}

// evalLogicalExpression short-circuits: the right operand is only evaluated
// when the left one does not decide the result.
func (e *Evaluator) evalLogicalExpression(node *ast.InfixExpression, env *object.Environment) outcome {
	left := e.eval(node.Left, env)
	if left.abrupt() {
		return left
	}
	l, ok := left.obj.(*object.Boolean)
	if !ok {
		return e.newError("invalid left hand type operand")
	}

	switch node.Operator {
	case "and":
		if !l.Value {
			return outcome{obj: FALSE}
		}
	case "or":
		if l.Value {
			return outcome{obj: TRUE}
		}
	default:
		return e.newError("invalid operator for logical expression: %s", node.Operator)
	}

	right := e.eval(node.Right, env)
	if right.abrupt() {
		return right
	}
	r, ok := right.obj.(*object.Boolean)
	if !ok {
		return e.newError("invalid right hand type operand")
	}
	return outcome{obj: r}
}

// evalInfixExpression dispatches on the operand types. A Boolean on the
// left is coerced to 1/0 (together with a Boolean right operand) so that
// boolean arithmetic and comparison go through the Number rules. The
// reverse pairing (Number, Boolean) is not defined.
func (e *Evaluator) evalInfixExpression(operator string, left, right object.Object) outcome {
	switch l := left.(type) {
	case *object.Number:
		if r, ok := right.(*object.Number); ok {
			return e.evalNumberInfixExpression(operator, l.Value, r.Value)
		}
	case *object.String:
		if r, ok := right.(*object.String); ok {
			return e.evalStringInfixExpression(operator, l, r)
		}
	case *object.Boolean:
		switch r := right.(type) {
		case *object.Number:
			return e.evalNumberInfixExpression(operator, boolToNumber(l), r.Value)
		case *object.Boolean:
			return e.evalNumberInfixExpression(operator, boolToNumber(l), boolToNumber(r))
		}
	}
	return e.newError("incompatible data types: %s, %s", left.Type(), right.Type())
}

func boolToNumber(b *object.Boolean) float64 {
	if b.Value {
		return 1
	}
	return 0
}

func (e *Evaluator) evalNumberInfixExpression(operator string, l, r float64) outcome {
	switch operator {
	case "+":
		return e.ok(&object.Number{Value: l + r})
	case "-":
		return e.ok(&object.Number{Value: l - r})
	case "*":
		return e.ok(&object.Number{Value: l * r})
	case "/":
		// Any non-positive divisor is rejected, not only zero.
		if r <= 0 {
			return e.newError("division by zero")
		}
		return e.ok(&object.Number{Value: l / r})
	case "<":
		return outcome{obj: nativeBoolToBooleanObject(l < r)}
	case "<=":
		return outcome{obj: nativeBoolToBooleanObject(l <= r)}
	case ">":
		return outcome{obj: nativeBoolToBooleanObject(l > r)}
	case ">=":
		return outcome{obj: nativeBoolToBooleanObject(l >= r)}
	case "==":
		return outcome{obj: nativeBoolToBooleanObject(l == r)}
	case "!=":
		return outcome{obj: nativeBoolToBooleanObject(l != r)}
	default:
		return e.newError("invalid operator: %s", operator)
	}
}

// Strings only support concatenation.
func (e *Evaluator) evalStringInfixExpression(operator string, l, r *object.String) outcome {
	if operator != "+" {
		return e.newError("invalid operator: %s", operator)
	}
	return e.ok(&object.String{Value: l.Value + r.Value})
}
