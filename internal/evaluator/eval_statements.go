package evaluator

import (
	"fortio.org/log"

	"corny/internal/ast"
	"corny/internal/object"
)

// evalProgram runs top-level statements. Collection happens here, between
// statements, with the statement's result as an extra root.
func (e *Evaluator) evalProgram(program *ast.Program, env *object.Environment) object.Object {
	log.LogVf("eval program (%d statements)", len(program.Statements))
	var result object.Object = NULL

	for _, statement := range program.Statements {
		e.statements++
		res := e.eval(statement, env)
		if res.abrupt() {
			// errors surface as values; a top-level return ends the program with its value
			return res.obj
		}
		result = res.obj
		e.maybeCollect(env, result)
	}

	return result
}

// evalBlockStatement runs statements in the enclosing environment: blocks do
// not open a scope. Errors and returns stop it and propagate unchanged.
func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, env *object.Environment) outcome {
	result := outcome{obj: NULL}

	for _, statement := range block.Statements {
		e.statements++
		result = e.eval(statement, env)
		if result.abrupt() {
			return result
		}
	}

	return result
}

func (e *Evaluator) evalLetStatement(node *ast.LetStatement, env *object.Environment) outcome {
	name := node.Name.Value
	val := e.eval(node.Value, env)
	if val.abrupt() {
		if val.kind == failed {
			log.LogVf("let %s not bound: %s", name, val.obj.Inspect())
		}
		return val
	}

	if _, reserved := e.builtins[name]; reserved {
		return e.newError("'%s' is a reserved word", name)
	}

	env.Set(name, val.obj)
	log.LogVf("eval let %s to %s", name, val.obj.Inspect())
	return val
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *object.Environment) outcome {
	if val, ok := env.Get(node.Value); ok {
		return outcome{obj: val}
	}
	if builtin, ok := e.builtins[node.Value]; ok {
		return outcome{obj: builtin}
	}
	return e.newError("variable not defined: %s", node.Value)
}

// evalIfExpression requires a Boolean condition; there is no truthiness.
func (e *Evaluator) evalIfExpression(ie *ast.IfExpression, env *object.Environment) outcome {
	condition := e.eval(ie.Condition, env)
	if condition.abrupt() {
		return condition
	}

	b, ok := condition.obj.(*object.Boolean)
	if !ok {
		return e.newError("invalid data type for if condition")
	}

	if b.Value {
		log.LogVf("if %s is true, picking consequence", ie.Condition.String())
		return e.evalBlockStatement(ie.Consequence, env)
	}
	if ie.Alternative != nil {
		log.LogVf("if %s is false, picking alternative", ie.Condition.String())
		return e.evalBlockStatement(ie.Alternative, env)
	}
	return outcome{obj: NULL}
}

func (e *Evaluator) evalHashLiteral(node *ast.HashLiteral, env *object.Environment) outcome {
	pairs := make(map[string]object.Object, len(node.Keys))

	for i, keyNode := range node.Keys {
		key := e.eval(keyNode, env)
		if key.abrupt() {
			return key
		}
		str, ok := key.obj.(*object.String)
		if !ok {
			return e.newError("invalid data type for key")
		}

		value := e.eval(node.Values[i], env)
		if value.abrupt() {
			return value
		}
		pairs[str.Value] = value.obj
	}

	return e.ok(&object.Hash{Pairs: pairs})
}
