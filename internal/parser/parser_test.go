package parser

import (
	"testing"

	"corny/internal/ast"
	"corny/internal/lexer"
)

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		expected string
	}{
		{"let x = 5;", "x", "5"},
		{"let y = true", "y", "true"},
		{"let foo_bar = 'hi';", "foo_bar", `"hi"`},
		{"let f = fn(a, b) { a + b };", "f", "fn(a, b) { (a + b) }"},
	}

	for _, tt := range tests {
		program := parseOK(t, tt.input)
		if len(program.Statements) != 1 {
			t.Fatalf("%q: expected 1 statement, got=%d", tt.input, len(program.Statements))
		}
		stmt, ok := program.Statements[0].(*ast.LetStatement)
		if !ok {
			t.Fatalf("%q: expected let statement, got=%T", tt.input, program.Statements[0])
		}
		if stmt.Name.Value != tt.name {
			t.Fatalf("%q: wrong let name. got=%q want=%q", tt.input, stmt.Name.Value, tt.name)
		}
		if got := stmt.Value.String(); got != tt.expected {
			t.Fatalf("%q: wrong value. got=%q want=%q", tt.input, got, tt.expected)
		}
	}
}

func TestReturnStatement(t *testing.T) {
	program := parseOK(t, "return 1 + 2;")
	stmt, ok := program.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected return statement, got=%T", program.Statements[0])
	}
	if got := stmt.ReturnValue.String(); got != "(1 + 2)" {
		t.Fatalf("wrong return value. got=%q", got)
	}
}

func TestSemicolonsAreOptional(t *testing.T) {
	program := parseOK(t, "let a = 1 let b = 2\na + b")
	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got=%d", len(program.Statements))
	}
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 >= 4 != 3 <= 4", "((5 >= 4) != (3 <= 4))"},
		{"a or b and c", "(a or (b and c))"},
		{"a and b or c and d", "((a and b) or (c and d))"},
		{"a == b and c != d", "((a == b) and (c != d))"},
		{"a or b or c", "((a or b) or c)"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * ([1, 2, 3, 4][(b * c)])) * d)"},
		{"f(x)[0]", "(f(x)[0])"},
		{"f(3)(4)", "f(3)(4)"},
		{"m['k'](1)", "(m[\"k\"])(1)"},
		{"-f(1)", "(-f(1))"},
	}

	for _, tt := range tests {
		program := parseOK(t, tt.input)
		if got := program.String(); got != tt.expected {
			t.Fatalf("%q: got=%q want=%q", tt.input, got, tt.expected)
		}
	}
}

func TestIndexUsesCallNode(t *testing.T) {
	program := parseOK(t, "arr[1 + 1]")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected call expression, got=%T", stmt.Expression)
	}
	if call.Token.Literal != "[" || len(call.Arguments) != 1 {
		t.Fatalf("unexpected index node: token=%q args=%d", call.Token.Literal, len(call.Arguments))
	}
	if call.Function.String() != "arr" {
		t.Fatalf("wrong callee. got=%q", call.Function.String())
	}
}

func TestMethodCallParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"xs.push(4)", "xs.push(4)"},
		{"xs.size()", "xs.size()"},
		{"'ab'.size() + 1", `("ab".size() + 1)`},
		{"-xs.size()", "(-xs.size())"},
		{"[1, 2].push(3).size()", "[1, 2].push(3).size()"},
		{"h['k'].type()", `(h["k"]).type()`},
		{"3.size()", "3.size()"},
	}

	for _, tt := range tests {
		program := parseOK(t, tt.input)
		if got := program.String(); got != tt.expected {
			t.Fatalf("%q: got=%q want=%q", tt.input, got, tt.expected)
		}
	}

	program := parseOK(t, "xs.push(1, 2)")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected call expression, got=%T", stmt.Expression)
	}
	if call.Token.Literal != "." || call.Function.String() != "push" {
		t.Fatalf("unexpected method node: token=%q callee=%q", call.Token.Literal, call.Function.String())
	}
	if len(call.Arguments) != 3 || call.Arguments[0].String() != "xs" {
		t.Fatalf("receiver should be the first argument, got=%q", call.String())
	}
}

func TestIfExpression(t *testing.T) {
	program := parseOK(t, "if (x < y) { x } else { y }")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	exp, ok := stmt.Expression.(*ast.IfExpression)
	if !ok {
		t.Fatalf("expected if expression, got=%T", stmt.Expression)
	}
	if exp.Condition.String() != "(x < y)" {
		t.Fatalf("wrong condition. got=%q", exp.Condition.String())
	}
	if len(exp.Consequence.Statements) != 1 || exp.Alternative == nil || len(exp.Alternative.Statements) != 1 {
		t.Fatalf("unexpected branches: %s", exp.String())
	}

	program = parseOK(t, "let v = if (ok) { 1 };")
	let := program.Statements[0].(*ast.LetStatement)
	ifx, ok := let.Value.(*ast.IfExpression)
	if !ok {
		t.Fatalf("if should be usable as a value, got=%T", let.Value)
	}
	if ifx.Alternative != nil {
		t.Fatalf("expected no else branch")
	}
}

func TestFunctionLiteralParameters(t *testing.T) {
	tests := []struct {
		input  string
		params []string
	}{
		{"fn() {};", []string{}},
		{"fn(x) {};", []string{"x"}},
		{"fn(x, y, z) {};", []string{"x", "y", "z"}},
	}

	for _, tt := range tests {
		program := parseOK(t, tt.input)
		stmt := program.Statements[0].(*ast.ExpressionStatement)
		fn, ok := stmt.Expression.(*ast.FunctionLiteral)
		if !ok {
			t.Fatalf("%q: expected function literal, got=%T", tt.input, stmt.Expression)
		}
		if len(fn.Parameters) != len(tt.params) {
			t.Fatalf("%q: wrong param count. got=%d want=%d", tt.input, len(fn.Parameters), len(tt.params))
		}
		for i, name := range tt.params {
			if fn.Parameters[i].Value != name {
				t.Fatalf("%q: param %d got=%q want=%q", tt.input, i, fn.Parameters[i].Value, name)
			}
		}
	}
}

func TestHashLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		pairs    int
	}{
		{"{}", "{}", 0},
		{`{"one": 1, "two": 2}`, `{"one": 1, "two": 2}`, 2},
		{`{"a" + "b": 1 + 1, k: v}`, `{("a" + "b"): (1 + 1), k: v}`, 2},
	}

	for _, tt := range tests {
		program := parseOK(t, tt.input)
		stmt := program.Statements[0].(*ast.ExpressionStatement)
		hash, ok := stmt.Expression.(*ast.HashLiteral)
		if !ok {
			t.Fatalf("%q: expected hash literal, got=%T", tt.input, stmt.Expression)
		}
		if len(hash.Keys) != tt.pairs || len(hash.Values) != tt.pairs {
			t.Fatalf("%q: wrong pair count. keys=%d values=%d want=%d", tt.input, len(hash.Keys), len(hash.Values), tt.pairs)
		}
		if got := hash.String(); got != tt.expected {
			t.Fatalf("%q: got=%q want=%q", tt.input, got, tt.expected)
		}
	}
}

func TestLiteralParsing(t *testing.T) {
	program := parseOK(t, `3.14; "abc"; 'z'; null; true; false; [];`)
	if len(program.Statements) != 7 {
		t.Fatalf("expected 7 statements, got=%d", len(program.Statements))
	}
	num := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.NumberLiteral)
	if num.Value != 3.14 {
		t.Fatalf("wrong number value. got=%v", num.Value)
	}
}

func TestSyntaxErrorsStopParsing(t *testing.T) {
	tests := []struct {
		input   string
		message string
		line    int
		column  int
	}{
		{"let = 5;", "expected next token to be IDENT, got = instead", 1, 5},
		{"let x 5;", "expected next token to be =, got NUMBER instead", 1, 7},
		{"(1 + 2", "expected next token to be ), got EOF instead", 1, 7},
		{"1 +", "unexpected end of input", 1, 4},
		{"fn(x, 1) {}", "expected next token to be IDENT, got NUMBER instead", 1, 7},
		{"if (x) { 1", "unterminated block, expected }", 1, 11},
		{"arr[]", "expected index expression", 1, 5},
		{"2 ^ 3", "unexpected operator ^", 1, 3},
		{"x = 3", "unexpected operator =", 1, 3},
		{"^ 3", "no prefix parse function for ^ found", 1, 1},
		{"a.b", "expected next token to be (, got EOF instead", 1, 4},
		{"a.1()", "expected next token to be IDENT, got NUMBER instead", 1, 3},
		{"xs.push(1", "expected next token to be ), got EOF instead", 1, 10},
		{`{"x": 1,}`, "no prefix parse function for } found", 1, 9},
		{`{,}`, "no prefix parse function for , found", 1, 2},
		{`{"a" 1}`, "expected next token to be :, got NUMBER instead", 1, 6},
		{"let x = 1;\nlet y = ;", "no prefix parse function for ; found", 2, 9},
	}

	for _, tt := range tests {
		p := New(lexer.New(tt.input))
		p.ParseProgram()
		errs := p.Errors()
		if len(errs) != 1 {
			t.Fatalf("%q: expected exactly one error, got=%v", tt.input, errs)
		}
		e := errs[0]
		if e.Message != tt.message || e.Line != tt.line || e.Column != tt.column {
			t.Fatalf("%q: got=(%q,%d:%d) want=(%q,%d:%d)", tt.input, e.Message, e.Line, e.Column, tt.message, tt.line, tt.column)
		}
		if p.Err() == nil {
			t.Fatalf("%q: Err() should be non-nil", tt.input)
		}
	}
}

func TestLexerErrorsSurfaceThroughParser(t *testing.T) {
	tests := []struct {
		input   string
		message string
		line    int
		column  int
	}{
		{"let x = 1 @ 2;", "unknown character: '@'", 1, 11},
		{"@", "unknown character: '@'", 1, 1},
		{"let @", "unknown character: '@'", 1, 5},
		{"let s = 'abc", "unterminated string", 1, 9},
	}

	for _, tt := range tests {
		p := New(lexer.New(tt.input))
		p.ParseProgram()
		errs := p.Errors()
		if len(errs) != 1 {
			t.Fatalf("%q: expected exactly one error, got=%v", tt.input, errs)
		}
		e := errs[0]
		if e.Message != tt.message || e.Line != tt.line || e.Column != tt.column {
			t.Fatalf("%q: got=(%q,%d:%d) want=(%q,%d:%d)", tt.input, e.Message, e.Line, e.Column, tt.message, tt.line, tt.column)
		}
	}
}

func TestCommentsIgnoredByParser(t *testing.T) {
	input := `
let x = 1; // inline comment
// full line
x + 1;
`
	program := parseOK(t, input)
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got=%d", len(program.Statements))
	}
}

func TestEmptyProgram(t *testing.T) {
	program := parseOK(t, "   // nothing here\n")
	if len(program.Statements) != 0 {
		t.Fatalf("expected no statements, got=%d", len(program.Statements))
	}
}

func parseOK(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	checkNoParserErrors(t, p)
	return program
}

func checkNoParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	if len(p.Errors()) == 0 {
		return
	}
	t.Fatalf("parser errors: %v", p.Errors())
}
