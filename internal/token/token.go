package token

// TokenType is a string alias for token types
// Using string makes debugging easier (we can print "+" or "IDENT" instead of a number)
type TokenType string

// Token struct holds the type and literal value plus where it started in the source
// For example: Token{Type: NUMBER, Literal: "5"} or Token{Type: PLUS, Literal: "+"}
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// Token constants - these are the vocabulary of CornyLang
const (
	// Special
	ILLEGAL TokenType = "ILLEGAL" // Unknown character or unterminated string
	EOF     TokenType = "EOF"     // End of input, returned forever once reached

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // Variable names: x, y, foo_bar
	NUMBER TokenType = "NUMBER" // Numbers: 1, 42, 3.14
	STRING TokenType = "STRING" // Strings: "hello" or 'hello'

	// Operators
	ASSIGN     TokenType = "="
	PLUS       TokenType = "+"
	MINUS      TokenType = "-"
	ASTERISK   TokenType = "*"
	SLASH      TokenType = "/"
	CARET      TokenType = "^"
	NOT        TokenType = "!"
	LESS       TokenType = "<"
	LESS_EQ    TokenType = "<="
	GREATER    TokenType = ">"
	GREATER_EQ TokenType = ">="
	EQUAL      TokenType = "=="
	NOT_EQ     TokenType = "!="

	// Delimiters
	COMMA     TokenType = ","
	COLON     TokenType = ":"
	SEMICOLON TokenType = ";"
	DOT       TokenType = "."
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	FUNCTION TokenType = "FUNCTION"
	LET      TokenType = "LET"
	RETURN   TokenType = "RETURN"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	AND      TokenType = "AND"
	OR       TokenType = "OR"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NULL     TokenType = "NULL"
)

// keywords maps string identifiers to their token type
// This lets us distinguish between "let" (keyword) and "x" (identifier)
var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"and":    AND,
	"or":     OR,
	"true":   TRUE,
	"false":  FALSE,
	"null":   NULL,
}

// LookupIdent checks if an identifier is a keyword
// If "let" is in keywords map, returns LET token type
// Otherwise returns IDENT (it's a variable name)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
