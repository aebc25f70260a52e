package lexer

import (
	"fmt"

	"corny/internal/token"
)

// Error is a fatal lexical error. Lexing never resumes past one.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (at %d:%d)", e.Message, e.Line, e.Column)
}

// Lexer holds the state while tokenizing input
// It reads character by character, like a tape reader
type Lexer struct {
	input        string // The source code
	position     int    // Current position in input (points to current char)
	readPosition int    // Current reading position (after current char)
	ch           byte   // Current character under examination
	line         int    // Line of ch, 1-based
	column       int    // Column of ch, 1-based

	err *Error // First fatal error, nil while lexing is healthy
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar() // Initialize with first character
	return l
}

// Err returns the fatal error that stopped lexing, if any.
func (l *Lexer) Err() *Error {
	return l.err
}

// readChar advances to the next character
// Think of it like moving the tape forward one position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	// If we've reached the end, set ch to 0 (NUL byte, signifies EOF)
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar looks at the next character without consuming it
// Used for two-character tokens like == and != and for comments
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken returns the next token from input
// Once the end (or a fatal error) is reached every call returns EOF.
func (l *Lexer) NextToken() token.Token {
	if l.err != nil {
		return token.Token{Type: token.EOF, Line: l.line, Column: l.column}
	}

	l.skipIgnored()

	line, col := l.line, l.column
	var tok token.Token

	switch l.ch {
	case '=':
		tok = l.twoCharToken(token.ASSIGN, token.EQUAL)
	case '!':
		tok = l.twoCharToken(token.NOT, token.NOT_EQ)
	case '<':
		tok = l.twoCharToken(token.LESS, token.LESS_EQ)
	case '>':
		tok = l.twoCharToken(token.GREATER, token.GREATER_EQ)
	case '+':
		tok = newToken(token.PLUS, l.ch)
	case '-':
		tok = newToken(token.MINUS, l.ch)
	case '*':
		tok = newToken(token.ASTERISK, l.ch)
	case '/':
		tok = newToken(token.SLASH, l.ch)
	case '^':
		tok = newToken(token.CARET, l.ch)
	case ',':
		tok = newToken(token.COMMA, l.ch)
	case ':':
		tok = newToken(token.COLON, l.ch)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch)
	case '.':
		tok = newToken(token.DOT, l.ch)
	case '(':
		tok = newToken(token.LPAREN, l.ch)
	case ')':
		tok = newToken(token.RPAREN, l.ch)
	case '{':
		tok = newToken(token.LBRACE, l.ch)
	case '}':
		tok = newToken(token.RBRACE, l.ch)
	case '[':
		tok = newToken(token.LBRACKET, l.ch)
	case ']':
		tok = newToken(token.RBRACKET, l.ch)
	case '"', '\'':
		lit, ok := l.readString()
		if !ok {
			l.fail("unterminated string", line, col)
			return token.Token{Type: token.ILLEGAL, Literal: lit, Line: line, Column: col}
		}
		return token.Token{Type: token.STRING, Literal: lit, Line: line, Column: col}
	case 0:
		return token.Token{Type: token.EOF, Line: line, Column: col}
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(lit), Literal: lit, Line: line, Column: col}
		}
		if isDigit(l.ch) {
			return token.Token{Type: token.NUMBER, Literal: l.readNumber(), Line: line, Column: col}
		}
		tok = newToken(token.ILLEGAL, l.ch)
		l.fail(fmt.Sprintf("unknown character: %q", l.ch), line, col)
	}

	tok.Line, tok.Column = line, col
	l.readChar() // Advance to next character for next call
	return tok
}

// twoCharToken merges a following '=' into the two-character form.
func (l *Lexer) twoCharToken(single, double token.TokenType) token.Token {
	if l.peekChar() == '=' {
		ch := l.ch
		l.readChar()
		return token.Token{Type: double, Literal: string(ch) + string(l.ch)}
	}
	return newToken(single, l.ch)
}

func (l *Lexer) fail(msg string, line, col int) {
	if l.err == nil {
		l.err = &Error{Message: msg, Line: line, Column: col}
	}
}
