package lexer

import "corny/internal/token"

func (l *Lexer) skipIgnored() {
	for {
		l.skipWhitespace()

		// Line comment: // ... (the trailing newline goes with it)
		if l.ch == '/' && l.peekChar() == '/' {
			l.skipLineComment()
			continue
		}

		return
	}
}

// skipWhitespace ignores space, tab and newline. A carriage return is
// skipped as well so CRLF sources lex like LF ones.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == '\n' {
		l.readChar()
	}
}

// readIdentifier reads an identifier.
// First char is guaranteed to be a letter by caller.
// Subsequent chars may include digits and underscores.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads digits with an optional fractional part.
// A dot is only part of the number when a digit follows it, so "3." is
// NUMBER "3" and the dot is lexed on the next call.
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

// readString reads up to the delimiter that opened the string.
// ok is false when the input ends first.
func (l *Lexer) readString() (lit string, ok bool) {
	delim := l.ch
	l.readChar()
	position := l.position
	for l.ch != delim && l.ch != 0 {
		l.readChar()
	}
	lit = l.input[position:l.position]
	if l.ch != delim {
		return lit, false
	}
	l.readChar()
	return lit, true
}

// isLetter checks if ch is an ASCII letter
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if ch is 0-9
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// isIdentChar allows foo_bar2 after the first letter
func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

// newToken is a helper to create single-character tokens
func newToken(tokenType token.TokenType, ch byte) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch)}
}
