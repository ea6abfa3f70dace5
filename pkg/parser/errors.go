package parser

import (
	"fmt"

	"github.com/raymyers/c1parse/pkg/lexer"
)

// ErrorKind classifies why a parse stopped
type ErrorKind int

const (
	// KindUnexpectedToken is a token that no alternative of the current
	// production accepts.
	KindUnexpectedToken ErrorKind = iota
	// KindEmptyInput is a source text without a single token.
	KindEmptyInput
	// KindInvalidLexeme is a malformed lexeme reported by the lexer.
	KindInvalidLexeme
	// KindNestingTooDeep is nesting beyond the configured depth limit.
	KindNestingTooDeep
)

var kindNames = map[ErrorKind]string{
	KindUnexpectedToken: "unexpected token",
	KindEmptyInput:      "empty input",
	KindInvalidLexeme:   "invalid lexeme",
	KindNestingTooDeep:  "nesting too deep",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// SyntaxError is the first syntax violation found in a source text
type SyntaxError struct {
	Kind        ErrorKind
	Description string
	Lexeme      string
	Token       lexer.TokenType
	Line        int
	Column      int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s found: \"%s\" at line %d", e.Description, e.Lexeme, e.Line)
}
