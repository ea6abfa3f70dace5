// Package parser implements a recursive descent recognizer for C1
package parser

import (
	"fmt"
	"io"

	"github.com/raymyers/c1parse/pkg/lexer"
	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth bounds block and expression nesting when no limit is given
const DefaultMaxDepth = 1000

// Parser checks a C1 token stream against the grammar. A Parser is good for
// a single ParseProgram call.
type Parser struct {
	l        *lexer.Lexer
	log      logrus.FieldLogger
	maxDepth int
	depth    int
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger that receives debug output
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithMaxDepth sets the nesting limit. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

var discard = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// New creates a new Parser for the given lexer
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:        l,
		log:      discard,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reports whether source is a C1 program. The returned error, if any,
// is a *SyntaxError describing the first violation.
func Parse(source string, opts ...Option) error {
	return New(lexer.New(source), opts...).ParseProgram()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.l.CurrentToken() == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.l.PeekToken() == t
}

// expect consumes the current token if it is of type t
func (p *Parser) expect(t lexer.TokenType) error {
	if p.curTokenIs(t) {
		p.l.Eat()
		return nil
	}
	return p.fail("expected " + describe(t))
}

// fail builds an error at the current token
func (p *Parser) fail(description string) error {
	switch p.l.CurrentToken() {
	case lexer.TokenError:
		return p.failKind(KindInvalidLexeme, "invalid lexeme")
	case lexer.TokenEOF:
		return p.failKind(KindUnexpectedToken, "unexpected end of input, "+description)
	}
	return p.failKind(KindUnexpectedToken, description)
}

func (p *Parser) failKind(kind ErrorKind, description string) error {
	tok := p.l.Current()
	return &SyntaxError{
		Kind:        kind,
		Description: description,
		Lexeme:      tok.Literal,
		Token:       tok.Type,
		Line:        tok.Line,
		Column:      tok.Column,
	}
}

func describe(t lexer.TokenType) string {
	switch t {
	case lexer.TokenIdent:
		return "identifier"
	case lexer.TokenEOF:
		return "end of input"
	}
	return "'" + t.String() + "'"
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.failKind(KindNestingTooDeep, fmt.Sprintf("nesting deeper than %d", p.maxDepth))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// ParseProgram parses
//
//	program ::= functiondef+ EOF
func (p *Parser) ParseProgram() error {
	if p.curTokenIs(lexer.TokenEOF) {
		return p.failKind(KindEmptyInput, "empty file")
	}

	functions := 0
	for !p.curTokenIs(lexer.TokenEOF) {
		if err := p.parseFunctionDef(); err != nil {
			if se, ok := err.(*SyntaxError); ok {
				p.log.WithFields(logrus.Fields{
					"kind": se.Kind.String(),
					"line": se.Line,
				}).Debug("rejected")
			}
			return err
		}
		functions++
	}

	p.log.WithField("functions", functions).Debug("accepted")
	return nil
}

// functiondef ::= type ID "(" ")" "{" stmtlist "}"
func (p *Parser) parseFunctionDef() error {
	if err := p.parseType(); err != nil {
		return err
	}

	name, line := p.l.CurrentText(), p.l.CurrentLine()
	if err := p.expect(lexer.TokenIdent); err != nil {
		return err
	}
	p.log.WithFields(logrus.Fields{
		"function": name,
		"line":     line,
	}).Debug("function definition")

	// Parameter list (always empty in C1)
	if err := p.expect(lexer.TokenLParen); err != nil {
		return err
	}
	if err := p.expect(lexer.TokenRParen); err != nil {
		return err
	}

	if err := p.expect(lexer.TokenLBrace); err != nil {
		return err
	}
	if err := p.parseStatementList(); err != nil {
		return err
	}
	return p.expect(lexer.TokenRBrace)
}

// type ::= "boolean" | "float" | "int" | "void"
func (p *Parser) parseType() error {
	if !p.l.CurrentToken().IsType() {
		return p.fail("expected type")
	}
	p.l.Eat()
	return nil
}

// stmtlist ::= block*
//
// The list is always closed by "}", so it runs until one is seen. A missing
// "}" ends in a statement error at end of input.
func (p *Parser) parseStatementList() error {
	for !p.curTokenIs(lexer.TokenRBrace) {
		if err := p.parseBlock(); err != nil {
			return err
		}
	}
	return nil
}

// block ::= "{" stmtlist "}" | statement
func (p *Parser) parseBlock() error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	if !p.curTokenIs(lexer.TokenLBrace) {
		return p.parseStatement()
	}
	p.l.Eat()
	if err := p.parseStatementList(); err != nil {
		return err
	}
	return p.expect(lexer.TokenRBrace)
}

// statement ::= ifstmt
//
//	| "return" assignment? ";"
//	| "printf" "(" assignment ")" ";"
//	| ID "=" assignment ";"
//	| ID "(" ")" ";"
func (p *Parser) parseStatement() error {
	switch p.l.CurrentToken() {
	case lexer.TokenIf:
		return p.parseIfStatement()
	case lexer.TokenReturn:
		if err := p.parseReturnStatement(); err != nil {
			return err
		}
	case lexer.TokenPrintf:
		if err := p.parsePrintf(); err != nil {
			return err
		}
	case lexer.TokenIdent:
		switch p.l.PeekToken() {
		case lexer.TokenAssign:
			if err := p.parseStatAssignment(); err != nil {
				return err
			}
		case lexer.TokenLParen:
			if err := p.parseFunctionCall(); err != nil {
				return err
			}
		default:
			return p.fail("expected assignment or function call")
		}
	default:
		return p.fail("expected statement")
	}
	return p.expect(lexer.TokenSemicolon)
}

// ifstmt ::= "if" "(" assignment ")" block
func (p *Parser) parseIfStatement() error {
	if err := p.expect(lexer.TokenIf); err != nil {
		return err
	}
	if err := p.expect(lexer.TokenLParen); err != nil {
		return err
	}
	if err := p.parseAssignment(); err != nil {
		return err
	}
	if err := p.expect(lexer.TokenRParen); err != nil {
		return err
	}
	return p.parseBlock()
}

// "return" assignment?
//
// The statement is always closed by ";", which tells whether the optional
// assignment is present.
func (p *Parser) parseReturnStatement() error {
	if err := p.expect(lexer.TokenReturn); err != nil {
		return err
	}
	if p.curTokenIs(lexer.TokenSemicolon) {
		return nil
	}
	return p.parseAssignment()
}

// "printf" "(" assignment ")"
func (p *Parser) parsePrintf() error {
	if err := p.expect(lexer.TokenPrintf); err != nil {
		return err
	}
	if err := p.expect(lexer.TokenLParen); err != nil {
		return err
	}
	if err := p.parseAssignment(); err != nil {
		return err
	}
	return p.expect(lexer.TokenRParen)
}

// ID "=" assignment
func (p *Parser) parseStatAssignment() error {
	if err := p.expect(lexer.TokenIdent); err != nil {
		return err
	}
	if err := p.expect(lexer.TokenAssign); err != nil {
		return err
	}
	return p.parseAssignment()
}

// functioncall ::= ID "(" ")"
func (p *Parser) parseFunctionCall() error {
	if err := p.expect(lexer.TokenIdent); err != nil {
		return err
	}
	if err := p.expect(lexer.TokenLParen); err != nil {
		return err
	}
	return p.expect(lexer.TokenRParen)
}

// assignment ::= ID "=" assignment | expr
//
// An expr may itself start with an ID, so the "=" after it decides.
func (p *Parser) parseAssignment() error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	if p.curTokenIs(lexer.TokenIdent) && p.peekTokenIs(lexer.TokenAssign) {
		return p.parseStatAssignment()
	}
	return p.parseExpr()
}

// expr ::= simpexpr ( relop simpexpr )?
//
// At most one comparison: a < b < c stops before the second "<".
func (p *Parser) parseExpr() error {
	if err := p.parseSimpExpr(); err != nil {
		return err
	}
	if p.l.CurrentToken().IsRelational() {
		p.l.Eat()
		return p.parseSimpExpr()
	}
	return nil
}

// simpexpr ::= "-"? term ( ( "+" | "-" | "||" ) term )*
func (p *Parser) parseSimpExpr() error {
	if p.curTokenIs(lexer.TokenMinus) {
		p.l.Eat()
	}
	if err := p.parseTerm(); err != nil {
		return err
	}
	for p.l.CurrentToken().IsAdditive() {
		p.l.Eat()
		if err := p.parseTerm(); err != nil {
			return err
		}
	}
	return nil
}

// term ::= factor ( ( "*" | "/" | "&&" ) factor )*
func (p *Parser) parseTerm() error {
	if err := p.parseFactor(); err != nil {
		return err
	}
	for p.l.CurrentToken().IsMultiplicative() {
		p.l.Eat()
		if err := p.parseFactor(); err != nil {
			return err
		}
	}
	return nil
}

// factor ::= INT | FLOAT | BOOL | functioncall | ID | "(" assignment ")"
func (p *Parser) parseFactor() error {
	switch p.l.CurrentToken() {
	case lexer.TokenInt, lexer.TokenFloat, lexer.TokenBool:
		p.l.Eat()
		return nil
	case lexer.TokenIdent:
		if p.peekTokenIs(lexer.TokenLParen) {
			return p.parseFunctionCall()
		}
		p.l.Eat()
		return nil
	case lexer.TokenLParen:
		p.l.Eat()
		if err := p.parseAssignment(); err != nil {
			return err
		}
		return p.expect(lexer.TokenRParen)
	default:
		return p.fail("expected expression")
	}
}
