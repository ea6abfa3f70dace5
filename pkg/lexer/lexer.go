// Package lexer turns C1 source text into tokens and exposes them through a
// cursor with one token of lookahead.
package lexer

// Lexer is a token cursor over C1 source code. It always holds the current
// (not yet consumed) token and the token after it.
type Lexer struct {
	s    *Scanner
	cur  Token
	peek Token
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{s: NewScanner(input)}
	// Read two tokens to initialize cur and peek
	l.cur = l.s.NextToken()
	l.peek = l.s.NextToken()
	return l
}

// Current returns the token at the cursor
func (l *Lexer) Current() Token {
	return l.cur
}

// CurrentToken returns the type of the token at the cursor
func (l *Lexer) CurrentToken() TokenType {
	return l.cur.Type
}

// PeekToken returns the type of the token after the current one. It is
// TokenEOF when the current token is the last one.
func (l *Lexer) PeekToken() TokenType {
	return l.peek.Type
}

// CurrentText returns the lexeme of the current token
func (l *Lexer) CurrentText() string {
	return l.cur.Literal
}

// CurrentLine returns the 1-based line of the current token
func (l *Lexer) CurrentLine() int {
	return l.cur.Line
}

// Eat consumes the current token. At end of input it does nothing.
func (l *Lexer) Eat() {
	if l.cur.Type == TokenEOF {
		return
	}
	l.cur = l.peek
	if l.peek.Type != TokenEOF {
		l.peek = l.s.NextToken()
	}
}

// Tokenize returns every token of input up to and including the first
// TokenEOF or TokenError.
func Tokenize(input string) []Token {
	s := NewScanner(input)
	var toks []Token
	for {
		tok := s.NextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			return toks
		}
	}
}
