package lexer

// Scanner splits C1 source text into raw tokens
type Scanner struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int
	column  int
}

// NewScanner creates a new Scanner for the given input
func NewScanner(input string) *Scanner {
	s := &Scanner{input: input, line: 1, column: 0}
	s.readChar()
	return s
}

func (s *Scanner) readChar() {
	if s.readPos >= len(s.input) {
		if s.readPos == len(s.input) {
			// step past the last character once so EOF gets its own column
			s.readPos++
			s.column++
		}
		s.ch = 0
		s.pos = len(s.input)
		return
	}
	s.ch = s.input[s.readPos]
	s.pos = s.readPos
	s.readPos++
	s.column++

	if s.ch == '\n' {
		s.line++
		s.column = 0
	}
}

func (s *Scanner) peekChar() byte {
	return s.peekCharAt(1)
}

// peekCharAt returns the byte n positions past the current one
func (s *Scanner) peekCharAt(n int) byte {
	if s.pos+n >= len(s.input) {
		return 0
	}
	return s.input[s.pos+n]
}

func (s *Scanner) eof() bool {
	return s.pos >= len(s.input)
}

// NextToken returns the next token from the input. Once the input is
// exhausted every call returns a TokenEOF token.
func (s *Scanner) NextToken() Token {
	if bad, ok := s.skipTrivia(); !ok {
		return bad
	}

	tok := Token{Line: s.line, Column: s.column, Offset: s.pos}
	if s.eof() {
		tok.Type = TokenEOF
		return tok
	}

	switch s.ch {
	case '+':
		tok.Type = TokenPlus
	case '-':
		tok.Type = TokenMinus
	case '*':
		tok.Type = TokenStar
	case '/':
		tok.Type = TokenSlash
	case '(':
		tok.Type = TokenLParen
	case ')':
		tok.Type = TokenRParen
	case '{':
		tok.Type = TokenLBrace
	case '}':
		tok.Type = TokenRBrace
	case ';':
		tok.Type = TokenSemicolon
	case ',':
		tok.Type = TokenComma
	case '=':
		tok.Type = s.pair('=', TokenEq, TokenAssign)
	case '<':
		tok.Type = s.pair('=', TokenLe, TokenLt)
	case '>':
		tok.Type = s.pair('=', TokenGe, TokenGt)
	case '!':
		tok.Type = s.pair('=', TokenNe, TokenError)
	case '&':
		tok.Type = s.pair('&', TokenAnd, TokenError)
	case '|':
		tok.Type = s.pair('|', TokenOr, TokenError)
	case '"':
		tok.Type = s.readString()
		tok.Literal = s.input[tok.Offset:s.pos]
		return tok
	case '.':
		if !isDigit(s.peekChar()) {
			tok.Type = TokenError
			break
		}
		tok.Type = s.readNumber()
		tok.Literal = s.input[tok.Offset:s.pos]
		return tok
	default:
		if isLetter(s.ch) {
			tok.Literal = s.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return tok
		} else if isDigit(s.ch) {
			tok.Type = s.readNumber()
			tok.Literal = s.input[tok.Offset:s.pos]
			return tok
		}
		tok.Type = TokenError
	}

	s.readChar()
	tok.Literal = s.input[tok.Offset:s.pos]
	return tok
}

// pair consumes next and returns two if the character after the current one
// is next, otherwise it returns one without consuming anything extra.
func (s *Scanner) pair(next byte, two, one TokenType) TokenType {
	if s.peekChar() == next {
		s.readChar()
		return two
	}
	return one
}

func (s *Scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.readChar()
	}
}

// skipTrivia skips whitespace and comments. If the input ends inside a block
// comment it returns an error token for the comment opener and false.
func (s *Scanner) skipTrivia() (Token, bool) {
	for {
		s.skipWhitespace()
		if s.ch != '/' || s.eof() {
			return Token{}, true
		}
		switch s.peekChar() {
		case '/':
			// Single-line comment
			for s.ch != '\n' && !s.eof() {
				s.readChar()
			}
		case '*':
			start := Token{Type: TokenError, Literal: "/*", Line: s.line, Column: s.column, Offset: s.pos}
			s.readChar() // consume /
			s.readChar() // consume *
			for {
				if s.eof() {
					return start, false
				}
				if s.ch == '*' && s.peekChar() == '/' {
					s.readChar() // consume *
					s.readChar() // consume /
					break
				}
				s.readChar()
			}
		default:
			return Token{}, true
		}
	}
}

func (s *Scanner) readIdentifier() string {
	pos := s.pos
	for isLetter(s.ch) || isDigit(s.ch) {
		s.readChar()
	}
	return s.input[pos:s.pos]
}

// readNumber reads an integer or float constant. The current character is
// either a digit or a '.' followed by a digit.
func (s *Scanner) readNumber() TokenType {
	typ := TokenInt
	for isDigit(s.ch) {
		s.readChar()
	}
	if s.ch == '.' && isDigit(s.peekChar()) {
		typ = TokenFloat
		s.readChar() // consume .
		for isDigit(s.ch) {
			s.readChar()
		}
	}
	if s.exponentAhead() {
		typ = TokenFloat
		s.readChar() // consume e
		if s.ch == '+' || s.ch == '-' {
			s.readChar()
		}
		for isDigit(s.ch) {
			s.readChar()
		}
	}
	return typ
}

func (s *Scanner) exponentAhead() bool {
	if s.ch != 'e' && s.ch != 'E' {
		return false
	}
	next := s.peekChar()
	if next == '+' || next == '-' {
		return isDigit(s.peekCharAt(2))
	}
	return isDigit(next)
}

// readString reads a string constant including its quotes. A string that
// reaches a newline or the end of input is malformed.
func (s *Scanner) readString() TokenType {
	s.readChar() // consume opening quote
	for s.ch != '"' {
		if s.ch == '\n' || s.eof() {
			return TokenError
		}
		s.readChar()
	}
	s.readChar() // consume closing quote
	return TokenString
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
