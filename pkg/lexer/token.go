package lexer

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF   TokenType = iota
	TokenError           // malformed lexeme

	// Literals
	TokenIdent  // main, foo, x
	TokenInt    // 42
	TokenFloat  // 3.14, .5, 1e10
	TokenBool   // true, false
	TokenString // "hello"

	// Keywords
	TokenKwBoolean // boolean
	TokenKwFloat   // float
	TokenKwInt     // int
	TokenKwVoid    // void
	TokenIf        // if
	TokenReturn    // return
	TokenPrintf    // printf

	// Reserved words the grammar never accepts
	TokenDo    // do
	TokenElse  // else
	TokenFor   // for
	TokenWhile // while

	// Operators
	TokenPlus   // +
	TokenMinus  // -
	TokenStar   // *
	TokenSlash  // /
	TokenAssign // =
	TokenEq     // ==
	TokenNe     // !=
	TokenLt     // <
	TokenLe     // <=
	TokenGt     // >
	TokenGe     // >=
	TokenAnd    // &&
	TokenOr     // ||

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenSemicolon // ;
	TokenComma     // ,
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenError:     "ERROR",
	TokenIdent:     "IDENT",
	TokenInt:       "INT",
	TokenFloat:     "FLOAT",
	TokenBool:      "BOOL",
	TokenString:    "STRING",
	TokenKwBoolean: "boolean",
	TokenKwFloat:   "float",
	TokenKwInt:     "int",
	TokenKwVoid:    "void",
	TokenIf:        "if",
	TokenReturn:    "return",
	TokenPrintf:    "printf",
	TokenDo:        "do",
	TokenElse:      "else",
	TokenFor:       "for",
	TokenWhile:     "while",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSlash:     "/",
	TokenAssign:    "=",
	TokenEq:        "==",
	TokenNe:        "!=",
	TokenLt:        "<",
	TokenLe:        "<=",
	TokenGt:        ">",
	TokenGe:        ">=",
	TokenAnd:       "&&",
	TokenOr:        "||",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenSemicolon: ";",
	TokenComma:     ",",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsType reports whether t is one of the four type keywords
func (t TokenType) IsType() bool {
	switch t {
	case TokenKwBoolean, TokenKwFloat, TokenKwInt, TokenKwVoid:
		return true
	}
	return false
}

// IsRelational reports whether t is a comparison operator
func (t TokenType) IsRelational() bool {
	switch t {
	case TokenEq, TokenNe, TokenLt, TokenLe, TokenGt, TokenGe:
		return true
	}
	return false
}

// IsAdditive reports whether t binds at the simpexpr level: + - ||
func (t TokenType) IsAdditive() bool {
	return t == TokenPlus || t == TokenMinus || t == TokenOr
}

// IsMultiplicative reports whether t binds at the term level: * / &&
func (t TokenType) IsMultiplicative() bool {
	return t == TokenStar || t == TokenSlash || t == TokenAnd
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
	Offset  int // byte offset of the first character
}

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"boolean": TokenKwBoolean,
	"float":   TokenKwFloat,
	"int":     TokenKwInt,
	"void":    TokenKwVoid,
	"if":      TokenIf,
	"return":  TokenReturn,
	"printf":  TokenPrintf,
	"do":      TokenDo,
	"else":    TokenElse,
	"for":     TokenFor,
	"while":   TokenWhile,
	"true":    TokenBool,
	"false":   TokenBool,
}

// LookupIdent returns the token type for an identifier (keyword, boolean constant or IDENT)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
