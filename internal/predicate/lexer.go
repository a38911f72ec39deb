package predicate

// TokenType represents the type of a lexical token.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	LPAREN // (
	RPAREN // )
	ATOM   // keywords, sides, classes, squares, comparators, numbers
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	LPAREN:  "'('",
	RPAREN:  "')'",
	ATOM:    "ATOM",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int // byte offset in input
}

// Lexer splits predicate text into parentheses and atoms.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Pos: l.pos}
	switch {
	case l.pos >= len(l.input):
		tok.Type = EOF
	case l.ch == '(':
		tok.Type = LPAREN
		tok.Literal = "("
		l.readChar()
	case l.ch == ')':
		tok.Type = RPAREN
		tok.Literal = ")"
		l.readChar()
	case l.ch < ' ' || l.ch == 0x7f:
		tok.Type = ILLEGAL
		tok.Literal = string(l.ch)
		l.readChar()
	default:
		tok.Type = ATOM
		tok.Literal = l.readAtom()
	}
	return tok
}

func (l *Lexer) readAtom() string {
	start := l.pos
	for l.pos < len(l.input) && !isWhitespace(l.ch) && l.ch != '(' && l.ch != ')' && l.ch >= ' ' && l.ch != 0x7f {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
