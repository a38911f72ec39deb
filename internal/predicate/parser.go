package predicate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/errors"
)

// Parser parses predicate text into a tree.
type Parser struct {
	input   string
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{input: input, lexer: NewLexer(input)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// Parse parses a single predicate expression.
func Parse(input string) (Node, error) {
	return NewParser(input).ParseExpression()
}

// MustParse is like Parse but panics on error. It is intended for
// predicates compiled into the program.
func MustParse(input string) Node {
	n, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("predicate.MustParse(%q): %v", input, err))
	}
	return n
}

// ParseExpression parses one expression and requires the input to end.
func (p *Parser) ParseExpression() (Node, error) {
	if p.current.Type == EOF {
		return nil, p.errorf("expression", "end of input")
	}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.current.Type != EOF {
		return nil, p.unexpected("end of input")
	}
	return n, nil
}

func (p *Parser) parseExpr() (Node, error) {
	switch p.current.Type {
	case ATOM:
		switch p.current.Literal {
		case "true":
			p.nextToken()
			return &Const{Value: true}, nil
		case "false":
			p.nextToken()
			return &Const{Value: false}, nil
		}
		return nil, p.unexpected("true, false or '('")
	case LPAREN:
		return p.parseParenExpr()
	default:
		return nil, p.unexpected("expression")
	}
}

func (p *Parser) parseParenExpr() (Node, error) {
	p.nextToken() // skip '('

	if p.current.Type != ATOM {
		return nil, p.unexpected("operator")
	}
	op := p.current.Literal
	p.nextToken()

	var (
		n   Node
		err error
	)
	switch op {
	case "not":
		n, err = p.parseNot()
	case "and", "or", "xor", "implies", "equals":
		n, err = p.parseBinary(op)
	case "attacked":
		n, err = p.parseAttacked()
	case "remaining":
		n, err = p.parseRemaining()
	case "captured":
		n, err = p.parseCaptured()
	case "forall":
		n, err = p.parseForEvery()
	case "at":
		n, err = p.parseAt()
	case "unmoved":
		n, err = p.parseUnmoved()
	default:
		return nil, &errors.ParseError{
			Err:   errors.ErrPredicateSyntax,
			Input: p.input,
			Pos:   p.current.Pos,
			Got:   fmt.Sprintf("operator %q", op),
		}
	}
	if err != nil {
		return nil, err
	}

	if p.current.Type != RPAREN {
		return nil, p.unexpected("')'")
	}
	p.nextToken() // skip ')'
	return n, nil
}

func (p *Parser) parseNot() (Node, error) {
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Not{P: inner}, nil
}

func (p *Parser) parseBinary(op string) (Node, error) {
	var kind Op
	for k, name := range opNames {
		if name == op {
			kind = k
		}
	}
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: kind, Left: left, Right: right}, nil
}

func (p *Parser) parseAttacked() (Node, error) {
	lit, err := p.atom("square or class")
	if err != nil {
		return nil, err
	}
	var target Target
	if isCoordinate(lit) {
		target.Coord = lit
	} else if target.Class, err = p.class(lit); err != nil {
		return nil, err
	}
	by, err := p.side()
	if err != nil {
		return nil, err
	}
	return &Attacked{Target: target, By: by, State: p.optionalState()}, nil
}

func (p *Parser) parseRemaining() (Node, error) {
	lit, err := p.atom("class")
	if err != nil {
		return nil, err
	}
	class, err := p.class(lit)
	if err != nil {
		return nil, err
	}

	pos := p.current.Pos
	lit, err = p.atom("comparison")
	if err != nil {
		return nil, err
	}
	cmp, ok := parseCmp(lit)
	if !ok {
		return nil, &errors.ParseError{Err: errors.ErrPredicateSyntax, Input: p.input, Pos: pos, Expected: "comparison", Got: strconv.Quote(lit)}
	}

	pos = p.current.Pos
	lit, err = p.atom("count")
	if err != nil {
		return nil, err
	}
	n, convErr := strconv.Atoi(lit)
	if convErr != nil || n < 0 {
		return nil, &errors.ParseError{Err: errors.ErrPredicateSyntax, Input: p.input, Pos: pos, Expected: "count", Got: strconv.Quote(lit)}
	}
	return &Remaining{Class: class, Cmp: cmp, N: n, State: p.optionalState()}, nil
}

func (p *Parser) parseCaptured() (Node, error) {
	lit, err := p.atom("class")
	if err != nil {
		return nil, err
	}
	class, err := p.class(lit)
	if err != nil {
		return nil, err
	}
	return &Captured{Class: class}, nil
}

func (p *Parser) parseForEvery() (Node, error) {
	side, err := p.side()
	if err != nil {
		return nil, err
	}
	from := p.optionalState()
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ForEvery{Side: side, From: from, P: inner}, nil
}

func (p *Parser) parseAt() (Node, error) {
	coord, err := p.square()
	if err != nil {
		return nil, err
	}
	lit, err := p.atom("class")
	if err != nil {
		return nil, err
	}
	class, err := p.class(lit)
	if err != nil {
		return nil, err
	}
	return &At{Coord: coord, Class: class, State: p.optionalState()}, nil
}

func (p *Parser) parseUnmoved() (Node, error) {
	coord, err := p.square()
	if err != nil {
		return nil, err
	}
	return &Unmoved{Coord: coord, State: p.optionalState()}, nil
}

// atom consumes an ATOM token.
func (p *Parser) atom(expected string) (string, error) {
	if p.current.Type != ATOM {
		return "", p.unexpected(expected)
	}
	lit := p.current.Literal
	p.nextToken()
	return lit, nil
}

func (p *Parser) side() (chess.Side, error) {
	pos := p.current.Pos
	lit, err := p.atom("side")
	if err != nil {
		return chess.None, err
	}
	switch lit {
	case "white":
		return chess.White, nil
	case "black":
		return chess.Black, nil
	case "none":
		return chess.None, nil
	}
	return chess.None, &errors.ParseError{Err: errors.ErrPredicateSyntax, Input: p.input, Pos: pos, Expected: "side", Got: strconv.Quote(lit)}
}

func (p *Parser) square() (string, error) {
	pos := p.current.Pos
	lit, err := p.atom("square")
	if err != nil {
		return "", err
	}
	if !isCoordinate(lit) {
		return "", &errors.ParseError{Err: errors.ErrPredicateSyntax, Input: p.input, Pos: pos, Expected: "square", Got: strconv.Quote(lit)}
	}
	return lit, nil
}

// class interprets an already consumed atom as a Class.
func (p *Parser) class(lit string) (Class, error) {
	if lit == "empty" {
		return EmptyClass, nil
	}
	kind, rest, found := strings.Cut(lit, ":")
	if !found || (kind != "any" && kind != "royal") {
		return TokenClass(lit), nil
	}
	var side chess.Side
	switch rest {
	case "white":
		side = chess.White
	case "black":
		side = chess.Black
	case "none":
		side = chess.None
	default:
		return Class{}, &errors.ParseError{Err: errors.ErrPredicateSyntax, Input: p.input, Pos: -1, Expected: "side after " + kind + ":", Got: strconv.Quote(rest)}
	}
	if kind == "any" {
		return AnyOf(side), nil
	}
	return RoyalOf(side), nil
}

func (p *Parser) optionalState() StateTag {
	if p.current.Type != ATOM {
		return Next
	}
	switch p.current.Literal {
	case "this":
		p.nextToken()
		return This
	case "next":
		p.nextToken()
		return Next
	}
	return Next
}

func parseCmp(s string) (Cmp, bool) {
	for c, name := range cmpNames {
		if name == s {
			return c, true
		}
	}
	return 0, false
}

func (p *Parser) unexpected(expected string) error {
	got := p.current.Type.String()
	if p.current.Type == ATOM || p.current.Type == ILLEGAL {
		got = strconv.Quote(p.current.Literal)
	}
	return p.errorf(expected, got)
}

func (p *Parser) errorf(expected, got string) error {
	return &errors.ParseError{
		Err:      errors.ErrPredicateSyntax,
		Input:    p.input,
		Pos:      p.current.Pos,
		Expected: expected,
		Got:      got,
	}
}
