// Package predicate implements the boolean rule language evaluated over
// board transitions: legality filters, win conditions and the enabling
// conditions of special moves.
package predicate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-variants-go/internal/chess"
)

// Node is the interface for all predicate nodes. The node kinds are fixed;
// the evaluator dispatches on the concrete type.
type Node interface {
	node()
	String() string
}

// StateTag names one side of a transition. The zero value is Next.
type StateTag int

const (
	Next StateTag = iota // board after the move
	This                 // board before the move
)

func (s StateTag) String() string {
	if s == This {
		return "this"
	}
	return "next"
}

// Op is a binary logical operator.
type Op int

const (
	OpAnd Op = iota
	OpOr
	OpXor
	OpImplies
	OpEquals
)

var opNames = map[Op]string{
	OpAnd:     "and",
	OpOr:      "or",
	OpXor:     "xor",
	OpImplies: "implies",
	OpEquals:  "equals",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// Cmp is a numeric comparison.
type Cmp int

const (
	LT Cmp = iota
	LE
	EQ
	NE
	GE
	GT
)

var cmpNames = map[Cmp]string{
	LT: "<",
	LE: "<=",
	EQ: "==",
	NE: "!=",
	GE: ">=",
	GT: ">",
}

func (c Cmp) String() string {
	if name, ok := cmpNames[c]; ok {
		return name
	}
	return "cmp(" + strconv.Itoa(int(c)) + ")"
}

func (c Cmp) apply(a, b int) bool {
	switch c {
	case LT:
		return a < b
	case LE:
		return a <= b
	case EQ:
		return a == b
	case NE:
		return a != b
	case GE:
		return a >= b
	case GT:
		return a > b
	}
	return false
}

// ClassKind selects how a Class matches board tokens.
type ClassKind int

const (
	ClassToken ClassKind = iota // exact token
	ClassAny                    // any piece of Side
	ClassRoyal                  // royal piece of Side
	ClassEmpty                  // unoccupied square
)

// Class identifies a set of occupants.
type Class struct {
	Kind  ClassKind
	Token string
	Side  chess.Side
}

// TokenClass matches exactly token.
func TokenClass(token string) Class { return Class{Kind: ClassToken, Token: token} }

// AnyOf matches every piece of side.
func AnyOf(side chess.Side) Class { return Class{Kind: ClassAny, Side: side} }

// RoyalOf matches the royal pieces of side.
func RoyalOf(side chess.Side) Class { return Class{Kind: ClassRoyal, Side: side} }

// EmptyClass matches unoccupied squares.
var EmptyClass = Class{Kind: ClassEmpty}

func (c Class) String() string {
	switch c.Kind {
	case ClassAny:
		return "any:" + c.Side.String()
	case ClassRoyal:
		return "royal:" + c.Side.String()
	case ClassEmpty:
		return "empty"
	}
	return c.Token
}

// Target is either a square coordinate or a class of occupants.
type Target struct {
	Coord string // set for a fixed square
	Class Class  // used when Coord is empty
}

func (t Target) String() string {
	if t.Coord != "" {
		return t.Coord
	}
	return t.Class.String()
}

// Const is a constant truth value.
type Const struct {
	Value bool
}

// Not negates P.
type Not struct {
	P Node
}

// Binary combines two predicates with Op.
type Binary struct {
	Op          Op
	Left, Right Node
}

// Attacked holds when some square identified by Target in State is the
// destination of a pseudo-legal move of By in State.
type Attacked struct {
	Target Target
	By     chess.Side
	State  StateTag
}

// Remaining compares the number of occupants matching Class in State
// against N.
type Remaining struct {
	Class Class
	Cmp   Cmp
	N     int
	State StateTag
}

// Captured holds when This has more occupants matching Class than Next.
type Captured struct {
	Class Class
}

// ForEvery holds when P holds after every pseudo-legal move of Side from
// the From state. It is vacuously true when Side has no moves.
type ForEvery struct {
	Side chess.Side
	From StateTag
	P    Node
}

// At holds when the occupant of Coord in State matches Class.
type At struct {
	Coord string
	Class Class
	State StateTag
}

// Unmoved holds when the piece on Coord in State has not moved.
type Unmoved struct {
	Coord string
	State StateTag
}

func (*Const) node()     {}
func (*Not) node()       {}
func (*Binary) node()    {}
func (*Attacked) node()  {}
func (*Remaining) node() {}
func (*Captured) node()  {}
func (*ForEvery) node()  {}
func (*At) node()        {}
func (*Unmoved) node()   {}

func (c *Const) String() string {
	if c.Value {
		return "true"
	}
	return "false"
}

func (n *Not) String() string {
	return "(not " + n.P.String() + ")"
}

func (b *Binary) String() string {
	return "(" + b.Op.String() + " " + b.Left.String() + " " + b.Right.String() + ")"
}

func (a *Attacked) String() string {
	return fmt.Sprintf("(attacked %s %s %s)", a.Target, a.By, a.State)
}

func (r *Remaining) String() string {
	return fmt.Sprintf("(remaining %s %s %d %s)", r.Class, r.Cmp, r.N, r.State)
}

func (c *Captured) String() string {
	return "(captured " + c.Class.String() + ")"
}

func (f *ForEvery) String() string {
	return fmt.Sprintf("(forall %s %s %s)", f.Side, f.From, f.P)
}

func (a *At) String() string {
	return fmt.Sprintf("(at %s %s %s)", a.Coord, a.Class, a.State)
}

func (u *Unmoved) String() string {
	return fmt.Sprintf("(unmoved %s %s)", u.Coord, u.State)
}

// Constructors for building trees in code.

var (
	True  Node = &Const{Value: true}
	False Node = &Const{Value: false}
)

func And(l, r Node) Node     { return &Binary{Op: OpAnd, Left: l, Right: r} }
func Or(l, r Node) Node      { return &Binary{Op: OpOr, Left: l, Right: r} }
func Xor(l, r Node) Node     { return &Binary{Op: OpXor, Left: l, Right: r} }
func Implies(l, r Node) Node { return &Binary{Op: OpImplies, Left: l, Right: r} }
func Equals(l, r Node) Node  { return &Binary{Op: OpEquals, Left: l, Right: r} }

// AllOf folds nodes with and. AllOf() is true.
func AllOf(nodes ...Node) Node {
	if len(nodes) == 0 {
		return True
	}
	out := nodes[0]
	for _, n := range nodes[1:] {
		out = And(out, n)
	}
	return out
}

// Depth returns the nesting depth of ForEvery nodes in n.
func Depth(n Node) int {
	switch n := n.(type) {
	case *Not:
		return Depth(n.P)
	case *Binary:
		return max(Depth(n.Left), Depth(n.Right))
	case *ForEvery:
		return 1 + Depth(n.P)
	}
	return 0
}

// isCoordinate reports whether s has the shape of a square name: one
// lower-case file letter followed by a rank number without leading zero.
func isCoordinate(s string) bool {
	if len(s) < 2 || s[0] < 'a' || s[0] > 'z' || s[1] == '0' {
		return false
	}
	return strings.Trim(s[1:], "0123456789") == ""
}
