package directive

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"strings"
)

// Kind is the kind of a meta item.
type Kind int

const (
	KindInvalid Kind = iota
	KindWord
	KindList
	KindLiteral
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindList:
		return "list"
	case KindLiteral:
		return "literal"
	default:
		return "invalid"
	}
}

// Well-known directive names.
const (
	// Repr names the representation directive of an enum.
	Repr = "repr"
	// Uncon names the generation directive.
	Uncon = "uncon"
	// Other names the nested list of additional source types inside Uncon.
	Other = "other"

	// CommentPrefix starts a comment directive in Go source.
	CommentPrefix = "//uncon:"
)

// ErrEmpty is returned when parsing an empty directive.
var ErrEmpty = errors.New("empty directive")

// Item is a single meta item.
type Item struct {
	Kind Kind
	// Name is set for words and lists.
	Name string
	// Args holds the nested items of a list.
	Args []Item
	// Value is the source text of a literal.
	Value string
}

// Word creates a word item.
func Word(name string) Item {
	return Item{Kind: KindWord, Name: name}
}

// List creates a list item.
func List(name string, args ...Item) Item {
	return Item{Kind: KindList, Name: name, Args: args}
}

// Literal creates a literal item.
func Literal(value string) Item {
	return Item{Kind: KindLiteral, Value: value}
}

// IsWord returns true if the item is a plain identifier.
func (i Item) IsWord() bool {
	return i.Kind == KindWord
}

// IsList returns true if the item is a list named name.
func (i Item) IsList(name string) bool {
	return i.Kind == KindList && i.Name == name
}

// String formats the item back into directive syntax.
func (i Item) String() string {
	switch i.Kind {
	case KindWord:
		return i.Name
	case KindList:
		args := make([]string, 0, len(i.Args))
		for _, a := range i.Args {
			args = append(args, a.String())
		}

		return i.Name + "(" + strings.Join(args, ", ") + ")"
	case KindLiteral:
		return i.Value
	default:
		return "<invalid>"
	}
}

// Lists returns the arguments of every list item named name, in order.
func Lists(items []Item, name string) [][]Item {
	var out [][]Item

	for _, item := range items {
		if item.IsList(name) {
			out = append(out, item.Args)
		}
	}

	return out
}

// Parse parses a single directive such as `other(uint16, uint32)`.
func Parse(src string) (Item, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Item{}, ErrEmpty
	}

	expr, err := parser.ParseExpr(src)
	if err != nil {
		return Item{}, fmt.Errorf("parsing directive %q: %w", src, err)
	}

	item, err := fromExpr(expr)
	if err != nil {
		return Item{}, fmt.Errorf("parsing directive %q: %w", src, err)
	}

	return item, nil
}

// ParseAll parses each directive in srcs.
func ParseAll(srcs []string) ([]Item, error) {
	items := make([]Item, 0, len(srcs))

	for _, src := range srcs {
		item, err := Parse(src)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// FromComment parses a `//uncon:` comment line. ok is false when the comment is not a
// directive.
func FromComment(text string) (item Item, ok bool, err error) {
	rest, found := strings.CutPrefix(text, CommentPrefix)
	if !found {
		return Item{}, false, nil
	}

	item, err = Parse(rest)
	if err != nil {
		return Item{}, true, err
	}

	if item.IsList(Repr) {
		return item, true, nil
	}

	return List(Uncon, item), true, nil
}

func fromExpr(expr ast.Expr) (Item, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		return Word(e.Name), nil

	case *ast.ParenExpr:
		return fromExpr(e.X)

	case *ast.CallExpr:
		fun, ok := e.Fun.(*ast.Ident)
		if !ok {
			return Item{}, fmt.Errorf("list name must be an identifier, got %s", types.ExprString(e.Fun))
		}

		var args []Item
		for _, arg := range e.Args {
			item, err := fromExpr(arg)
			if err != nil {
				return Item{}, err
			}

			args = append(args, item)
		}

		return List(fun.Name, args...), nil

	default:
		return Literal(types.ExprString(expr)), nil
	}
}
