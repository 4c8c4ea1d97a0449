package document

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/net/html"
)

// DefaultSelectors are the elements treated as readable blocks.
const DefaultSelectors = "p, pre, h1, h2, h3, h4, h5, h6, li"

var (
	selectorLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[,.*]`},
	})

	selectorParser = participle.MustBuild[SelectorList](
		participle.Lexer(selectorLexer),
		participle.Elide("Whitespace"),
	)
)

// SelectorList is a comma separated list of simple selectors,
// e.g. "p, pre, h1, li, div.note".
type SelectorList struct {
	Selectors []*Selector `parser:"@@ ( ',' @@ )*"`
}

// Selector matches an element by tag name and classes.
type Selector struct {
	Tag     string   `parser:"@( Ident | '*' )"`
	Classes []string `parser:"( '.' @Ident )*"`
}

// ParseSelectors parses a selector list.
func ParseSelectors(s string) (*SelectorList, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty selector list")
	}
	list, err := selectorParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parsing selectors %q: %w", s, err)
	}
	for _, sel := range list.Selectors {
		sel.Tag = strings.ToLower(sel.Tag)
	}
	return list, nil
}

// Matches reports whether any selector in the list matches element n.
func (l *SelectorList) Matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, sel := range l.Selectors {
		if sel.Matches(n) {
			return true
		}
	}
	return false
}

// Matches reports whether element n has the selector's tag and every class.
func (s *Selector) Matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.Tag != "*" && n.Data != s.Tag {
		return false
	}
	for _, c := range s.Classes {
		if !HasClass(n, c) {
			return false
		}
	}
	return true
}

func (s *Selector) String() string {
	if len(s.Classes) == 0 {
		return s.Tag
	}
	return s.Tag + "." + strings.Join(s.Classes, ".")
}
