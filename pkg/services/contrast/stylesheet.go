package contrast

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// Rule is one selector with its declarations. Property names are
// lower-cased and values have !important stripped.
type Rule struct {
	Selector     string
	Declarations map[string]string
}

// Stylesheet indexes style rules by selector text. A selector seen again
// keeps its original position but its declarations are replaced. At-rules
// and their blocks are ignored.
type Stylesheet struct {
	order []string
	rules map[string]map[string]string
}

func NewStylesheet() *Stylesheet {
	return &Stylesheet{rules: map[string]map[string]string{}}
}

// ParseStylesheet is shorthand for NewStylesheet followed by Add.
func ParseStylesheet(css string) *Stylesheet {
	s := NewStylesheet()
	s.Add(css)
	return s
}

// Add parses css and merges its rules into the index. Malformed input is
// consumed up to the first scanner error.
func (s *Stylesheet) Add(css string) {
	toks := tokenize(css)
	for i := 0; i < len(toks); {
		t := toks[i]
		switch {
		case t.Type == scanner.TokenS, t.Type == scanner.TokenCDO, t.Type == scanner.TokenCDC,
			isChar(t, "}"), isChar(t, ";"):
			i++
		case t.Type == scanner.TokenAtKeyword:
			i = skipAtRule(toks, i+1)
		default:
			end := indexChar(toks, i, "{")
			if end < 0 {
				return
			}
			prelude := toks[i:end]
			closeAt := matchingBrace(toks, end)
			decls := parseDeclarationTokens(toks[end+1 : closeAt])
			for _, sel := range splitTopLevel(prelude, ",") {
				if name := joinTokens(sel); name != "" {
					s.set(name, decls)
				}
			}
			i = closeAt + 1
		}
	}
}

func (s *Stylesheet) set(selector string, decls map[string]string) {
	if _, ok := s.rules[selector]; !ok {
		s.order = append(s.order, selector)
	}
	copied := make(map[string]string, len(decls))
	for k, v := range decls {
		copied[k] = v
	}
	s.rules[selector] = copied
}

// Lookup returns the declarations for an exact selector.
func (s *Stylesheet) Lookup(selector string) (map[string]string, bool) {
	d, ok := s.rules[selector]
	return d, ok
}

// Rules returns the indexed rules in first-seen order.
func (s *Stylesheet) Rules() []Rule {
	out := make([]Rule, 0, len(s.order))
	for _, sel := range s.order {
		out = append(out, Rule{Selector: sel, Declarations: s.rules[sel]})
	}
	return out
}

func (s *Stylesheet) Len() int {
	return len(s.order)
}

// ParseDeclarations parses the body of a style attribute.
func ParseDeclarations(block string) map[string]string {
	return parseDeclarationTokens(tokenize(block))
}

func tokenize(css string) []*scanner.Token {
	var toks []*scanner.Token
	sc := scanner.New(css)
	for {
		t := sc.Next()
		if t.Type == scanner.TokenEOF || t.Type == scanner.TokenError {
			return toks
		}
		if t.Type == scanner.TokenComment {
			continue
		}
		toks = append(toks, t)
	}
}

func isChar(t *scanner.Token, c string) bool {
	return t.Type == scanner.TokenChar && t.Value == c
}

func indexChar(toks []*scanner.Token, from int, c string) int {
	for i := from; i < len(toks); i++ {
		if isChar(toks[i], c) {
			return i
		}
	}
	return -1
}

// matchingBrace returns the index of the '}' closing the block opened at
// open, or len(toks) when the block is unterminated.
func matchingBrace(toks []*scanner.Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch {
		case isChar(toks[i], "{"):
			depth++
		case isChar(toks[i], "}"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(toks)
}

func skipAtRule(toks []*scanner.Token, from int) int {
	for i := from; i < len(toks); i++ {
		switch {
		case isChar(toks[i], ";"):
			return i + 1
		case isChar(toks[i], "{"):
			return matchingBrace(toks, i) + 1
		}
	}
	return len(toks)
}

// splitTopLevel splits toks on sep outside of parentheses.
func splitTopLevel(toks []*scanner.Token, sep string) [][]*scanner.Token {
	var (
		parts [][]*scanner.Token
		start int
		depth int
	)
	for i, t := range toks {
		switch {
		case t.Type == scanner.TokenFunction, isChar(t, "("), isChar(t, "["):
			depth++
		case isChar(t, ")"), isChar(t, "]"):
			if depth > 0 {
				depth--
			}
		case depth == 0 && isChar(t, sep):
			parts = append(parts, toks[start:i])
			start = i + 1
		}
	}
	return append(parts, toks[start:])
}

func joinTokens(toks []*scanner.Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Type == scanner.TokenS {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(t.Value)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func parseDeclarationTokens(toks []*scanner.Token) map[string]string {
	decls := map[string]string{}
	for _, decl := range splitTopLevel(toks, ";") {
		colon := indexChar(decl, 0, ":")
		if colon < 0 {
			continue
		}
		prop := strings.ToLower(joinTokens(decl[:colon]))
		if prop == "" || strings.ContainsAny(prop, " {}") {
			continue
		}
		value := decl[colon+1:]
		if bang := indexChar(value, 0, "!"); bang >= 0 {
			value = value[:bang]
		}
		if v := joinTokens(value); v != "" {
			decls[prop] = v
		}
	}
	return decls
}
