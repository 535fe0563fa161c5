package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

var ErrSelector = errors.New("dom: invalid selector")

// QueryAll returns the descendants of root matching a CSS selector. Selectors
// starting with "/", "./" or "(" are treated as XPath.
func QueryAll(root *html.Node, selector string) ([]*html.Node, error) {
	expr, err := CSSToXPath(selector)
	if err != nil {
		return nil, err
	}
	nodes, err := htmlquery.QueryAll(root, expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSelector, selector, err)
	}
	return nodes, nil
}

// Query returns the first match or nil.
func Query(root *html.Node, selector string) (*html.Node, error) {
	nodes, err := QueryAll(root, selector)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return nodes[0], nil
}

// Find runs a selector known to be valid. It panics on a malformed selector.
func Find(root *html.Node, selector string) []*html.Node {
	nodes, err := QueryAll(root, selector)
	if err != nil {
		panic(err)
	}
	return nodes
}

func FindOne(root *html.Node, selector string) *html.Node {
	nodes := Find(root, selector)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// CSSToXPath translates the selector subset used by the editor: type, #id,
// .class, [attr], [attr=value], [attr~=value], [attr^=value], [attr*=value],
// descendant and child combinators, and comma-separated groups. The result is
// relative to the context node.
func CSSToXPath(css string) (string, error) {
	css = strings.TrimSpace(css)
	if css == "" {
		return "", fmt.Errorf("%w: empty", ErrSelector)
	}
	if strings.HasPrefix(css, "/") || strings.HasPrefix(css, "./") || strings.HasPrefix(css, "(") {
		return css, nil
	}

	groups, err := splitTopLevel(css, ',')
	if err != nil {
		return "", err
	}
	var out []string
	for _, g := range groups {
		x, err := translateGroup(strings.TrimSpace(g))
		if err != nil {
			return "", err
		}
		out = append(out, x)
	}
	return strings.Join(out, " | "), nil
}

func translateGroup(sel string) (string, error) {
	if sel == "" {
		return "", fmt.Errorf("%w: empty group", ErrSelector)
	}
	tokens, err := tokenizeCombinators(sel)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(".")
	axis := "//"
	for _, tok := range tokens {
		if tok == ">" {
			axis = "/"
			continue
		}
		step, err := translateCompound(tok)
		if err != nil {
			return "", err
		}
		b.WriteString(axis)
		b.WriteString(step)
		axis = "//"
	}
	if axis == "/" && strings.HasSuffix(sel, ">") {
		return "", fmt.Errorf("%w: dangling combinator in %q", ErrSelector, sel)
	}
	return b.String(), nil
}

// tokenizeCombinators splits on whitespace and '>' outside brackets and quotes.
func tokenizeCombinators(sel string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	depth := 0
	var quote rune
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range sel {
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		case r == '[':
			depth++
			cur.WriteRune(r)
		case r == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced ] in %q", ErrSelector, sel)
			}
			cur.WriteRune(r)
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		case depth == 0 && r == '>':
			flush()
			tokens = append(tokens, ">")
		default:
			cur.WriteRune(r)
		}
	}
	if depth != 0 || quote != 0 {
		return nil, fmt.Errorf("%w: unterminated attribute in %q", ErrSelector, sel)
	}
	flush()
	return tokens, nil
}

func translateCompound(tok string) (string, error) {
	tag := "*"
	var preds []string

	i := 0
	if i < len(tok) && (isIdentByte(tok[i]) || tok[i] == '*') {
		j := i
		for j < len(tok) && (isIdentByte(tok[j]) || tok[j] == '*') {
			j++
		}
		tag = strings.ToLower(tok[i:j])
		i = j
	}

	for i < len(tok) {
		switch tok[i] {
		case '#', '.':
			j := i + 1
			for j < len(tok) && isIdentByte(tok[j]) {
				j++
			}
			name := tok[i+1 : j]
			if name == "" {
				return "", fmt.Errorf("%w: empty name in %q", ErrSelector, tok)
			}
			if tok[i] == '#' {
				preds = append(preds, fmt.Sprintf("@id=%s", xpathLiteral(name)))
			} else {
				preds = append(preds, classPredicate(name))
			}
			i = j
		case '[':
			end := strings.IndexByte(tok[i:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated attribute in %q", ErrSelector, tok)
			}
			p, err := attrPredicate(tok[i+1 : i+end])
			if err != nil {
				return "", err
			}
			preds = append(preds, p)
			i += end + 1
		default:
			return "", fmt.Errorf("%w: unexpected %q in %q", ErrSelector, tok[i], tok)
		}
	}

	var b strings.Builder
	b.WriteString(tag)
	for _, p := range preds {
		b.WriteString("[" + p + "]")
	}
	return b.String(), nil
}

func attrPredicate(body string) (string, error) {
	ops := []string{"~=", "^=", "$=", "*=", "="}
	for _, op := range ops {
		k := strings.Index(body, op)
		if k < 0 {
			continue
		}
		name := strings.TrimSpace(body[:k])
		val := strings.Trim(strings.TrimSpace(body[k+len(op):]), `"'`)
		if name == "" {
			return "", fmt.Errorf("%w: empty attribute name", ErrSelector)
		}
		lit := xpathLiteral(val)
		switch op {
		case "=":
			return fmt.Sprintf("@%s=%s", name, lit), nil
		case "~=":
			return fmt.Sprintf("contains(concat(' ', normalize-space(@%s), ' '), concat(' ', %s, ' '))", name, lit), nil
		case "^=":
			return fmt.Sprintf("starts-with(@%s, %s)", name, lit), nil
		case "$=":
			return fmt.Sprintf("substring(@%s, string-length(@%s) - string-length(%s) + 1)=%s", name, name, lit, lit), nil
		default:
			return fmt.Sprintf("contains(@%s, %s)", name, lit), nil
		}
	}
	name := strings.TrimSpace(body)
	if name == "" {
		return "", fmt.Errorf("%w: empty attribute", ErrSelector)
	}
	return "@" + name, nil
}

func classPredicate(name string) string {
	return fmt.Sprintf("contains(concat(' ', normalize-space(@class), ' '), ' %s ')", name)
}

func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func splitTopLevel(s string, sep rune) ([]string, error) {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrSelector, s)
	}
	return append(parts, s[start:]), nil
}
