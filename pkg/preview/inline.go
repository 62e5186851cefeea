package preview

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExportFilename is the download name of the exported template.
const ExportFilename = "email-template-customized.html"

const (
	// boundary keeps --primary-color from matching inside --x--primary-color.
	boundary = `(^|[^\w-])`
	// declValue spans a declaration value up to its terminating semicolon.
	declValue = `[^;"}]+`
	// fallback matches the optional ", fallback" of a var() reference and
	// allows one level of nested parentheses such as rgb(0, 0, 0).
	fallback = `(?:,(?:[^()]|\([^()]*\))*)?`
)

// InlineVariables rewrites every declaration of each variable in vars to its
// literal value and replaces every var() reference to it with the value.
// css is stylesheet text or a style attribute value. All occurrences are
// rewritten, so a variable may be declared any number of times. Variables
// missing from vars are left untouched.
func InlineVariables(css string, vars map[string]string) string {
	for name, value := range vars {
		q := regexp.QuoteMeta(name)
		repl := strings.ReplaceAll(value, "$", "$$")

		decl := regexp.MustCompile(boundary + q + `\s*:\s*` + declValue)
		css = decl.ReplaceAllString(css, "${1}"+name+": "+repl)

		ref := regexp.MustCompile(`var\(\s*` + q + `\s*` + fallback + `\)`)
		css = ref.ReplaceAllLiteralString(css, value)
	}
	return css
}

// InlineDocument parses doc and applies InlineVariables to the text of every
// <style> element and to every style attribute. Text content and other
// attributes are never rewritten.
func InlineDocument(doc []byte, vars map[string]string) ([]byte, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse exported document: %w", err)
	}
	walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for i, a := range n.Attr {
			if a.Namespace == "" && a.Key == "style" {
				n.Attr[i].Val = InlineVariables(a.Val, vars)
			}
		}
		if n.DataAtom == atom.Style {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					c.Data = InlineVariables(c.Data, vars)
				}
			}
		}
		return false
	})

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HasVariableReference reports whether doc still references name through var().
func HasVariableReference(doc, name string) bool {
	re := regexp.MustCompile(`var\(\s*` + regexp.QuoteMeta(name) + `\s*[,)]`)
	return re.MatchString(doc)
}

// cssValue makes v safe inside a double-quoted style attribute.
func cssValue(v string) string {
	return strings.ReplaceAll(v, `"`, `'`)
}
