package export

import (
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/acalliger/edspdf/model"
)

// HTML writes text as an HTML fragment with spans applied.
//
// The text is cut at every span boundary. Each piece is wrapped in <b> and
// <i> when a covering span has a true "bold" or "italic" attribute, and in a
// <span> carrying the remaining attributes as data-* attributes. Line
// breaks become <br> elements. Spans are clamped to the text.
func HTML(w io.Writer, label, text string, spans []model.GlobalStyleSpan) error {
	root := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: "class", Val: "zone"},
			{Key: "data-label", Val: label},
		},
	}

	runes := []rune(text)
	bounds := boundaries(len(runes), spans)
	for i := 0; i+1 < len(bounds); i++ {
		from, to := bounds[i], bounds[i+1]
		adopt(root, styledPiece(string(runes[from:to]), covering(spans, from, to)))
	}

	return html.Render(w, root)
}

// boundaries returns the sorted distinct cut points of text, 0 and n included
func boundaries(n int, spans []model.GlobalStyleSpan) []int {
	set := map[int]bool{0: true, n: true}
	for _, s := range spans {
		set[clampOffset(s.Start, n)] = true
		set[clampOffset(s.End, n)] = true
	}
	bounds := make([]int, 0, len(set))
	for b := range set {
		bounds = append(bounds, b)
	}
	sort.Ints(bounds)
	return bounds
}

func clampOffset(v, n int) int {
	return max(0, min(v, n))
}

// covering returns the spans that cover [from, to) entirely, in input order
func covering(spans []model.GlobalStyleSpan, from, to int) []model.GlobalStyleSpan {
	var out []model.GlobalStyleSpan
	for _, s := range spans {
		if s.Start < s.End && s.Start <= from && s.End >= to {
			out = append(out, s)
		}
	}
	return out
}

// styledPiece wraps text in the elements its covering spans call for
func styledPiece(text string, spans []model.GlobalStyleSpan) *html.Node {
	var bold, italic bool
	data := make(map[string]string)
	for _, s := range spans {
		bold = bold || s.Attributes.Bool("bold")
		italic = italic || s.Attributes.Bool("italic")
		for name, value := range s.Attributes {
			if name == "bold" || name == "italic" {
				continue
			}
			data[name] = value.String()
		}
	}

	node := textWithBreaks(text)
	if italic {
		node = wrap(node, "i", atom.I, nil)
	}
	if bold {
		node = wrap(node, "b", atom.B, nil)
	}
	if len(data) > 0 {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		attrs := make([]html.Attribute, len(keys))
		for i, k := range keys {
			attrs[i] = html.Attribute{Key: "data-" + dataKey(k), Val: data[k]}
		}
		node = wrap(node, "span", atom.Span, attrs)
	}
	return node
}

// textWithBreaks returns a fragment holding text with newlines as <br>.
// The fragment is a document node whose children are moved by adopt.
func textWithBreaks(text string) *html.Node {
	fragment := &html.Node{Type: html.DocumentNode}
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			fragment.AppendChild(&html.Node{Type: html.ElementNode, Data: "br", DataAtom: atom.Br})
		}
		if part != "" {
			fragment.AppendChild(&html.Node{Type: html.TextNode, Data: part})
		}
	}
	return fragment
}

// wrap places node inside a new element
func wrap(node *html.Node, tag string, a atom.Atom, attrs []html.Attribute) *html.Node {
	el := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: a, Attr: attrs}
	adopt(el, node)
	return el
}

// adopt appends node to parent, or its children if node is a fragment
func adopt(parent, node *html.Node) {
	if node.Type != html.DocumentNode {
		parent.AppendChild(node)
		return
	}
	for child := node.FirstChild; child != nil; {
		next := child.NextSibling
		node.RemoveChild(child)
		parent.AppendChild(child)
		child = next
	}
}

// dataKey turns an attribute name into a valid data-* suffix
func dataKey(name string) string {
	name = strings.ToLower(name)
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
