package markup

import (
	"fmt"
	"strings"
)

// Emphasis selects how <em> is decorated
type Emphasis int

const (
	EmphasisUnderline Emphasis = iota
	EmphasisItalic
)

// FontPolicy selects how <font> elements are handled
type FontPolicy int

const (
	// FontPassthrough renders the children with no extra styling
	FontPassthrough FontPolicy = iota
	// FontDrop skips the element and everything inside it
	FontDrop
)

// BulletPrefix starts every unordered list item
const BulletPrefix = "    • "

const listIndent = "    "

// cellSeparator goes between the cells of a table row
const cellSeparator = " | "

// Policy is the decoration policy applied by a Renderer
type Policy struct {
	Emphasis       Emphasis
	Font           FontPolicy
	LinkReferences bool
	CodeBackground Color
	LinkForeground Color
}

// DefaultPolicy underlines emphasis, passes <font> through and appends link references
var DefaultPolicy = Policy{
	Emphasis:       EmphasisUnderline,
	Font:           FontPassthrough,
	LinkReferences: true,
	CodeBackground: RGB(0x29, 0x2e, 0x42),
	LinkForeground: RGB(0x7a, 0xa2, 0xf7),
}

// StyleForTag maps a tag name to its style under the default policy
func StyleForTag(tag string) Style {
	return DefaultPolicy.StyleForTag(tag)
}

// StyleForTag maps a tag name to the style it contributes. Tag names are
// matched case-sensitively; anything unknown yields the empty style.
func (p Policy) StyleForTag(tag string) Style {
	switch tag {
	case "strong", "b":
		return Style{Modifiers: Bold}
	case "em":
		if p.Emphasis == EmphasisItalic {
			return Style{Modifiers: Italic}
		}
		return Style{Modifiers: Underline}
	case "code":
		return Style{Modifiers: Italic, Background: p.CodeBackground}
	case "sup":
		return Style{Format: "^" + Placeholder}
	case "a":
		return Style{Modifiers: Underline, Foreground: p.LinkForeground}
	default:
		return Style{}
	}
}

// Renderer converts HTML fragments to styled text
type Renderer struct {
	Policy Policy
}

// NewRenderer returns a renderer using the given policy
func NewRenderer(p Policy) *Renderer {
	return &Renderer{Policy: p}
}

// Render renders an HTML fragment with the default policy
func Render(fragment string) Text {
	return NewRenderer(DefaultPolicy).Render(fragment)
}

// Render renders an HTML fragment. It never fails: unparseable input yields
// an empty Text and unknown constructs degrade to unstyled text.
func (r *Renderer) Render(fragment string) Text {
	return r.RenderNode(Parse(fragment))
}

// RenderNode renders an already parsed tree. The root itself contributes no style.
func (r *Renderer) RenderNode(root *Node) Text {
	if root == nil {
		return Text{}
	}

	st := &renderState{policy: r.Policy}
	if root.IsText() {
		st.text(root.Text, Style{}, true)
	} else {
		st.children(root, Style{}, true)
	}
	st.flush()
	st.trimTrailingBlank()

	if r.Policy.LinkReferences {
		for i, link := range st.links {
			st.out = append(st.out, Line{{Text: fmt.Sprintf("[%d]: %s", i+1, link)}})
		}
	}
	if st.out == nil {
		return Text{}
	}
	return st.out
}

// renderState holds everything scoped to a single render call
type renderState struct {
	policy Policy
	out    Text
	line   Line
	pre    int
	links  []string
	seen   map[string]int
	// item is non-zero while inside a list item
	item int
	// joined is set after a <br> was folded into an item line
	joined bool
}

func (st *renderState) children(n *Node, style Style, top bool) {
	for _, c := range n.Children {
		if c.IsText() {
			st.text(c.Text, style, top)
			continue
		}
		st.element(c, style)
	}
}

func (st *renderState) element(n *Node, parent Style) {
	if n.Tag == "font" && st.policy.Font == FontDrop {
		return
	}
	style := Combine(parent, st.policy.StyleForTag(n.Tag))

	switch n.Tag {
	case "pre":
		st.preformatted(n, style)
	case "ul":
		st.list(n, style, false, 0)
	case "ol":
		st.list(n, style, true, 0)
	case "br":
		if st.pre > 0 {
			st.endPreLine()
			return
		}
		if st.item > 0 {
			// an item stays on one line
			if st.trimTrailingSpace(); len(st.line) > 0 {
				st.line = append(st.line, Span{Text: " ", Style: style})
			}
			st.joined = true
			return
		}
		if len(st.line) == 0 {
			st.out = append(st.out, Line{})
			return
		}
		st.flush()
	case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "table", "tr":
		if st.pre > 0 {
			st.children(n, style, false)
			return
		}
		st.paragraph(n, style)
	case "td", "th":
		if st.trimTrailingSpace(); len(st.line) > 0 {
			st.line = append(st.line, Span{Text: cellSeparator})
		}
		st.children(n, style, false)
	case "a":
		st.children(n, style, false)
		if href := n.Attr["href"]; href != "" && st.policy.LinkReferences {
			st.line = append(st.line, Span{Text: fmt.Sprintf("[%d]", st.linkIndex(href))})
		}
	default:
		st.children(n, style, false)
	}
}

// paragraph puts the element's content on its own line. A paragraph with no
// visible characters becomes a single blank separator.
func (st *renderState) paragraph(n *Node, style Style) {
	st.flush()
	start := len(st.out)
	st.children(n, style, false)
	st.flush()

	if len(st.out) == start || (len(st.out) == start+1 && st.out[start].IsBlank()) {
		st.out = st.out[:start]
		st.blank()
	}
}

func (st *renderState) preformatted(n *Node, style Style) {
	st.flush()
	st.pre++
	st.children(n, style, false)
	st.pre--
	st.flush()
}

func (st *renderState) list(n *Node, style Style, ordered bool, depth int) {
	st.flush()
	indent := strings.Repeat(listIndent, depth+1)
	item := 0

	for _, c := range n.Children {
		switch {
		case c.IsText():
			if strings.TrimSpace(c.Text) == "" {
				continue
			}
			// stray text between items is kept, without a marker
			st.text(c.Text, style, false)
			st.flush()
		case c.Tag == "li":
			item++
			marker := indent + "• "
			if ordered {
				marker = fmt.Sprintf("%s%d. ", indent, item)
			}
			st.line = Line{{Text: marker}}
			st.item++
			st.listItem(c, Combine(style, st.policy.StyleForTag("li")), depth)
			st.item--
			st.joined = false
			st.flush()
		case c.Tag == "ul" || c.Tag == "ol":
			st.list(c, Combine(style, st.policy.StyleForTag(c.Tag)), c.Tag == "ol", depth+1)
		default:
			st.element(c, style)
			st.flush()
		}
	}
	st.flush()
}

// listItem renders an item's content inline; nested lists go one level deeper
func (st *renderState) listItem(n *Node, style Style, depth int) {
	for _, c := range n.Children {
		switch {
		case c.IsText():
			st.text(c.Text, style, false)
		case c.Tag == "ul" || c.Tag == "ol":
			st.list(c, Combine(style, st.policy.StyleForTag(c.Tag)), c.Tag == "ol", depth+1)
		case c.Tag == "p" || c.Tag == "div":
			// paragraphs inside an item stay on the item's line
			st.listItem(c, Combine(style, st.policy.StyleForTag(c.Tag)), depth)
		default:
			st.element(c, style)
		}
	}
}

func (st *renderState) text(raw string, style Style, top bool) {
	content := normalize(raw)

	if st.pre > 0 {
		st.preText(content, style)
		return
	}

	if st.joined {
		if content = strings.TrimLeft(content, " \n"); content == "" {
			return
		}
		st.joined = false
	}

	if strings.TrimSpace(content) == "" {
		if top && strings.Contains(content, "\n") {
			st.flush()
			st.blank()
			return
		}
		if len(st.line) == 0 {
			return
		}
	}

	content = strings.ReplaceAll(content, "\n", " ")
	st.line = append(st.line, Span{Text: style.Apply(content), Style: style})
}

// preText splits on embedded newlines; each newline terminates the current line
func (st *renderState) preText(content string, style Style) {
	segments := strings.Split(content, "\n")
	for i, seg := range segments {
		if seg != "" {
			st.line = append(st.line, Span{Text: style.Apply(seg), Style: style})
		}
		if i < len(segments)-1 {
			st.endPreLine()
		}
	}
}

// endPreLine emits the current line even if empty, preserving blank rows
func (st *renderState) endPreLine() {
	st.out = append(st.out, st.line)
	st.line = nil
}

// trimTrailingSpace drops whitespace-only spans from the end of the current line
func (st *renderState) trimTrailingSpace() {
	for len(st.line) > 0 && strings.TrimSpace(st.line[len(st.line)-1].Text) == "" {
		st.line = st.line[:len(st.line)-1]
	}
}

func (st *renderState) flush() {
	if len(st.line) == 0 {
		return
	}
	st.out = append(st.out, st.line)
	st.line = nil
}

// blank appends a separator unless the output is empty or already ends in one
func (st *renderState) blank() {
	if len(st.out) == 0 || len(st.out[len(st.out)-1]) == 0 {
		return
	}
	st.out = append(st.out, Line{})
}

func (st *renderState) trimTrailingBlank() {
	for len(st.out) > 0 && len(st.out[len(st.out)-1]) == 0 {
		st.out = st.out[:len(st.out)-1]
	}
}

func (st *renderState) linkIndex(href string) int {
	if st.seen == nil {
		st.seen = make(map[string]int)
	}
	if i, ok := st.seen[href]; ok {
		return i
	}
	st.links = append(st.links, href)
	st.seen[href] = len(st.links)
	return len(st.links)
}

// normalize drops tabs and turns non-breaking spaces into plain spaces
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\t", "")
	return strings.ReplaceAll(s, "\u00a0", " ")
}
