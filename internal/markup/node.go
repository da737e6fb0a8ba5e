package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is a read-only view of a parsed fragment: either an element with
// children or a text leaf.
type Node struct {
	Tag      string
	Attr     map[string]string
	Text     string
	Children []*Node
}

// IsText reports whether the node is a text leaf
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Element builds an element node
func Element(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// TextNode builds a text leaf
func TextNode(content string) *Node {
	return &Node{Text: content}
}

// Parse parses an HTML fragment into a Node tree rooted at a synthetic
// "body" element. It returns nil if the fragment yields nothing.
func Parse(fragment string) *Node {
	if fragment == "" {
		return nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil || len(nodes) == 0 {
		return nil
	}

	root := &Node{Tag: "body"}
	for _, n := range nodes {
		if c := convert(n); c != nil {
			root.Children = append(root.Children, c)
		}
	}
	if len(root.Children) == 0 {
		return nil
	}
	return root
}

// convert drops comments, doctypes and other non-content nodes
func convert(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		return &Node{Text: n.Data}
	case html.ElementNode:
		out := &Node{Tag: n.Data}
		if len(n.Attr) > 0 {
			out.Attr = make(map[string]string, len(n.Attr))
			for _, a := range n.Attr {
				out.Attr[a.Key] = a.Val
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if cc := convert(c); cc != nil {
				out.Children = append(out.Children, cc)
			}
		}
		return out
	default:
		return nil
	}
}
