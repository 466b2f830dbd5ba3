// Package richtext models page content as a tree of tagged nodes and renders
// it to HTML or plain text. Renderers never inspect content beyond the tag.
package richtext

// Kind tags a Node variant.
type Kind int

const (
	KindText Kind = iota
	KindCode
	KindEmphasis
	KindStrong
	KindLink
	KindOutboundLink
	KindList
	KindBadge
	KindParagraph
	KindBreak
	KindHeading
	KindImage
	KindCodeBlock
	KindMarkdown
	KindGroup
	KindColumns
	KindCard
)

var kindNames = [...]string{
	KindText:         "text",
	KindCode:         "code",
	KindEmphasis:     "emphasis",
	KindStrong:       "strong",
	KindLink:         "link",
	KindOutboundLink: "outbound_link",
	KindList:         "list",
	KindBadge:        "badge",
	KindParagraph:    "paragraph",
	KindBreak:        "break",
	KindHeading:      "heading",
	KindImage:        "image",
	KindCodeBlock:    "code_block",
	KindMarkdown:     "markdown",
	KindGroup:        "group",
	KindColumns:      "columns",
	KindCard:         "card",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node is one element of a rich content tree.
//
// Which fields are meaningful depends on Kind:
//   - Text, Code, Badge, Markdown: Text
//   - Link, OutboundLink: URL and Children (the label)
//   - Image: URL (src) and Text (alt)
//   - CodeBlock: Text (source) and Lang
//   - Heading: Level and Children
//   - List: Ordered and Children (one child per item)
//   - everything else: Children
type Node struct {
	Kind     Kind
	Text     string
	URL      string
	Lang     string
	Level    int
	Ordered  bool
	Children []Node
}

// Empty reports whether n carries no content at all.
func (n Node) Empty() bool {
	switch n.Kind {
	case KindBreak:
		return false
	case KindText, KindCode, KindBadge, KindMarkdown, KindCodeBlock:
		return n.Text == ""
	case KindImage:
		return n.URL == ""
	}
	for _, c := range n.Children {
		if !c.Empty() {
			return false
		}
	}
	return true
}

func Text(s string) Node { return Node{Kind: KindText, Text: s} }

func Code(s string) Node { return Node{Kind: KindCode, Text: s} }

func Badge(s string) Node { return Node{Kind: KindBadge, Text: s} }

func Break() Node { return Node{Kind: KindBreak} }

func Em(children ...Node) Node { return Node{Kind: KindEmphasis, Children: children} }

func Strong(children ...Node) Node { return Node{Kind: KindStrong, Children: children} }

// Link is an in-site or external link rendered as-is.
func Link(url string, children ...Node) Node {
	return Node{Kind: KindLink, URL: url, Children: children}
}

// Outbound is an external link whose clicks are recorded before redirecting.
func Outbound(url string, children ...Node) Node {
	return Node{Kind: KindOutboundLink, URL: url, Children: children}
}

// List is an unordered list; each child is one item.
func List(items ...Node) Node { return Node{Kind: KindList, Children: items} }

// OrderedList is a numbered list; each child is one item.
func OrderedList(items ...Node) Node {
	return Node{Kind: KindList, Ordered: true, Children: items}
}

// Item groups the inline content of one list item.
func Item(children ...Node) Node { return Group(children...) }

func Para(children ...Node) Node { return Node{Kind: KindParagraph, Children: children} }

func Heading(level int, children ...Node) Node {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Node{Kind: KindHeading, Level: level, Children: children}
}

func Image(src, alt string) Node { return Node{Kind: KindImage, URL: src, Text: alt} }

func CodeBlock(lang, src string) Node { return Node{Kind: KindCodeBlock, Lang: lang, Text: src} }

// Markdown is prose authored in Markdown; it is converted and sanitised at
// render time.
func Markdown(src string) Node { return Node{Kind: KindMarkdown, Text: src} }

func Group(children ...Node) Node { return Node{Kind: KindGroup, Children: children} }

// Columns lays its children out side by side.
func Columns(cols ...Node) Node { return Node{Kind: KindColumns, Children: cols} }

// Card frames its children in a bordered box.
func Card(children ...Node) Node { return Node{Kind: KindCard, Children: children} }

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}
