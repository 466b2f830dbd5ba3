package richtext

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// OutboundPath is the route that records outbound clicks and redirects.
const OutboundPath = "/out"

// Flix has no lexer of its own; its surface syntax is close enough to Scala.
var lexerAliases = map[string]string{
	"flix": "scala",
}

// HTMLRenderer renders nodes to HTML. It is safe for concurrent use.
type HTMLRenderer struct {
	md        goldmark.Markdown
	policy    *bluemonday.Policy
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewHTMLRenderer returns a renderer with GFM Markdown, a UGC sanitising
// policy and class-based code highlighting.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		md:        goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:    bluemonday.UGCPolicy(),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		style:     styles.Get("github"),
	}
}

// RenderString renders n into a string.
func (r *HTMLRenderer) RenderString(n Node) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render writes the HTML for n to w.
func (r *HTMLRenderer) Render(w io.Writer, n Node) error {
	ew := &errWriter{w: w}
	r.node(ew, n)
	return ew.err
}

// WriteHighlightCSS writes the stylesheet for highlighted code blocks.
func (r *HTMLRenderer) WriteHighlightCSS(w io.Writer) error {
	return r.formatter.WriteCSS(w, r.style)
}

func (r *HTMLRenderer) node(w *errWriter, n Node) {
	switch n.Kind {
	case KindText:
		w.str(html.EscapeString(n.Text))
	case KindCode:
		w.str("<code>" + html.EscapeString(n.Text) + "</code>")
	case KindBadge:
		w.str(`<span class="badge badge-secondary">` + html.EscapeString(n.Text) + "</span>")
	case KindBreak:
		w.str("<br/>")
	case KindEmphasis:
		r.wrap(w, "<em>", "</em>", n.Children)
	case KindStrong:
		r.wrap(w, "<strong>", "</strong>", n.Children)
	case KindLink:
		r.wrap(w, `<a href="`+html.EscapeString(n.URL)+`">`, "</a>", n.Children)
	case KindOutboundLink:
		href := OutboundPath + "?to=" + url.QueryEscape(n.URL)
		r.wrap(w, `<a href="`+html.EscapeString(href)+`" rel="noopener" data-outbound="`+html.EscapeString(n.URL)+`">`, "</a>", n.Children)
	case KindList:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		w.str("<" + tag + ">")
		for _, item := range n.Children {
			r.wrap(w, `<li class="mb-2">`, "</li>", []Node{item})
		}
		w.str("</" + tag + ">")
	case KindParagraph:
		r.wrap(w, "<p>", "</p>", n.Children)
	case KindHeading:
		r.wrap(w, fmt.Sprintf("<h%d>", n.Level), fmt.Sprintf("</h%d>", n.Level), n.Children)
	case KindImage:
		w.str(`<img class="card-img-top" src="` + html.EscapeString(n.URL) + `" alt="` + html.EscapeString(n.Text) + `"/>`)
	case KindCodeBlock:
		r.codeBlock(w, n)
	case KindMarkdown:
		r.markdown(w, n.Text)
	case KindColumns:
		width := 12
		if len(n.Children) > 0 {
			width = 12 / len(n.Children)
		}
		w.str(`<div class="row mb-lg-5">`)
		for _, col := range n.Children {
			r.wrap(w, fmt.Sprintf(`<div class="col-md-%d">`, width), "</div>", []Node{col})
		}
		w.str("</div>")
	case KindCard:
		r.wrap(w, `<div class="card p-2">`, "</div>", n.Children)
	default:
		r.children(w, n.Children)
	}
}

func (r *HTMLRenderer) wrap(w *errWriter, open, end string, children []Node) {
	w.str(open)
	r.children(w, children)
	w.str(end)
}

func (r *HTMLRenderer) children(w *errWriter, children []Node) {
	for _, c := range children {
		r.node(w, c)
	}
}

func (r *HTMLRenderer) markdown(w *errWriter, src string) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		w.fail(fmt.Errorf("richtext: convert markdown: %w", err))
		return
	}
	w.bytes(r.policy.SanitizeBytes(buf.Bytes()))
}

func (r *HTMLRenderer) codeBlock(w *errWriter, n Node) {
	lang := strings.ToLower(n.Lang)
	if alias, ok := lexerAliases[lang]; ok {
		lang = alias
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, n.Text)
	if err != nil {
		w.str("<pre><code>" + html.EscapeString(n.Text) + "</code></pre>")
		return
	}
	if w.err != nil {
		return
	}
	if err := r.formatter.Format(w.w, r.style, it); err != nil {
		w.fail(fmt.Errorf("richtext: highlight: %w", err))
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) str(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *errWriter) bytes(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *errWriter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
