package richtext

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PlainText renders n as lightly marked-up plain text.
func PlainText(n Node) string {
	var b strings.Builder
	plain(&b, n, 0)
	return strings.TrimSpace(collapseBlankLines(b.String()))
}

func plain(b *strings.Builder, n Node, depth int) {
	switch n.Kind {
	case KindText:
		b.WriteString(collapseSpace(n.Text))
	case KindCode:
		b.WriteString("`" + n.Text + "`")
	case KindBadge:
		b.WriteString("[" + n.Text + "]")
	case KindBreak:
		b.WriteString("\n")
	case KindLink, KindOutboundLink:
		plainChildren(b, n.Children, depth)
		b.WriteString(" (" + n.URL + ")")
	case KindList:
		b.WriteString("\n")
		for i, item := range n.Children {
			b.WriteString(strings.Repeat("  ", depth))
			if n.Ordered {
				b.WriteString(strconv.Itoa(i+1) + ". ")
			} else {
				b.WriteString("- ")
			}
			plain(b, item, depth+1)
			b.WriteString("\n")
		}
	case KindParagraph:
		plainChildren(b, n.Children, depth)
		b.WriteString("\n\n")
	case KindHeading:
		b.WriteString(strings.Repeat("#", n.Level) + " ")
		plainChildren(b, n.Children, depth)
		b.WriteString("\n\n")
	case KindImage:
		b.WriteString("[image: " + n.Text + "]")
	case KindCodeBlock:
		b.WriteString("\n```" + n.Lang + "\n" + strings.TrimSpace(n.Text) + "\n```\n")
	case KindMarkdown:
		b.WriteString(strings.TrimSpace(n.Text) + "\n\n")
	case KindColumns, KindCard:
		for _, c := range n.Children {
			plain(b, c, depth)
			b.WriteString("\n")
		}
	default:
		plainChildren(b, n.Children, depth)
	}
}

func plainChildren(b *strings.Builder, children []Node, depth int) {
	for _, c := range children {
		plain(b, c, depth)
	}
}

func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	lead := unicode.IsSpace(rune(s[0]))
	trail := unicode.IsSpace(rune(s[len(s)-1]))
	out := strings.Join(strings.Fields(s), " ")
	if out == "" {
		return " "
	}
	if lead {
		out = " " + out
	}
	if trail {
		out += " "
	}
	return out
}

func collapseBlankLines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}

// Slug turns a heading into an anchor: diacritics are stripped, letters are
// lower-cased and every other run of characters becomes a single '-'.
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
