package richtext

import (
	"strings"
	"testing"
)

func render(t *testing.T, n Node) string {
	t.Helper()
	out, err := NewHTMLRenderer().RenderString(n)
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	return out
}

func TestRender_InlineNodes(t *testing.T) {
	got := render(t, Para(
		Text("Check with "), Code("java -version"), Text(". "),
		Em(Text("really")), Text(" "), Strong(Text("now")), Break(), Badge("in progress"),
	))
	want := `<p>Check with <code>java -version</code>. <em>really</em> <strong>now</strong><br/><span class="badge badge-secondary">in progress</span></p>`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestRender_EscapesText(t *testing.T) {
	got := render(t, Group(Text("x -> x + 1 < 2"), Code(`"12.0.0" & <b>`)))
	if strings.Contains(got, "<b>") {
		t.Errorf("markup not escaped: %s", got)
	}
	if !strings.Contains(got, "x -&gt; x + 1 &lt; 2") {
		t.Errorf("text not escaped: %s", got)
	}
}

func TestRender_Lists(t *testing.T) {
	got := render(t, OrderedList(Item(Text("one")), Item(Text("two"))))
	want := `<ol><li class="mb-2">one</li><li class="mb-2">two</li></ol>`
	if got != want {
		t.Errorf("got %s", got)
	}
	got = render(t, List(Item(Text("a"))))
	if got != `<ul><li class="mb-2">a</li></ul>` {
		t.Errorf("got %s", got)
	}
}

func TestRender_Links(t *testing.T) {
	got := render(t, Link("https://play.flix.dev/", Text("play.flix.dev")))
	if got != `<a href="https://play.flix.dev/">play.flix.dev</a>` {
		t.Errorf("link = %s", got)
	}

	got = render(t, Outbound("https://github.com/flix/flix/releases", Text("flix.jar")))
	if !strings.Contains(got, `href="/out?to=https%3A%2F%2Fgithub.com%2Fflix%2Fflix%2Freleases"`) {
		t.Errorf("outbound href wrong: %s", got)
	}
	if !strings.Contains(got, `data-outbound="https://github.com/flix/flix/releases"`) {
		t.Errorf("outbound target missing: %s", got)
	}
}

func TestRender_LayoutNodes(t *testing.T) {
	got := render(t, Columns(Heading(2, Text("Up")), Card(Image("/static/install.svg", "install"))))
	for _, want := range []string{
		`<div class="row mb-lg-5">`,
		`<div class="col-md-6"><h2>Up</h2></div>`,
		`<div class="card p-2"><img class="card-img-top" src="/static/install.svg" alt="install"/></div>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %s", want, got)
		}
	}
}

func TestRender_MarkdownSanitised(t *testing.T) {
	got := render(t, Markdown("Try [play](https://play.flix.dev/).\n\n<script>alert(1)</script>"))
	if !strings.Contains(got, "<p>Try <a href=\"https://play.flix.dev/\"") {
		t.Errorf("markdown not converted: %s", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("script survived sanitising: %s", got)
	}
}

func TestRender_CodeBlockHighlighted(t *testing.T) {
	got := render(t, CodeBlock("flix", "def main(): Unit = ()"))
	if !strings.Contains(got, "chroma") {
		t.Errorf("expected chroma markup: %s", got)
	}
	if !strings.Contains(got, "main") {
		t.Errorf("source missing: %s", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	n := Para(Text("a"), Outbound("https://x.test/", Text("x")), Markdown("*b*"))
	if render(t, n) != render(t, n) {
		t.Error("rendering the same node twice differs")
	}
}

func TestWriteHighlightCSS(t *testing.T) {
	var b strings.Builder
	if err := NewHTMLRenderer().WriteHighlightCSS(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), ".chroma") {
		t.Errorf("css = %q", b.String())
	}
}
