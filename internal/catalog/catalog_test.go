package catalog

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/flix/flixsite/internal/richtext"
)

func TestRender_PreservesDeclarationOrder(t *testing.T) {
	c := Catalog{
		{Name: "C", Content: richtext.Text("third letter")},
		{Name: "A", Content: richtext.Text("first letter")},
		{Name: "B", Content: richtext.Text("second letter")},
	}
	cards := Render(c)
	if len(cards) != len(c) {
		t.Fatalf("len = %d, want %d", len(cards), len(c))
	}
	for i, card := range cards {
		if card.Heading != c[i].Name {
			t.Errorf("card %d heading = %q, want %q", i, card.Heading, c[i].Name)
		}
		if !reflect.DeepEqual(card.Body, c[i].Content) {
			t.Errorf("card %d body changed", i)
		}
	}
}

func TestRender_ABC(t *testing.T) {
	cards := Render(Catalog{
		{Name: "A", Content: richtext.Text("a")},
		{Name: "B", Content: richtext.Text("b")},
		{Name: "C", Content: richtext.Text("c")},
	})
	var got []string
	for _, c := range cards {
		got = append(got, c.Heading)
	}
	if strings.Join(got, ",") != "A,B,C" {
		t.Errorf("headings = %v", got)
	}
}

func TestRender_Empty(t *testing.T) {
	cards := Render(Catalog{})
	if cards == nil || len(cards) != 0 {
		t.Errorf("cards = %#v, want empty slice", cards)
	}
	if got := Render(nil); len(got) != 0 {
		t.Errorf("nil catalog rendered %d cards", len(got))
	}
}

func TestRender_HeadingVerbatim(t *testing.T) {
	name := "  Illegal States should be Unrepresentable.  "
	cards := Render(Catalog{{Name: name, Content: richtext.Text("x")}})
	if cards[0].Heading != name {
		t.Errorf("heading = %q, want %q", cards[0].Heading, name)
	}
	if cards[0].ID != "illegal-states-should-be-unrepresentable" {
		t.Errorf("id = %q", cards[0].ID)
	}
}

func TestRender_NoDedup(t *testing.T) {
	cards := Render(Catalog{
		{Name: "Same", Content: richtext.Text("1")},
		{Name: "Same", Content: richtext.Text("2")},
		{Name: "Same", Content: richtext.Text("3")},
	})
	if len(cards) != 3 {
		t.Fatalf("len = %d, want 3", len(cards))
	}
	ids := []string{cards[0].ID, cards[1].ID, cards[2].ID}
	if strings.Join(ids, ",") != "same,same-2,same-3" {
		t.Errorf("ids = %v", ids)
	}
}

func TestRender_Idempotent(t *testing.T) {
	c := Catalog{
		{Name: "No Nulls", Content: richtext.Para(richtext.Text("Use "), richtext.Code("Option"))},
		{Name: "Badge", Content: richtext.Group(richtext.Text("x"), richtext.Break(), richtext.Badge("in progress"))},
	}
	if !reflect.DeepEqual(Render(c), Render(c)) {
		t.Error("re-rendering produced a different card sequence")
	}
}

func TestWriteHTML(t *testing.T) {
	c := Catalog{
		{Name: "B <second>", Content: richtext.Text("bee")},
		{Name: "A", Content: richtext.Group(richtext.Text("see "), richtext.Code("f(a, b)"))},
	}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, Render(c), LayoutColumns, richtext.NewHTMLRenderer()); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Find(".card-columns").Length() != 1 {
		t.Fatal("missing card-columns container")
	}
	titles := doc.Find(".card-columns .card .card-title")
	if titles.Length() != 2 {
		t.Fatalf("cards = %d, want 2", titles.Length())
	}
	if got := titles.Eq(0).Text(); got != "B <second>" {
		t.Errorf("first heading = %q", got)
	}
	if got := titles.Eq(1).Text(); got != "A" {
		t.Errorf("second heading = %q", got)
	}
	if got := doc.Find(".card").Eq(1).Find(".card-text code").Text(); got != "f(a, b)" {
		t.Errorf("body code = %q", got)
	}
	if id, _ := doc.Find(".card").Eq(0).Attr("id"); id != "b-second" {
		t.Errorf("id = %q", id)
	}
}

func TestWriteHTML_EmptyCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, Render(nil), LayoutStack, richtext.NewHTMLRenderer()); err != nil {
		t.Fatal(err)
	}
	if buf.String() != `<div class="card-stack"></div>` {
		t.Errorf("got %s", buf.String())
	}
}
