// Package catalog projects an ordered list of named content blocks into
// uniformly shaped cards.
package catalog

import (
	"strconv"

	"github.com/flix/flixsite/internal/richtext"
)

// Block is a named unit of rich content. Names are unique within a catalog
// by convention only.
type Block struct {
	Name    string
	Content richtext.Node
}

// Catalog is an ordered sequence of blocks. Declaration order is the only
// sort key.
type Catalog []Block

// Card is the rendered form of one block: a heading region and a body region.
type Card struct {
	// ID is an anchor for fragment navigation, derived from the heading.
	ID      string
	Heading string
	Body    richtext.Node
}

// Render maps every block to a card, in order. Content is passed through
// untouched and empty blocks are not repaired.
func Render(c Catalog) []Card {
	cards := make([]Card, 0, len(c))
	seen := make(map[string]int, len(c))
	for _, b := range c {
		cards = append(cards, Card{
			ID:      anchor(b.Name, seen),
			Heading: b.Name,
			Body:    b.Content,
		})
	}
	return cards
}

func anchor(name string, seen map[string]int) string {
	id := richtext.Slug(name)
	if id == "" {
		id = "card"
	}
	seen[id]++
	if n := seen[id]; n > 1 {
		return id + "-" + strconv.Itoa(n)
	}
	return id
}

// Names returns the block names in declaration order.
func (c Catalog) Names() []string {
	out := make([]string, len(c))
	for i, b := range c {
		out[i] = b.Name
	}
	return out
}
