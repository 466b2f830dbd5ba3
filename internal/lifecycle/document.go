package lifecycle

import "sync"

// Document is the title slot of a single rendered document.
type Document struct {
	mu     sync.Mutex
	title  string
	writes int
}

// SetTitle implements TitleSlot.
func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
	d.writes++
}

// Title returns the last written title.
func (d *Document) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}

// Writes returns how many times the title has been written.
func (d *Document) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}
