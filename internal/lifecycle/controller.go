// Package lifecycle runs the one-time side effects of a displayed page:
// it writes the document title and forwards a single pageview event.
package lifecycle

import (
	"sync/atomic"

	"github.com/flix/flixsite/internal/apperr"
	"github.com/flix/flixsite/internal/models"
)

// State is the activation state of a page instance.
type State int32

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// TitleSlot is the document title slot owned by the displayed page.
type TitleSlot interface {
	SetTitle(title string)
}

// PathResolver returns the current location of the page.
type PathResolver func() models.Location

// Tracker receives pageview events. Implementations must not block.
type Tracker interface {
	RecordPageview(ev models.AnalyticsEvent)
}

// Controller guards the Inactive -> Active transition of one page instance.
type Controller struct {
	meta    models.PageMetadata
	resolve PathResolver
	slot    TitleSlot
	tracker Tracker

	state atomic.Int32
}

// New wires a controller. A missing resolver fails here rather than
// producing pageviews with a made-up path.
func New(meta models.PageMetadata, resolve PathResolver, slot TitleSlot, tracker Tracker) (*Controller, error) {
	if resolve == nil {
		return nil, apperr.ErrMissingResolver
	}
	if slot == nil {
		return nil, apperr.ErrMissingTitleSlot
	}
	if tracker == nil {
		return nil, apperr.ErrMissingTracker
	}
	return &Controller{
		meta:    meta,
		resolve: resolve,
		slot:    slot,
		tracker: tracker,
	}, nil
}

// Activate fires the side-effect bundle on the first call only.
// The previous title is not restored on deactivation.
func (c *Controller) Activate() {
	if !c.state.CompareAndSwap(int32(Inactive), int32(Active)) {
		return
	}
	c.slot.SetTitle(c.meta.Title)
	c.forward(models.NewAnalyticsEvent(c.resolve()))
}

// Commit runs one render pass and activates the page once the pass
// succeeds. Failed renders leave the controller inactive; later passes
// never fire the side effects again.
func (c *Controller) Commit(render func() error) error {
	if err := render(); err != nil {
		return err
	}
	c.Activate()
	return nil
}

// State reports the current activation state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Active reports whether the page has been activated.
func (c *Controller) Active() bool {
	return c.State() == Active
}

// Pageview loss is acceptable; a failing tracker must never break display.
func (c *Controller) forward(ev models.AnalyticsEvent) {
	defer func() { _ = recover() }()
	c.tracker.RecordPageview(ev)
}
