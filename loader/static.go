package loader

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/tmcewan/feedexport/selectors"
)

// SnapshotPage adapts an already-rendered, static document to the Page
// interface. A snapshot has no live scrolling and its controls are inert,
// so the scroller converges after a single pass; this is the binding used
// when exporting from a saved HTML file.
type SnapshotPage struct {
	doc *goquery.Document
	reg *selectors.Registry
}

// NewSnapshotPage wraps a parsed document. A nil registry selects the
// built-in defaults.
func NewSnapshotPage(doc *goquery.Document, reg *selectors.Registry) *SnapshotPage {
	if reg == nil {
		reg = selectors.Default()
	}
	return &SnapshotPage{doc: doc, reg: reg}
}

// PostCount counts post containers in the snapshot.
func (p *SnapshotPage) PostCount() (int, error) {
	return p.doc.Find(p.reg.PostContainers).Length(), nil
}

// Metrics reports a zero-height page: a snapshot has nowhere to scroll.
func (p *SnapshotPage) Metrics() (ScrollMetrics, error) {
	return ScrollMetrics{}, nil
}

// ScrollTo is a no-op on a snapshot.
func (p *SnapshotPage) ScrollTo(int) error {
	return nil
}

// LoadingIndicatorCount counts loading placeholders present in the snapshot
// markup. They never clear on a static page; the scroller's bounded poll is
// what moves past them.
func (p *SnapshotPage) LoadingIndicatorCount() (int, error) {
	return p.doc.Find(p.reg.LoadingIndicators).Length(), nil
}

// HasLoadMore always reports false. A load-more button may match the
// registry's ShowMoreButtons descriptors, but a snapshot's controls cannot
// trigger loading, so advertising one would stall the scroller until its
// safety bound. Live-page bindings resolve those descriptors for real.
func (p *SnapshotPage) HasLoadMore() (bool, error) {
	return false, nil
}

// ActivateLoadMore never activates anything on a snapshot.
func (p *SnapshotPage) ActivateLoadMore() (bool, error) {
	return false, nil
}
