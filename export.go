// Package feedexport extracts structured post data from a social feed's
// rendered markup and assembles a single Markdown export document. The core
// exposes three operations: load everything (drive lazy loading to
// convergence), extract everything (post containers to structured records),
// and render (records to one document).
package feedexport

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tmcewan/feedexport/extract"
	"github.com/tmcewan/feedexport/loader"
	"github.com/tmcewan/feedexport/markdown"
	"github.com/tmcewan/feedexport/post"
	"github.com/tmcewan/feedexport/selectors"
)

// Exporter ties the feed loader, the extractor, and the document renderer
// together behind the core invocation surface. It is stateless across
// invocations; every call works from the page it is handed.
type Exporter struct {
	reg       *selectors.Registry
	origin    string
	sourceURL string
	debug     *log.Logger
	now       func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithRegistry substitutes a selector registry (e.g. one with overrides
// applied).
func WithRegistry(reg *selectors.Registry) Option {
	return func(e *Exporter) {
		if reg != nil {
			e.reg = reg
		}
	}
}

// WithSourceURL sets the export origin reference written into the document
// header.
func WithSourceURL(url string) Option {
	return func(e *Exporter) { e.sourceURL = url }
}

// WithOrigin sets the host origin used to absolutize relative links.
func WithOrigin(origin string) Option {
	return func(e *Exporter) { e.origin = origin }
}

// WithDebugLog enables the extraction pipeline's debug logging.
func WithDebugLog(l *log.Logger) Option {
	return func(e *Exporter) { e.debug = l }
}

// withClock pins the export date; tests use it.
func withClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New creates an Exporter with the built-in selector registry.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		reg:       selectors.Default(),
		origin:    markdown.DefaultOrigin,
		sourceURL: markdown.DefaultOrigin + "/feed/",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadAllPosts drives the page's lazy loading to convergence and returns
// the total number of posts found. The optional progress callback fires
// zero or more times with phase "scrolling" and at most once more with
// phase "completed".
func (e *Exporter) LoadAllPosts(ctx context.Context, page loader.Page, onProgress loader.ProgressFunc) (int, error) {
	return loader.NewScroller(page).LoadAll(ctx, onProgress)
}

// ExtractAllPosts scans all post containers in document order and returns
// the structured records, zero or more.
func (e *Exporter) ExtractAllPosts(doc *goquery.Document) []post.Record {
	return e.extractor().ExtractAll(doc)
}

// RenderDocument serializes records into the export document.
func (e *Exporter) RenderDocument(records []post.Record) string {
	return markdown.RenderDocument(records, e.sourceURL, e.now())
}

// Filename returns the conventional filename for a document rendered now.
func (e *Exporter) Filename() string {
	return markdown.Filename(e.now())
}

// ExportSnapshot parses rendered HTML and runs the full pipeline over it:
// extract everything, render one document. The load-everything phase is
// skipped since a snapshot cannot load more.
func (e *Exporter) ExportSnapshot(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	records := e.ExtractAllPosts(doc)
	return &Document{
		Records:  records,
		Markdown: e.RenderDocument(records),
		Filename: e.Filename(),
	}, nil
}

// Document is the result of a full export.
type Document struct {
	Records  []post.Record `json:"posts"`
	Markdown string        `json:"markdown"`
	Filename string        `json:"filename"`
}

func (e *Exporter) extractor() *extract.Extractor {
	opts := []extract.Option{extract.WithOrigin(e.origin)}
	if e.debug != nil {
		opts = append(opts, extract.WithDebugLog(e.debug))
	}
	return extract.New(e.reg, opts...)
}
