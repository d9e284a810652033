// Package extract turns post containers from a rendered feed page into
// structured records. Each semantic field has its own extraction strategy
// that walks the selector registry in order and falls back to text-pattern
// heuristics, so a markup change that rots one selector degrades a single
// field instead of the whole record.
package extract

import (
	"log"

	"github.com/tmcewan/feedexport/markdown"
	"github.com/tmcewan/feedexport/selectors"
)

// Extractor runs the field extractors and the post assembler over a parsed
// feed page. It holds no per-run state; the sequence counter lives in the
// ExtractAll accumulator.
type Extractor struct {
	reg    *selectors.Registry
	origin string
	debug  *log.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithOrigin sets the host origin used to absolutize relative URLs.
func WithOrigin(origin string) Option {
	return func(e *Extractor) { e.origin = origin }
}

// WithDebugLog enables per-field debug logging.
func WithDebugLog(l *log.Logger) Option {
	return func(e *Extractor) { e.debug = l }
}

// New creates an Extractor over the given registry. A nil registry selects
// the built-in defaults.
func New(reg *selectors.Registry, opts ...Option) *Extractor {
	if reg == nil {
		reg = selectors.Default()
	}
	e := &Extractor{
		reg:    reg,
		origin: markdown.DefaultOrigin,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extractor) debugf(format string, args ...any) {
	if e.debug != nil {
		e.debug.Printf(format, args...)
	}
}
