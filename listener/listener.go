// Package listener decides which color regions to render for each trigger
// kind: selections, buffer content and pointer hover.
//
// Each listener owns one highlight.Cache. Listeners are not safe for
// concurrent use; hosts that run them off the event loop serialize calls,
// for example through a debounce.Scheduler.
package listener

import (
	"io"
	"log/slog"

	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/highlight"
	"github.com/fwojciec/colorhl/search"
)

// Option configures a listener.
type Option func(*options)

type options struct {
	enabled bool
	logger  *slog.Logger
}

// WithEnabled turns a listener on or off. A disabled listener ignores
// every event. Listeners are enabled by default.
func WithEnabled(enabled bool) Option {
	return func(o *options) {
		o.enabled = enabled
	}
}

// WithLogger sets the logger for pass summaries. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

type base struct {
	name     string
	view     colorhl.View
	searcher *search.Searcher
	cache    *highlight.Cache
	enabled  bool
	logger   *slog.Logger
}

func newBase(name string, v colorhl.View, s *search.Searcher, hl colorhl.Highlighter, opts []Option) base {
	o := options{enabled: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return base{
		name:     name,
		view:     v,
		searcher: s,
		cache:    highlight.NewCache(hl),
		enabled:  o.enabled,
		logger:   o.logger.With("listener", name),
	}
}

// Enabled reports whether the listener reacts to events.
func (b *base) Enabled() bool {
	return b.enabled
}

// Regions returns the regions currently rendered by the listener.
func (b *base) Regions() []colorhl.Region {
	return b.cache.Regions()
}

// Close unhighlights everything the listener rendered and finishes the
// pass even when nothing was rendered.
func (b *base) Close() {
	b.cache.Clear()
}

// scan collects the regions of every literal inside spans.
func (b *base) scan(spans []colorhl.Span, keep func(colorhl.Match) bool) []colorhl.Region {
	var out []colorhl.Region
	for _, s := range spans {
		for m := range b.searcher.InView(b.view, s) {
			if keep == nil || keep(m) {
				out = append(out, colorhl.Region{Span: m.Span, Color: m.Color})
			}
		}
	}
	return out
}

// selections returns the normalized selections.
func (b *base) selections() []colorhl.Span {
	raw := b.view.Selection()
	out := make([]colorhl.Span, len(raw))
	for i, s := range raw {
		out[i] = s.Normalize()
	}
	return out
}

// selectedLines returns the distinct lines under the selections.
func (b *base) selectedLines(sels []colorhl.Span) []colorhl.Span {
	var lines []colorhl.Span
	for _, s := range sels {
		lines = append(lines, b.view.Lines(s)...)
	}
	return colorhl.Deduplicate(lines)
}

func (b *base) logPass(event string, regions []colorhl.Region) {
	b.logger.Debug("reconciled", "event", event, "desired", len(regions), "rendered", b.cache.Len())
}

// Selection renders the literals touched by a selection or caret.
type Selection struct {
	base
}

// NewSelection returns a selection listener rendering through hl.
func NewSelection(v colorhl.View, s *search.Searcher, hl colorhl.Highlighter, opts ...Option) *Selection {
	return &Selection{base: newBase("selection", v, s, hl, opts)}
}

// Changed reconciles after the selection moved or the text under it
// changed.
func (l *Selection) Changed() {
	if !l.enabled {
		return
	}
	sels := l.selections()
	regions := l.scan(l.selectedLines(sels), func(m colorhl.Match) bool {
		return colorhl.IntersectsAny(m.Span, sels)
	})
	l.cache.Reconcile(regions)
	l.logPass("changed", regions)
}

// Content renders every literal in the buffer.
type Content struct {
	base
}

// NewContent returns a content listener rendering through hl.
func NewContent(v colorhl.View, s *search.Searcher, hl colorhl.Highlighter, opts ...Option) *Content {
	return &Content{base: newBase("content", v, s, hl, opts)}
}

// Loaded rescans the whole buffer.
func (l *Content) Loaded() {
	if !l.enabled {
		return
	}
	regions := l.scan([]colorhl.Span{{A: 0, B: l.view.Len()}}, nil)
	l.cache.Reconcile(regions)
	l.logPass("loaded", regions)
}

// Modified rescans only the lines under the selections, where edits
// happen. Regions on other lines stay as they are.
func (l *Content) Modified() {
	if !l.enabled {
		return
	}
	lines := l.selectedLines(l.selections())
	regions := l.scan(lines, nil)
	l.cache.ReconcileWithin(regions, lines)
	l.logPass("modified", regions)
}

// Hover renders the literal under the pointer.
type Hover struct {
	base
}

// NewHover returns a hover listener rendering through hl.
func NewHover(v colorhl.View, s *search.Searcher, hl colorhl.Highlighter, opts ...Option) *Hover {
	return &Hover{base: newBase("hover", v, s, hl, opts)}
}

// Hover renders the literal containing point, if any, replacing the
// previous one.
func (l *Hover) Hover(point int) {
	if !l.enabled {
		return
	}
	var regions []colorhl.Region
	for _, line := range l.view.Lines(colorhl.Point(point)) {
		if m, ok := l.searcher.At(l.view.Substr(line), line, point); ok {
			regions = append(regions, colorhl.Region{Span: m.Span, Color: m.Color})
		}
	}
	l.cache.Reconcile(regions)
	l.logPass("hover", regions)
}

// Leave clears the hover highlight.
func (l *Hover) Leave() {
	if !l.enabled {
		return
	}
	l.Close()
}
