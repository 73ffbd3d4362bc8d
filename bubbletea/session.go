package bubbletea

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/buffer"
	"github.com/fwojciec/colorhl/debounce"
	hl "github.com/fwojciec/colorhl/lipgloss"
	"github.com/fwojciec/colorhl/listener"
	"github.com/fwojciec/colorhl/search"
)

// Scheduler targets, one per trigger kind.
const (
	targetContent   = "content"
	targetSelection = "selection"
	targetHover     = "hover"
)

// session is the state shared by every copy of a Model. Listeners may run
// on the scheduler's worker, so mu guards the buffer, the listeners and
// everything they render into.
type session struct {
	mu sync.Mutex

	buf       *buffer.Buffer
	searcher  *search.Searcher
	tokenizer colorhl.Tokenizer
	language  string
	tokens    [][]colorhl.Token

	content   *listener.Content
	selection *listener.Selection
	hover     *listener.Hover

	// strategies in drawing order: content, selection, hover.
	strategies []*hl.Strategies
	lines      *hl.LineRenderer

	scheduler *debounce.Scheduler
	redraw    chan struct{}

	// rescan is set by an edit that shifted later text and cleared by the
	// next content pass, which must then rescan the whole buffer.
	rescan bool
}

func newSession(doc colorhl.Document, searcher *search.Searcher, cfg *modelConfig, palette colorhl.Palette) *session {
	buf := buffer.New(doc.Text)
	buf.Select(colorhl.Point(0))

	s := &session{
		buf:       buf,
		searcher:  searcher,
		tokenizer: cfg.tokenizer,
		scheduler: cfg.scheduler,
		redraw:    make(chan struct{}, 1),
	}
	if cfg.languageDetector != nil {
		s.language = cfg.languageDetector.DetectFromPath(doc.Path)
	}

	set := cfg.settings
	content := hl.NewStrategies(set.Content, buf.LineOf, cfg.renderer)
	selection := hl.NewStrategies(set.Selection, buf.LineOf, cfg.renderer)
	hover := hl.NewStrategies(set.Hover, buf.LineOf, cfg.renderer)
	s.strategies = []*hl.Strategies{content, selection, hover}

	s.content = listener.NewContent(buf, searcher, content.Highlighter(),
		listener.WithEnabled(set.Content.Enabled), listener.WithLogger(cfg.logger))
	s.selection = listener.NewSelection(buf, searcher, selection.Highlighter(),
		listener.WithEnabled(set.Selection.Enabled), listener.WithLogger(cfg.logger))
	s.hover = listener.NewHover(buf, searcher, hover.Highlighter(),
		listener.WithEnabled(set.Hover.Enabled), listener.WithLogger(cfg.logger))

	s.lines = hl.NewLineRenderer(cfg.renderer, palette, content.Highlight, selection.Highlight, hover.Highlight)
	s.retokenize()
	return s
}

// run executes fn under the session lock. With a scheduler, fn is
// debounced per target and a redraw is requested once it has run.
// Callers must not hold the lock.
func (s *session) run(target string, fn func()) {
	if s.scheduler == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		fn()
		return
	}
	s.scheduler.Schedule(target, func() {
		s.mu.Lock()
		fn()
		s.mu.Unlock()
		select {
		case s.redraw <- struct{}{}:
		default:
		}
	})
}

// loaded renders the whole buffer.
func (s *session) loaded() {
	s.run(targetContent, s.rescanContent)
	s.run(targetSelection, s.selection.Changed)
}

// edited reconciles after an edit at the caret. An edit that moves later
// text shifts every region after it, so only a same-length edit can be
// reconciled line-locally. A debounced pass replaces the queued one, so a
// pending rescan outlives later same-length edits.
func (s *session) edited(delta int) {
	if delta != 0 {
		s.mu.Lock()
		s.rescan = true
		s.mu.Unlock()
	}
	s.run(targetContent, s.reconcileContent)
	s.run(targetSelection, s.selection.Changed)
	s.run(targetHover, s.hover.Leave)
}

// reconcileContent runs the content pass owed since the last one. Callers
// hold the lock.
func (s *session) reconcileContent() {
	if s.rescan {
		s.rescanContent()
		return
	}
	s.content.Modified()
}

// rescanContent reconciles the whole buffer. Callers hold the lock.
func (s *session) rescanContent() {
	s.rescan = false
	s.content.Loaded()
}

func (s *session) moved() {
	s.run(targetSelection, s.selection.Changed)
}

func (s *session) hovered(offset int) {
	if offset < 0 {
		s.run(targetHover, s.hover.Leave)
		return
	}
	s.run(targetHover, func() { s.hover.Hover(offset) })
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.Close()
	s.selection.Close()
	s.hover.Close()
}

// retokenize refreshes syntax tokens. Callers hold the lock.
func (s *session) retokenize() {
	if s.tokenizer == nil || s.language == "" {
		s.tokens = nil
		return
	}
	s.tokens = s.tokenizer.TokenizeLines(s.language, s.buf.String())
}

// cursor returns the caret offset. Callers hold the lock.
func (s *session) cursor() int {
	if sels := s.buf.Selection(); len(sels) > 0 {
		return sels[0].B
	}
	return 0
}

// matchAt returns the literal at offset. Callers hold the lock.
func (s *session) matchAt(offset int) (colorhl.Match, bool) {
	line := s.buf.Line(s.buf.LineOf(offset))
	return s.searcher.At(s.buf.Substr(line), line, offset)
}

// gutterWidth returns the width of the line number column plus the marker
// cell and its padding.
func (s *session) gutterWidth() int {
	return digitWidth(s.buf.LineCount()) + 3
}

// render draws every line. Callers hold the lock.
func (s *session) render(r *lipgloss.Renderer, palette colorhl.Palette) string {
	lineNumStyle := r.NewStyle().Foreground(lipgloss.Color(palette.UIForeground))
	width := digitWidth(s.buf.LineCount())
	cursor := s.cursor()

	var sb strings.Builder
	for i := range s.buf.LineCount() {
		if i > 0 {
			sb.WriteString("\n")
		}
		line := s.buf.Line(i)
		var tokens []colorhl.Token
		if i < len(s.tokens) {
			tokens = s.tokens[i]
		}

		sb.WriteString(lineNumStyle.Render(fmt.Sprintf("%*d", width, i+1)))
		sb.WriteString(" ")
		sb.WriteString(s.marker(i))
		sb.WriteString(" ")
		sb.WriteString(s.lines.Render(s.buf.Substr(line), line.A, tokens, cursor))
		if ann := s.annotation(i); ann != "" {
			sb.WriteString("  ")
			sb.WriteString(ann)
		}
	}
	return sb.String()
}

// marker returns the topmost gutter marker of a line.
func (s *session) marker(line int) string {
	for i := len(s.strategies) - 1; i >= 0; i-- {
		if g := s.strategies[i].Gutter; g != nil {
			if m := g.Marker(line); m != " " {
				return m
			}
		}
	}
	return " "
}

func (s *session) annotation(line int) string {
	var parts []string
	for _, st := range s.strategies {
		if st.Annotation == nil {
			continue
		}
		if text := st.Annotation.Text(line); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "  ")
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}
