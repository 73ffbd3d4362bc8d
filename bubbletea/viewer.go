// Package bubbletea provides a terminal UI viewer that highlights color
// literals using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/convert"
	"github.com/fwojciec/colorhl/debounce"
	hl "github.com/fwojciec/colorhl/lipgloss"
	"github.com/fwojciec/colorhl/search"
)

// redrawMsg reports that a debounced pass has changed the highlights.
type redrawMsg struct{}

// Model is the Bubble Tea model for viewing a document's colors.
type Model struct {
	doc colorhl.Document
	s   *session

	// Collaborators
	registry  *convert.Registry
	clipboard colorhl.Clipboard

	// UI state
	viewport   viewport.Model
	keymap     KeyMap
	palette    colorhl.Palette
	renderer   *lipgloss.Renderer
	width      int
	ready      bool
	pendingKey string
	status     string
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	renderer         *lipgloss.Renderer
	theme            colorhl.Theme
	settings         colorhl.Settings
	languageDetector colorhl.LanguageDetector
	tokenizer        colorhl.Tokenizer
	scheduler        *debounce.Scheduler
	clipboard        colorhl.Clipboard
	logger           *slog.Logger
	status           string
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t colorhl.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithSettings sets which triggers run and how they render.
func WithSettings(s colorhl.Settings) ModelOption {
	return func(cfg *modelConfig) {
		cfg.settings = s
	}
}

// WithLanguageDetector sets the language detector for syntax highlighting.
func WithLanguageDetector(d colorhl.LanguageDetector) ModelOption {
	return func(cfg *modelConfig) {
		cfg.languageDetector = d
	}
}

// WithTokenizer sets the tokenizer for syntax highlighting.
func WithTokenizer(t colorhl.Tokenizer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.tokenizer = t
	}
}

// WithScheduler runs reconciliation passes on a debounce scheduler instead
// of inside Update. The caller owns and closes the scheduler.
func WithScheduler(s *debounce.Scheduler) ModelOption {
	return func(cfg *modelConfig) {
		cfg.scheduler = s
	}
}

// WithClipboard enables copying the color under the cursor.
func WithClipboard(c colorhl.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithLogger sets the logger for reconciliation passes.
func WithLogger(l *slog.Logger) ModelOption {
	return func(cfg *modelConfig) {
		cfg.logger = l
	}
}

// WithStatus shows msg in the status bar until the first key press.
func WithStatus(msg string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.status = msg
	}
}

// NewModel creates a Model for doc, finding colors with searcher.
func NewModel(doc colorhl.Document, searcher *search.Searcher, opts ...ModelOption) Model {
	cfg := &modelConfig{settings: colorhl.DefaultSettings()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.renderer == nil {
		cfg.renderer = lipgloss.DefaultRenderer()
	}
	if cfg.theme == nil {
		cfg.theme = hl.DefaultTheme()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	palette := cfg.theme.Palette()

	s := newSession(doc, searcher, cfg, palette)
	s.loaded()

	return Model{
		doc:       doc,
		s:         s,
		registry:  searcher.Registry(),
		clipboard: cfg.clipboard,
		keymap:    DefaultKeyMap(),
		palette:   palette,
		renderer:  cfg.renderer,
		status:    cfg.status,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.s.scheduler == nil {
		return nil
	}
	return m.waitForRedraw()
}

func (m Model) waitForRedraw() tea.Cmd {
	ch := m.s.redraw
	return func() tea.Msg {
		<-ch
		return redrawMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""

		// Handle multi-key sequences (gg for go to top)
		if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = ""
			m.moveTo(0)
			return m, nil
		}

		// Check for start of multi-key sequence
		if key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = "g"
			return m, nil
		}

		// Clear pending key on any other key press
		m.pendingKey = ""

		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.s.close()
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Up):
			m.moveLines(-1)
		case key.Matches(msg, m.keymap.Down):
			m.moveLines(1)
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.moveLines(-max(1, m.viewport.Height/2))
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.moveLines(max(1, m.viewport.Height/2))
		case key.Matches(msg, m.keymap.Left):
			m.moveTo(m.cursor() - 1)
		case key.Matches(msg, m.keymap.Right):
			m.moveTo(m.cursor() + 1)
		case key.Matches(msg, m.keymap.LineStart):
			m.moveTo(m.lineOfCursor().A)
		case key.Matches(msg, m.keymap.LineEnd):
			m.moveTo(m.lineOfCursor().B)
		case key.Matches(msg, m.keymap.GotoBottom):
			m.s.mu.Lock()
			last := m.s.buf.Line(m.s.buf.LineCount() - 1).A
			m.s.mu.Unlock()
			m.moveTo(last)
		case key.Matches(msg, m.keymap.NextColor):
			m.gotoColor(true)
		case key.Matches(msg, m.keymap.PrevColor):
			m.gotoColor(false)
		case key.Matches(msg, m.keymap.CycleFormat):
			m.cycleFormat()
		case key.Matches(msg, m.keymap.Copy):
			m.copyColor()
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)

	case redrawMsg:
		m.refresh()
		return m, m.waitForRedraw()

	case tea.WindowSizeMsg:
		statusBarHeight := 1
		m.width = msg.Width

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusBarHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusBarHeight
		}
		m.refresh()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

// refresh re-renders the buffer into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.s.mu.Lock()
	content := m.s.render(m.renderer, m.palette)
	m.s.mu.Unlock()
	m.viewport.SetContent(content)
}

func (m Model) cursor() int {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.cursor()
}

func (m Model) lineOfCursor() colorhl.Span {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.buf.Line(m.s.buf.LineOf(m.s.cursor()))
}

// moveTo places the caret at offset and scrolls it into view.
func (m *Model) moveTo(offset int) {
	m.s.mu.Lock()
	m.s.buf.Select(colorhl.Point(offset))
	line := m.s.buf.LineOf(m.s.cursor())
	m.s.mu.Unlock()

	m.s.moved()
	m.follow(line)
	m.refresh()
}

// moveLines moves the caret n lines, keeping its column where possible.
func (m *Model) moveLines(n int) {
	m.s.mu.Lock()
	cursor := m.s.cursor()
	line := m.s.buf.LineOf(cursor)
	col := cursor - m.s.buf.Line(line).A
	target := m.s.buf.Offset(max(0, min(line+n, m.s.buf.LineCount()-1)), col)
	m.s.mu.Unlock()

	m.moveTo(target)
}

func (m *Model) follow(line int) {
	if !m.ready || m.viewport.Height <= 0 {
		return
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// gotoColor moves the caret to the start of the next (or previous) literal.
func (m *Model) gotoColor(forward bool) {
	m.s.mu.Lock()
	cursor := m.s.cursor()
	target := -1
	if forward {
		from := cursor + 1
		if cur, ok := m.s.matchAt(cursor); ok {
			from = cur.Span.B
		}
		for match := range m.s.searcher.InView(m.s.buf, colorhl.Span{A: min(from, m.s.buf.Len()), B: m.s.buf.Len()}) {
			target = match.Span.A
			break
		}
	} else {
		for match := range m.s.searcher.InView(m.s.buf, colorhl.Span{A: 0, B: cursor}) {
			if match.Span.A < cursor {
				target = match.Span.A
			}
		}
	}
	m.s.mu.Unlock()

	if target < 0 {
		m.status = "no more colors"
		return
	}
	m.moveTo(target)
}

// cycleFormat rewrites the literal under the caret in the next format of
// its family.
func (m *Model) cycleFormat() {
	m.s.mu.Lock()
	match, ok := m.s.matchAt(m.s.cursor())
	if !ok {
		m.s.mu.Unlock()
		m.status = "no color under cursor"
		return
	}
	format, ok := m.registry.Next(match.Format, match.Color)
	if !ok {
		m.s.mu.Unlock()
		m.status = "no other format for " + match.Format
		return
	}
	text, err := m.registry.FromColor(match.Color, format)
	if err != nil {
		m.s.mu.Unlock()
		m.status = "convert failed: " + err.Error()
		return
	}
	m.s.buf.Replace(match.Span, text)
	m.s.buf.Select(colorhl.Point(match.Span.A))
	m.s.retokenize()
	m.s.mu.Unlock()

	m.s.edited(len([]rune(text)) - match.Span.Len())
	m.status = "converted to " + format
	m.refresh()
}

// copyColor copies the canonical form of the color under the caret.
func (m *Model) copyColor() {
	if m.clipboard == nil {
		m.status = "clipboard unavailable"
		return
	}
	m.s.mu.Lock()
	match, ok := m.s.matchAt(m.s.cursor())
	m.s.mu.Unlock()
	if !ok {
		m.status = "no color under cursor"
		return
	}
	if err := m.clipboard.Copy(match.Color.Hex()); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied " + match.Color.Hex()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	offset := m.offsetAt(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.s.hovered(offset)
		m.refresh()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && offset >= 0:
		m.moveTo(offset)
	}
}

// offsetAt maps a screen cell to a buffer offset, or -1 outside the text.
func (m Model) offsetAt(x, y int) int {
	if !m.ready || y < 0 || y >= m.viewport.Height {
		return -1
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	line := m.viewport.YOffset + y
	if line >= m.s.buf.LineCount() {
		return -1
	}
	span := m.s.buf.Line(line)
	i, ok := runeAtColumn(m.s.buf.Substr(span), x-m.s.gutterWidth())
	if !ok {
		return -1
	}
	return span.A + i
}

// runeAtColumn returns the index of the rune drawn at display column col,
// with tabs expanded.
func runeAtColumn(text string, col int) (int, bool) {
	if col < 0 {
		return 0, false
	}
	pos := 0
	for i, r := range []rune(text) {
		w := lipgloss.Width(string(r))
		if r == '\t' {
			w = len(hl.ExpandTabs("\t", pos))
		}
		if col < pos+w {
			return i, true
		}
		pos += w
	}
	return 0, false
}

// newStyle creates a new lipgloss style using the model's renderer.
func (m Model) newStyle() lipgloss.Style {
	return m.renderer.NewStyle()
}

// statusBarView renders the status bar with the caret position and the
// color under it.
func (m Model) statusBarView() string {
	barStyle := m.newStyle().
		Background(lipgloss.Color(m.palette.UIBackground)).
		Foreground(lipgloss.Color(m.palette.Foreground))

	dimStyle := m.newStyle().
		Background(lipgloss.Color(m.palette.UIBackground)).
		Foreground(lipgloss.Color(m.palette.Comment))

	sepStyle := m.newStyle().
		Background(lipgloss.Color(m.palette.UIBackground)).
		Foreground(lipgloss.Color(m.palette.UIForeground))

	m.s.mu.Lock()
	cursor := m.s.cursor()
	line := m.s.buf.LineOf(cursor)
	col := cursor - m.s.buf.Line(line).A
	match, onColor := m.s.matchAt(cursor)
	m.s.mu.Unlock()

	name := m.doc.Path
	if name == "" {
		name = "[no name]"
	}
	sep := sepStyle.Render(" │ ")
	content := barStyle.Render(name) + sep +
		barStyle.Render(fmt.Sprintf("Ln %d, Col %d", line+1, col+1)) + sep

	switch {
	case m.status != "":
		content += barStyle.Render(m.status) + sep
	case onColor:
		swatch := m.newStyle().Foreground(lipgloss.Color(match.Color.RGBHex())).
			Background(lipgloss.Color(m.palette.UIBackground)).Render("■")
		content += swatch + barStyle.Render(fmt.Sprintf(" %s %s", match.Format, match.Color.Hex())) + sep
	}

	content += barStyle.Render(m.scrollPosition()) + sep +
		dimStyle.Render("j/k:move  n/N:color  c:cycle  y:copy  q:quit") +
		barStyle.Render("  ")

	// Right-align by padding left side with background
	contentWidth := lipgloss.Width(content)
	if m.width > contentWidth {
		padding := barStyle.Render(strings.Repeat(" ", m.width-contentWidth))
		content = padding + content
	}

	return content
}

// scrollPosition returns a string indicating the scroll position.
func (m Model) scrollPosition() string {
	if m.viewport.AtTop() {
		return "Top"
	}
	if m.viewport.AtBottom() {
		return "Bot"
	}
	percent := int(m.viewport.ScrollPercent() * 100)
	return fmt.Sprintf("%2d%%", percent)
}

// Compile-time check that Viewer implements colorhl.Viewer.
var _ colorhl.Viewer = (*Viewer)(nil)

// Viewer implements colorhl.Viewer using a Bubble Tea TUI.
type Viewer struct {
	searcher *search.Searcher
	opts     []ModelOption
}

// NewViewer creates a new Viewer.
func NewViewer(searcher *search.Searcher, opts ...ModelOption) *Viewer {
	return &Viewer{searcher: searcher, opts: opts}
}

// View displays the document and blocks until the user exits.
func (v *Viewer) View(ctx context.Context, doc colorhl.Document) error {
	m := NewModel(doc, v.searcher, v.opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
