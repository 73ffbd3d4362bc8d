package fs

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/colorhl"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	defaultIconSize = 16
	placeholderName = "placeholder.png"

	// flushWorkers bounds concurrent icon writes.
	flushWorkers = 4

	checkerCell  = 4
	checkerLight = 0xCC
	checkerDark  = 0x99
)

// IconStore caches gutter icons as PNG files, one per color and shape.
//
// Icon never blocks on the file system: a missing icon is queued and the
// placeholder is served until Flush has written it.
type IconStore struct {
	dir    string
	shape  colorhl.GutterStyle
	size   int
	logger *slog.Logger
	encode func(io.Writer, image.Image) error

	// mu guards icons and the deferred write queue.
	mu     sync.Mutex
	icons  map[colorhl.Color]string
	queue  []colorhl.Color
	queued map[colorhl.Color]bool

	group singleflight.Group
}

// IconOption configures an IconStore.
type IconOption func(*IconStore)

// WithIconSize sets the icon edge length in pixels.
func WithIconSize(px int) IconOption {
	return func(s *IconStore) {
		if px > 0 {
			s.size = px
		}
	}
}

// WithIconShape sets the icon shape.
func WithIconShape(shape colorhl.GutterStyle) IconOption {
	return func(s *IconStore) {
		if shape.Valid() {
			s.shape = shape
		}
	}
}

// WithIconLogger sets the logger generation failures are reported to.
func WithIconLogger(l *slog.Logger) IconOption {
	return func(s *IconStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEncoder replaces the PNG encoder.
func WithEncoder(fn func(io.Writer, image.Image) error) IconOption {
	return func(s *IconStore) {
		if fn != nil {
			s.encode = fn
		}
	}
}

// NewIconStore returns a store writing icons into dir.
func NewIconStore(dir string, opts ...IconOption) *IconStore {
	s := &IconStore{
		dir:    dir,
		shape:  colorhl.GutterCircle,
		size:   defaultIconSize,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		encode: png.Encode,
		icons:  make(map[colorhl.Color]string),
		queued: make(map[colorhl.Color]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Placeholder returns the path of the icon served for pending and failed
// colors.
func (s *IconStore) Placeholder() string {
	return filepath.Join(s.dir, placeholderName)
}

// Icon returns the icon path for c. Unknown colors are queued for the next
// Flush and get the placeholder meanwhile.
func (s *IconStore) Icon(c colorhl.Color) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if path, ok := s.icons[c]; ok {
		return path
	}
	if !s.queued[c] {
		s.queued[c] = true
		s.queue = append(s.queue, c)
	}
	return s.Placeholder()
}

// Pending returns the number of icons waiting for Flush.
func (s *IconStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Flush writes every queued icon. A failed icon is logged and resolves to
// the placeholder. Icons not written before ctx is done stay queued.
func (s *IconStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()
	if len(queue) == 0 {
		return nil
	}

	s.ensurePlaceholder()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(flushWorkers)
	for _, c := range queue {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				s.requeue(c)
				return err
			}
			path, err := s.Generate(c)
			if err != nil {
				s.logger.Warn("icon generation failed", "color", c.Hex(), "error", err)
				path = s.Placeholder()
			}
			s.resolve(c, path)
			return nil
		})
	}
	return g.Wait()
}

func (s *IconStore) requeue(c colorhl.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, c)
}

func (s *IconStore) resolve(c colorhl.Color, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.icons[c] = path
	delete(s.queued, c)
}

// Generate writes the icon for c unless it already exists and returns its
// path. Concurrent calls for one icon share a single write.
func (s *IconStore) Generate(c colorhl.Color) (string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s.png", s.shape, strings.TrimPrefix(c.Hex(), "#")))
	return s.writeOnce(path, c)
}

func (s *IconStore) ensurePlaceholder() {
	if _, err := s.writeOnce(s.Placeholder(), colorhl.Color{}); err != nil {
		s.logger.Warn("placeholder generation failed", "path", s.Placeholder(), "error", err)
	}
}

func (s *IconStore) writeOnce(path string, c colorhl.Color) (string, error) {
	_, err, _ := s.group.Do(path, func() (any, error) {
		if _, err := os.Stat(path); err == nil {
			return nil, nil
		}
		return nil, s.write(path, s.draw(c))
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// write encodes img into a temporary file and renames it into place, so
// readers never see a partial icon.
func (s *IconStore) write(path string, img image.Image) (err error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating icon directory: %w", err)
	}
	f, err := os.CreateTemp(s.dir, ".icon-*")
	if err != nil {
		return fmt.Errorf("creating icon file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err := s.encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding icon: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing icon file: %w", err)
	}
	return os.Rename(f.Name(), path)
}

// draw paints c inside the icon shape. Translucent colors are blended over
// a checkerboard, so the zero color draws the bare checkerboard.
func (s *IconStore) draw(c colorhl.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, s.size, s.size))
	for y := range s.size {
		for x := range s.size {
			if !s.inside(x, y) {
				continue
			}
			img.SetNRGBA(x, y, blend(c, checker(x, y)))
		}
	}
	return img
}

func (s *IconStore) inside(x, y int) bool {
	switch s.shape {
	case colorhl.GutterSquare:
		return x > 0 && y > 0 && x < s.size-1 && y < s.size-1
	case colorhl.GutterFill:
		return true
	default:
		r := float64(s.size)/2 - 0.5
		dx, dy := float64(x)-r, float64(y)-r
		return dx*dx+dy*dy <= r*r
	}
}

func checker(x, y int) uint8 {
	if (x/checkerCell+y/checkerCell)%2 == 0 {
		return checkerLight
	}
	return checkerDark
}

func blend(c colorhl.Color, bg uint8) color.NRGBA {
	mix := func(v uint8) uint8 {
		return uint8((int(v)*int(c.A) + int(bg)*(255-int(c.A)) + 127) / 255)
	}
	return color.NRGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 0xFF}
}
