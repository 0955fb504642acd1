package canvashost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ByLCY/caseframe/host"
	"github.com/ByLCY/caseframe/layout"
)

var (
	// ErrClosed is returned once the UI surface has been torn down.
	ErrClosed = errors.New("canvas host: ui closed")
	// ErrFontNotLoaded is returned when text is created with a font that was never requested.
	ErrFontNotLoaded = errors.New("canvas host: font not loaded")
)

const (
	defaultViewWidth  = 1440.0
	defaultViewHeight = 900.0
	maxZoom           = 1.0
	minZoom           = 0.01
)

// Host is an offline design canvas built on github.com/tdewolff/canvas.
// Coordinates are design units (pt); drawing happens in mm.
type Host struct {
	fontDir     string
	systemFonts bool
	viewWidth   float64
	viewHeight  float64
	typesetter  layout.Typesetter
	notifier    func(host.Notice)
	onClose     func()
	logger      *log.Logger

	fonts *fontRegistry

	mu        sync.Mutex
	ui        *host.UIOptions
	closed    bool
	elements  []*Element
	selection []string
	viewport  Viewport
	notices   []host.Notice
}

var (
	_ host.Host         = (*Host)(nil)
	_ layout.Typesetter = (*Host)(nil)
)

// Options configures the canvas host.
type Options struct {
	// FontDir is searched for <Family>-<Weight>.ttf|otf and <Family>/static/<Family>-<Weight>.ttf.
	FontDir string
	// SystemFonts enables lookup through the installed system fonts.
	SystemFonts bool
	// ViewWidth and ViewHeight are the visible canvas area used for zoom-to-fit.
	ViewWidth  float64
	ViewHeight float64
	// Typesetter overrides text measurement; the host measures with its own fonts when nil.
	Typesetter layout.Typesetter
	Notifier   func(host.Notice)
	OnClose    func()
	Logger     *log.Logger
}

// Viewport is the visible region after framing.
type Viewport struct {
	CenterX float64     `json:"centerX"`
	CenterY float64     `json:"centerY"`
	Zoom    float64     `json:"zoom"`
	Bounds  layout.Rect `json:"bounds"`
}

// Element is a text node on the canvas.
type Element struct {
	id     string
	desc   layout.Descriptor
	lines  []layout.TextLine
	bounds layout.Rect
}

func (e *Element) ID() string          { return e.id }
func (e *Element) Name() string        { return e.desc.Name }
func (e *Element) Bounds() layout.Rect { return e.bounds }

// Descriptor returns the properties the element was created with.
func (e *Element) Descriptor() layout.Descriptor { return e.desc }

// Lines returns the wrapped lines the height was computed from.
func (e *Element) Lines() []layout.TextLine {
	out := make([]layout.TextLine, len(e.lines))
	copy(out, e.lines)
	return out
}

// New creates an empty canvas host.
func New(opts Options) *Host {
	if opts.ViewWidth <= 0 {
		opts.ViewWidth = defaultViewWidth
	}
	if opts.ViewHeight <= 0 {
		opts.ViewHeight = defaultViewHeight
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	h := &Host{
		fontDir:     opts.FontDir,
		systemFonts: opts.SystemFonts,
		viewWidth:   opts.ViewWidth,
		viewHeight:  opts.ViewHeight,
		typesetter:  opts.Typesetter,
		notifier:    opts.Notifier,
		onClose:     opts.OnClose,
		logger:      opts.Logger,
		fonts:       newFontRegistry(),
		viewport:    Viewport{Zoom: maxZoom},
	}
	if h.typesetter == nil {
		h.typesetter = h
	}
	return h
}

// ShowUI records the panel options. It is called once at startup.
func (h *Host) ShowUI(_ context.Context, opts host.UIOptions) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.ui = &opts
	h.logger.Debug("UI shown", "width", opts.Width, "height", opts.Height, "themeColors", opts.ThemeColors)
	return nil
}

// LoadFont loads name from the font directory or the system fonts.
// On failure the embedded Go font of the same weight is registered instead
// and the error is returned for diagnostics.
func (h *Host) LoadFont(ctx context.Context, name layout.FontName) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return h.fonts.load(name, h.fontDir, h.systemFonts)
}

// CreateText creates a text element, wraps it at the descriptor width and
// computes its height.
func (h *Host) CreateText(ctx context.Context, d layout.Descriptor) (host.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	if !h.fonts.requested(d.Font) {
		return nil, fmt.Errorf("%w: %s %s", ErrFontNotLoaded, d.Font.Family, d.Font.Style)
	}

	lines, err := h.typesetter.LayoutLines(d.Content, d.Width, d.Font, d.FontSize)
	if err != nil {
		return nil, fmt.Errorf("排版文本 %q 失败: %w", d.Name, err)
	}
	height := 0.0
	for _, ln := range lines {
		height += ln.Height
	}

	el := &Element{
		id:     uuid.NewString(),
		desc:   d,
		lines:  lines,
		bounds: layout.Rect{X: d.X, Y: d.Y, Width: d.Width, Height: height},
	}
	h.mu.Lock()
	h.elements = append(h.elements, el)
	h.mu.Unlock()
	h.logger.Debug("Text created", "id", el.id, "name", d.Name, "y", d.Y, "height", height)
	return el, nil
}

// Select replaces the current selection.
func (h *Host) Select(_ context.Context, elems []host.Element) error {
	ids := make([]string, 0, len(elems))
	for _, e := range elems {
		ids = append(ids, e.ID())
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.selection = ids
	return nil
}

// ScrollAndZoomIntoView centres the viewport on elems and zooms to fit them.
func (h *Host) ScrollAndZoomIntoView(_ context.Context, elems []host.Element) error {
	if len(elems) == 0 {
		return nil
	}
	bounds := elems[0].Bounds()
	for _, e := range elems[1:] {
		bounds = bounds.Union(e.Bounds())
	}
	zoom := maxZoom
	if bounds.Width > 0 {
		zoom = math.Min(zoom, h.viewWidth/bounds.Width)
	}
	if bounds.Height > 0 {
		zoom = math.Min(zoom, h.viewHeight/bounds.Height)
	}
	zoom = math.Max(zoom, minZoom)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.viewport = Viewport{
		CenterX: bounds.X + bounds.Width/2,
		CenterY: bounds.Y + bounds.Height/2,
		Zoom:    zoom,
		Bounds:  bounds,
	}
	return nil
}

// Notify records n and forwards it to the notifier.
func (h *Host) Notify(_ context.Context, n host.Notice) {
	h.mu.Lock()
	h.notices = append(h.notices, n)
	notifier := h.notifier
	h.mu.Unlock()
	if notifier != nil {
		notifier(n)
	}
}

// Close tears down the UI. Elements stay on the canvas and can still be rendered.
func (h *Host) Close(_ context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	onClose := h.onClose
	h.mu.Unlock()
	h.logger.Debug("UI closed")
	if onClose != nil {
		onClose()
	}
	return nil
}

// Closed reports whether the UI has been torn down.
func (h *Host) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// UI returns the options passed to ShowUI, or nil.
func (h *Host) UI() *host.UIOptions {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ui
}

// Elements returns all elements in creation order.
func (h *Host) Elements() []*Element {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Element, len(h.elements))
	copy(out, h.elements)
	return out
}

// Selection returns the IDs of the selected elements.
func (h *Host) Selection() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.selection))
	copy(out, h.selection)
	return out
}

// Viewport returns the current viewport.
func (h *Host) Viewport() Viewport {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewport
}

// Notices returns every notice delivered so far.
func (h *Host) Notices() []host.Notice {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]host.Notice, len(h.notices))
	copy(out, h.notices)
	return out
}
