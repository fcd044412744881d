// Package relay forwards browser events to the native GL module and
// schedules its redraws.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hulkholden/stereoweb/client/native"
	"github.com/hulkholden/stereoweb/client/shaders"
	"golang.org/x/time/rate"
)

// ErrInitGL is returned by New when the native side could not create a GL context.
var ErrInitGL = errors.New("could not initialise GL")

// Canvas is the drawing surface the native module renders into.
type Canvas interface {
	// Size returns the canvas backing store size in pixels.
	Size() (width, height int)
	// ClientSize returns the laid out size in CSS pixels.
	ClientSize() (width, height float64)
	// PixelRatio returns the ratio of device pixels to CSS pixels.
	PixelRatio() float64
	StyleSize() (width, height string)
	SetStyleSize(width, height string)
}

// FrameScheduler runs a callback before the next repaint.
type FrameScheduler interface {
	RequestFrame(fn func())
}

type ShaderLoader interface {
	Load(ctx context.Context) (shaders.Source, error)
}

// A Program owns the native window handle for one canvas.
type Program struct {
	canvas  Canvas
	native  *native.Bindings
	frames  FrameScheduler
	shaders ShaderLoader
	opts    Options
	reloads *rate.Limiter
	now     func() time.Time

	window native.Handle

	mu      sync.Mutex
	pending bool
	closed  bool
}

// New initializes the native GL context at the canvas size and requests the first frame.
func New(canvas Canvas, bindings *native.Bindings, frames FrameScheduler, loader ShaderLoader, opts Options) (*Program, error) {
	opts = opts.withDefaults()

	width, height := canvas.Size()
	window, err := bindings.InitGL(width, height)
	switch {
	case errors.Is(err, native.ErrUnwind):
		log.Printf("initGL exited through unwind, assuming the main loop is running")
		window = native.UnwindHandle
	case err != nil:
		log.Printf("initGL failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInitGL, err)
	}
	if window == native.NoHandle {
		return nil, ErrInitGL
	}

	p := &Program{
		canvas:  canvas,
		native:  bindings,
		frames:  frames,
		shaders: loader,
		opts:    opts,
		window:  window,
		now:     time.Now,
	}
	if opts.ReloadInterval > 0 {
		p.reloads = rate.NewLimiter(rate.Every(opts.ReloadInterval), 1)
	}
	p.Invalidate()
	return p, nil
}

// Window returns the native window handle.
func (p *Program) Window() native.Handle { return p.window }

// Resize tells the native side the canvas has a new device pixel size.
func (p *Program) Resize() error {
	// Resizing the native window resets the canvas layout, so keep the style size.
	styleW, styleH := p.canvas.StyleSize()
	clientW, clientH := p.canvas.ClientSize()
	width, height := PhysicalSize(clientW, clientH, p.pixelRatio())

	_, err := p.native.SizeWindow(p.window, width, height)
	p.canvas.SetStyleSize(styleW, styleH)
	if err != nil {
		return fmt.Errorf("size_window(%d, %d): %w", width, height, err)
	}
	p.Invalidate()
	return nil
}

// KeyDown handles a key press. The reload key refetches both shaders and
// hands them to the native side. It blocks while the shaders are fetched.
func (p *Program) KeyDown(ctx context.Context, key string) error {
	if key != p.opts.ReloadKey {
		return nil
	}
	if p.reloads != nil && !p.reloads.AllowN(p.now(), 1) {
		log.Printf("shader reload throttled")
		return nil
	}

	src, err := p.shaders.Load(ctx)
	if err != nil {
		return fmt.Errorf("reloading shaders: %w", err)
	}
	if err := p.native.RefreshShaders(src.Vertex, src.Fragment); err != nil {
		return fmt.Errorf("refresh_shaders: %w", err)
	}
	log.Printf("shaders reloaded")
	p.Invalidate()
	return nil
}

// Paste offers pasted text to the native side and reports whether it was consumed.
func (p *Program) Paste(text string) bool {
	if text == "" || !p.window.Valid() {
		return false
	}
	ok, err := p.native.PasteText(p.window, text)
	if err != nil {
		log.Printf("paste_text failed: %v", err)
		return false
	}
	if ok {
		p.Invalidate()
	}
	return ok
}

// Invalidate requests a redraw on the next animation frame.
// Requests made while one is pending are coalesced.
func (p *Program) Invalidate() {
	p.mu.Lock()
	if p.closed || p.pending {
		p.mu.Unlock()
		return
	}
	p.pending = true
	p.mu.Unlock()

	p.frames.RequestFrame(p.render)
}

// Close stops further redraws.
func (p *Program) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// PageHide handles the page being hidden and reports whether the caller
// should release its listeners. A page entering the back/forward cache is
// restored intact, so it keeps drawing.
func (p *Program) PageHide(persisted bool) bool {
	if persisted {
		return false
	}
	p.Close()
	return true
}

func (p *Program) render() {
	p.mu.Lock()
	p.pending = false
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return
	}

	if err := p.native.DrawScene(p.window); err != nil {
		log.Printf("draw_scene failed: %v", err)
	}
	if p.opts.Continuous {
		p.Invalidate()
	}
}

func (p *Program) pixelRatio() float64 {
	if p.opts.PixelRatio.Specified {
		return p.opts.PixelRatio.Value
	}
	return p.canvas.PixelRatio()
}

// PhysicalSize converts a CSS pixel size to device pixels.
// Fractional pixels are dropped, as the native int parameters would.
func PhysicalSize(cssWidth, cssHeight, ratio float64) (width, height int) {
	if ratio <= 0 {
		ratio = 1
	}
	return int(cssWidth * ratio), int(cssHeight * ratio)
}
