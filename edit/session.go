package edit

import (
	"errors"
	"image"
	"sync"

	"github.com/golang/glog"

	"github.com/janpfeifer/retouch/filters"
	"github.com/janpfeifer/retouch/gallery"
)

// ErrNoSource is returned by mutators invoked before an image is loaded.
var ErrNoSource = errors.New("no source image loaded")

// Session owns the current source image, the edit state and the preview
// derived from them. All previews are rendered from the source, never
// from a prior preview.
//
// A session is meant to have a single logical owner; the internal lock
// only guards against render completions racing with mutators.
type Session struct {
	engine  *Engine
	gallery *gallery.Gallery

	mu        sync.Mutex
	source    image.Image
	state     State
	preview   *image.RGBA
	gen       uint64 // latest requested render generation
	async     bool
	listeners []func()
}

// NewSession creates a session rendering with engine and committing
// snapshots to g. A nil gallery gets one created; a nil engine gets the
// built-in catalog kernels.
func NewSession(engine *Engine, g *gallery.Gallery) *Session {
	if engine == nil {
		engine = NewEngine(nil)
	}
	if g == nil {
		g = gallery.New()
	}
	return &Session{engine: engine, gallery: g, state: DefaultState()}
}

// SetAsyncRender makes mutators offload rendering to a goroutine instead
// of rendering before returning. At most one render result is installed
// per mutation; results of superseded renders are dropped.
func (s *Session) SetAsyncRender(enabled bool) {
	s.mu.Lock()
	s.async = enabled
	s.mu.Unlock()
}

// Subscribe registers fn to be called after each preview change. fn runs
// outside the session lock and must not block.
func (s *Session) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Load replaces the source image, resets the edit state, clears the
// gallery and recomputes the preview. Loading nil clears the session.
func (s *Session) Load(source image.Image) error {
	s.mu.Lock()
	s.source = source
	s.state = DefaultState()
	s.preview = nil
	s.gen++ // invalidates any in-flight render of the previous source
	s.gallery.Clear()
	if source == nil {
		s.mu.Unlock()
		s.notify()
		return nil
	}
	gen, src, state, async := s.gen, s.source, s.state, s.async
	s.mu.Unlock()
	return s.render(gen, src, state, async)
}

// SelectFilter sets the current filter and recomputes the preview.
// filters.None with any label selects no filter and restores the
// "Original" label.
func (s *Session) SelectFilter(id filters.ID, label string) error {
	s.mu.Lock()
	if s.source == nil {
		s.mu.Unlock()
		return ErrNoSource
	}
	if id == filters.None {
		label = filters.OriginalLabel
	}
	s.state.FilterID = id
	s.state.FilterLabel = label
	gen, src, state, async := s.bumpLocked()
	s.mu.Unlock()
	return s.render(gen, src, state, async)
}

// SetBrightness clamps v to [-1, 1], stores it and recomputes the
// preview.
func (s *Session) SetBrightness(v float64) error {
	s.mu.Lock()
	if s.source == nil {
		s.mu.Unlock()
		return ErrNoSource
	}
	s.state.Brightness = ClampBrightness(v)
	gen, src, state, async := s.bumpLocked()
	s.mu.Unlock()
	return s.render(gen, src, state, async)
}

// Reset restores the default edit state and recomputes the preview. It
// is a no-op when no source is loaded.
func (s *Session) Reset() error {
	s.mu.Lock()
	if s.source == nil {
		s.mu.Unlock()
		return nil
	}
	s.state = DefaultState()
	gen, src, state, async := s.bumpLocked()
	s.mu.Unlock()
	return s.render(gen, src, state, async)
}

// Commit saves the current preview into the gallery as an immutable
// snapshot. The preview and state are read atomically, independent of
// any in-flight render.
func (s *Session) Commit() (gallery.Snapshot, error) {
	s.mu.Lock()
	preview, state := s.preview, s.state
	s.mu.Unlock()
	return s.gallery.Commit(preview, state.FilterLabel, state.Brightness)
}

// Source returns the currently loaded source image, or nil.
func (s *Session) Source() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// State returns the current edit state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Preview returns the latest rendered preview, or nil when no source is
// loaded or no render has completed yet.
func (s *Session) Preview() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Gallery returns the comparison gallery attached to this session.
func (s *Session) Gallery() *gallery.Gallery { return s.gallery }

// bumpLocked starts a new render generation and captures the inputs for
// it. Callers must hold s.mu.
func (s *Session) bumpLocked() (uint64, image.Image, State, bool) {
	s.gen++
	return s.gen, s.source, s.state, s.async
}

// render computes the preview for generation gen, inline or on a
// goroutine. On failure the previous preview is kept.
func (s *Session) render(gen uint64, source image.Image, state State, async bool) error {
	if async {
		go func() {
			img, err := s.engine.Render(source, state)
			if err != nil {
				glog.Errorf("render failed, keeping previous preview: %v", err)
				return
			}
			s.install(gen, img)
		}()
		return nil
	}
	img, err := s.engine.Render(source, state)
	if err != nil {
		return err
	}
	s.install(gen, img)
	return nil
}

// install makes img the current preview, unless a newer render was
// requested after gen, in which case img is stale and dropped.
func (s *Session) install(gen uint64, img *image.RGBA) bool {
	s.mu.Lock()
	if gen != s.gen {
		latest := s.gen
		s.mu.Unlock()
		glog.V(2).Infof("dropping stale render generation %d (latest is %d)", gen, latest)
		return false
	}
	s.preview = img
	s.mu.Unlock()
	s.notify()
	return true
}

func (s *Session) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
