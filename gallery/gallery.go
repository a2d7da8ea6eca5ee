// Package gallery keeps the saved comparison snapshots: immutable copies
// of rendered previews, newest first, each with a stable identity and a
// descriptive label.
package gallery

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/golang/glog"
	"github.com/google/uuid"
)

// ErrNoPreview is returned by Commit when there is no preview to save.
// Callers treat it as a no-op rather than a user-facing failure.
var ErrNoPreview = errors.New("no preview to commit")

// Snapshot is an immutable saved preview. Its image is a value copy taken
// at commit time, so later edits never mutate it. Two snapshots are the
// same only if their IDs are equal; pixel and label content do not
// participate in identity.
type Snapshot struct {
	id    uuid.UUID
	image *image.RGBA
	label string
}

// ID returns the snapshot's stable identity token.
func (s Snapshot) ID() uuid.UUID { return s.id }

// Image returns the snapshot's pixels.
func (s Snapshot) Image() *image.RGBA { return s.image }

// Label returns the descriptive label computed at commit time.
func (s Snapshot) Label() string { return s.label }

// FormatLabel builds the deterministic snapshot label from the filter
// label and the brightness value, e.g. "Sepia (+20%)" or "Mono (-33%)".
// Non-negative brightness gets an explicit "+"; negative values carry
// their own sign.
func FormatLabel(filterLabel string, brightness float64) string {
	return fmt.Sprintf("%s (%+d%%)", filterLabel, int(math.Round(brightness*100)))
}

// Gallery is an ordered collection of snapshots, newest first. The zero
// value is ready to use.
type Gallery struct {
	mu    sync.Mutex
	snaps []Snapshot
}

// New creates an empty gallery.
func New() *Gallery { return &Gallery{} }

// Commit copies preview into a new immutable snapshot, labels it from
// filterLabel and brightness, and inserts it at the front. It returns
// ErrNoPreview when preview is nil.
func (g *Gallery) Commit(preview *image.RGBA, filterLabel string, brightness float64) (Snapshot, error) {
	if preview == nil {
		glog.V(2).Info("commit with no preview, ignoring")
		return Snapshot{}, ErrNoPreview
	}
	snap := Snapshot{
		id:    uuid.New(),
		image: cloneRGBA(preview),
		label: FormatLabel(filterLabel, brightness),
	}
	g.mu.Lock()
	g.snaps = append([]Snapshot{snap}, g.snaps...)
	g.mu.Unlock()
	glog.V(2).Infof("committed snapshot %s (%s)", snap.id, snap.label)
	return snap, nil
}

// Remove deletes the snapshot with the given identity. Removing an
// unknown identity is a no-op.
func (g *Gallery) Remove(id uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, snap := range g.snaps {
		if snap.id == id {
			g.snaps = append(g.snaps[:i], g.snaps[i+1:]...)
			return
		}
	}
}

// Clear drops all snapshots. Called whenever a new source image is
// loaded.
func (g *Gallery) Clear() {
	g.mu.Lock()
	g.snaps = nil
	g.mu.Unlock()
}

// Snapshots returns the snapshots newest first. The returned slice is a
// copy; the snapshots themselves are immutable.
func (g *Gallery) Snapshots() []Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Snapshot(nil), g.snaps...)
}

// Len returns the number of saved snapshots.
func (g *Gallery) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.snaps)
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out
}
