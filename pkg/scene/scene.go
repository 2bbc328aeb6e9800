package scene

import (
	"errors"
	"sync"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
)

// ErrSceneFrozen is returned when a primitive is added after rendering started
var ErrSceneFrozen = errors.New("scene is frozen: primitives can only be added before rendering")

// Scene is an insertion-ordered collection of primitives. It is built once,
// frozen when rendering starts and then shared read-only by all workers.
type Scene struct {
	Name       string
	primitives []geometry.Primitive
	mu         sync.Mutex // Guards additions and freezing
	frozen     bool
}

// New creates an empty scene
func New(name string) *Scene {
	return &Scene{Name: name}
}

// AddPrimitive appends a primitive to the scene. An addition racing with
// Freeze either lands before the freeze or fails with ErrSceneFrozen.
func (s *Scene) AddPrimitive(p geometry.Primitive) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrSceneFrozen
	}
	s.primitives = append(s.primitives, p)
	return nil
}

// Freeze forbids further additions. Once it returns, the primitive list is
// fixed and may be read without locking. It is safe to call more than once.
func (s *Scene) Freeze() {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
}

// Frozen reports whether the scene no longer accepts primitives
func (s *Scene) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

// Primitives returns the primitives in insertion order. The slice must not
// be modified.
func (s *Scene) Primitives() []geometry.Primitive {
	return s.primitives
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.primitives)
}

// TraceClosest tests the ray against every primitive and returns the
// closest hit in (minDistance, maxDistance). Cost is linear in the number
// of primitives; there is no acceleration structure.
func (s *Scene) TraceClosest(ray core.Ray, minDistance, maxDistance float64) geometry.HitInfo {
	hit := geometry.NewHitInfo(maxDistance)
	for _, p := range s.primitives {
		p.Intersect(ray, minDistance, maxDistance, &hit)
	}
	return hit
}
