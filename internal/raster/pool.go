package raster

import "sync"

// ScreenPool recycles screens between frames so an animation does not
// allocate a fresh pixel buffer per frame.
//
// Screens are grouped by dimensions. All methods are safe for concurrent use.
type ScreenPool struct {
	mu      sync.Mutex
	buckets map[screenKey][]*Screen
	maxSize int // max screens per bucket, 0 for unlimited
}

type screenKey struct {
	width, height int
}

// NewScreenPool creates a pool retaining at most maxPerBucket screens of each
// size. Zero means unlimited.
func NewScreenPool(maxPerBucket int) *ScreenPool {
	return &ScreenPool{
		buckets: make(map[screenKey][]*Screen),
		maxSize: max(maxPerBucket, 0),
	}
}

// Get returns a cleared screen of the given size, reusing one when possible.
func (p *ScreenPool) Get(width, height int) *Screen {
	key := screenKey{width, height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		s := bucket[n-1]
		bucket[n-1] = nil
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		s.Clear()
		return s
	}
	p.mu.Unlock()

	return NewScreen(width, height)
}

// Put hands s back to the pool. The caller must not use s afterwards.
func (p *ScreenPool) Put(s *Screen) {
	if s == nil {
		return
	}
	key := screenKey{s.Width(), s.Height()}

	p.mu.Lock()
	defer p.mu.Unlock()
	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, s)
}

// Len reports the number of idle screens held.
func (p *ScreenPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
