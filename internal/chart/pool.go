package chart

import (
	"image"
	"sync"
)

// canvasPool reuses image.RGBA canvases between renders to keep
// allocation pressure down when charting many scripts in one run.
type canvasPool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &canvasPool{
	pools: make(map[string]*sync.Pool),
}

// GetCanvas returns an *image.RGBA of the given size from the pool,
// or a fresh one when no canvas of that size is available.
func GetCanvas(rect image.Rectangle) *image.RGBA {
	return globalPool.get(rect)
}

// PutCanvas returns a canvas to the pool for reuse.
func PutCanvas(img *image.RGBA) {
	globalPool.put(img)
}

func (p *canvasPool) get(rect image.Rectangle) *image.RGBA {
	key := rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewRGBA(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

func (p *canvasPool) put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
