package cache

import (
	"net/url"
	"sync"
)

// Page is a rendered response kept for reuse.
type Page struct {
	Status      int
	ContentType string
	Body        []byte
}

// Pages caches rendered views keyed by request URI. Invalidate drops every
// entry for a path regardless of its query string.
//
// Every Invalidate bumps a generation. A renderer reads Generation before it
// fetches data and hands it to Store, so a rendering that started before an
// invalidation is never cached.
type Pages struct {
	entries sync.Map // request URI -> *Page

	mu         sync.Mutex // serializes Store against Invalidate
	generation uint64
}

func NewPages() *Pages {
	return &Pages{}
}

func (p *Pages) Get(requestURI string) (*Page, bool) {
	val, ok := p.entries.Load(requestURI)
	if !ok {
		return nil, false
	}
	return val.(*Page), true
}

// Generation reports the current invalidation generation.
func (p *Pages) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Store caches page if no invalidation happened since generation was read.
// It reports whether the page was kept.
func (p *Pages) Store(requestURI string, generation uint64, page *Page) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if generation != p.generation {
		return false
	}
	p.entries.Store(requestURI, page)
	return true
}

// Invalidate marks every cached rendering of path stale.
func (p *Pages) Invalidate(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.entries.Range(func(key, _ interface{}) bool {
		if pathOf(key.(string)) == path {
			p.entries.Delete(key)
		}
		return true
	})
}

func pathOf(requestURI string) string {
	u, err := url.ParseRequestURI(requestURI)
	if err != nil {
		return requestURI
	}
	return u.Path
}
