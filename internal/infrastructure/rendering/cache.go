package rendering

import (
	"container/list"
	"html/template"
	"sync"
)

const defaultCacheCapacity = 32

// templateCache is a bounded LRU cache of parsed templates. Parsing a layout
// on every render is wasteful; an unbounded cache would grow with every
// custom template edit, so the least recently used entry is evicted once the
// capacity is reached.
type templateCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
}

type cacheEntry struct {
	key  string
	tmpl *template.Template
}

func newTemplateCache(capacity int) *templateCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &templateCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached template for the key, marking it recently used
func (c *templateCache) Get(key string) (*template.Template, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).tmpl, true
}

// Put stores a parsed template, evicting the least recently used entry when
// the cache is full
func (c *templateCache) Put(key string, tmpl *template.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).tmpl = tmpl
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, tmpl: tmpl})
}

// Invalidate drops the cached entry for the key, if present
func (c *templateCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.Remove(elem)
		delete(c.entries, key)
	}
}

// Len returns the number of cached templates
func (c *templateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
