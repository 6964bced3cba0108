package catalogclient

import (
	"strings"
	"sync"
	"time"
)

// Espacios de nombres del caché; una mutación invalida el suyo completo.
const (
	NSProducts      = "products"
	NSCategories    = "categories"
	NSSubcategories = "subcategories"
)

type entry struct {
	body      []byte
	fetchedAt time.Time
}

// cache respuestas crudas por clave "namespace|ruta?query". Cada namespace lleva una generación
// que sube al invalidar: una lectura iniciada antes de la invalidación no repuebla el caché.
type cache struct {
	mu      sync.Mutex
	stale   time.Duration
	now     func() time.Time
	entries map[string]entry
	gen     map[string]uint64
}

func newCache(stale time.Duration, now func() time.Time) *cache {
	return &cache{
		stale:   stale,
		now:     now,
		entries: make(map[string]entry),
		gen:     make(map[string]uint64),
	}
}

func cacheKey(ns, pathAndQuery string) string {
	return ns + "|" + pathAndQuery
}

// get devuelve el cuerpo si sigue fresco.
func (c *cache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.stale {
		delete(c.entries, key)
		return nil, false
	}
	return e.body, true
}

func (c *cache) generation(ns string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen[ns]
}

// put guarda body solo si ns no fue invalidado desde gen.
func (c *cache) put(ns, key string, gen uint64, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen[ns] != gen {
		return
	}
	c.entries[key] = entry{body: body, fetchedAt: c.now()}
}

func (c *cache) invalidate(ns string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen[ns]++
	prefix := ns + "|"
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

func (c *cache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
