package autocomplete

import "sync"

// DefaultCacheSize is how many distinct queries are remembered.
const DefaultCacheSize = 20

// Cache maps a query to its suggestions. When full, the entry inserted
// first is evicted. Rewriting an existing key keeps its position.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    []string
	entries  map[string][]Suggestion
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		capacity: capacity,
		order:    make([]string, 0, capacity),
		entries:  make(map[string][]Suggestion, capacity),
	}
}

func (c *Cache) Get(query string) ([]Suggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[query]
	return s, ok
}

func (c *Cache) Put(query string, suggestions []Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[query]; ok {
		c.entries[query] = suggestions
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.order = append(c.order, query)
	c.entries[query] = suggestions
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
