package cache

import (
	"container/list"
	"time"
)

type lruEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// lru is a bounded least-recently-used map of byte values with per-entry
// expiry. It is not safe for concurrent use; MemoryStore guards it.
type lru struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

func newLRU(capacity int) *lru {
	return &lru{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// get returns the live value for key. Entries expired at now are dropped.
func (c *lru) get(key string, now time.Time) ([]byte, bool) {
	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*lruEntry)
	if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
		c.remove(elem)
		return nil, false
	}
	c.order.MoveToFront(elem)
	return entry.value, true
}

func (c *lru) put(key string, value []byte, expiresAt time.Time) {
	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*lruEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&lruEntry{key: key, value: value, expiresAt: expiresAt})
	if c.order.Len() > c.capacity {
		c.remove(c.order.Back())
	}
}

func (c *lru) delete(key string) {
	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

func (c *lru) len() int {
	return c.order.Len()
}

func (c *lru) remove(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*lruEntry).key)
}
