package web

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a fixed size ring of recently sent payloads, so a payload
// already held by clients is sent as an index instead.
type cache struct {
	entries []cacheEntry
	idx     int
}

func newCache(size int) *cache {
	return &cache{entries: make([]cacheEntry, size)}
}

// add stores data under hash, evicting the oldest entry, and returns
// its index.
func (c *cache) add(hash uint64, data []byte) int {
	i := c.idx
	c.entries[i] = cacheEntry{hash: hash, data: data}
	c.idx = (c.idx + 1) % len(c.entries)
	return i
}

// index returns the index of hash, or -1.
func (c *cache) index(hash uint64) int {
	for i, e := range c.entries {
		if e.data != nil && e.hash == hash {
			return i
		}
	}
	return -1
}
