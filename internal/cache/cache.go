// Package cache memoises backend search responses by image URL.
//
// Keys are xxhash64 digests of the URL; the low bits pick one of a fixed
// number of shards, each an LRU list bounded to capacity/shards entries.
// Entries older than the TTL are treated as missing and dropped on access.
package cache

import (
	"container/list"
	"errors"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"searchbyimage/internal/domain"
)

const defaultShards = 16

var ErrIllegalCapacity = errors.New("illegal cache capacity")

type entry struct {
	key     uint64
	url     string
	resp    domain.SearchResponse
	expires time.Time
}

type shard struct {
	mu    sync.Mutex
	max   int
	ll    *list.List
	items map[uint64]*list.Element
}

// Cache is a sharded LRU with per-entry expiry.
type Cache struct {
	shards []*shard
	ttl    time.Duration
	now    func() time.Time
}

// New returns a cache holding at most capacity responses for ttl each.
// A zero ttl keeps entries until evicted.
func New(capacity int, ttl time.Duration) (*Cache, error) {
	if capacity <= 0 {
		return nil, ErrIllegalCapacity
	}
	n := defaultShards
	if capacity < n {
		n = 1
	}
	per := capacity / n
	if per == 0 {
		per = 1
	}

	c := &Cache{shards: make([]*shard, n), ttl: ttl, now: time.Now}
	for i := range c.shards {
		c.shards[i] = &shard{max: per, ll: list.New(), items: make(map[uint64]*list.Element)}
	}
	return c, nil
}

// Get returns the live response cached for imageURL.
func (c *Cache) Get(imageURL string) (domain.SearchResponse, bool) {
	k := xxhash.Sum64String(imageURL)
	s := c.shard(k)

	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.items[k]
	if !ok {
		return domain.SearchResponse{}, false
	}
	e := el.Value.(*entry)
	// a digest collision must not serve another image's hits
	if e.url != imageURL {
		return domain.SearchResponse{}, false
	}
	if !e.expires.IsZero() && c.now().After(e.expires) {
		s.ll.Remove(el)
		delete(s.items, k)
		return domain.SearchResponse{}, false
	}
	s.ll.MoveToFront(el)
	return e.resp, true
}

// Put stores resp for imageURL, evicting the shard's oldest entry when full.
func (c *Cache) Put(imageURL string, resp domain.SearchResponse) {
	k := xxhash.Sum64String(imageURL)
	s := c.shard(k)

	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.items[k]; ok {
		el.Value = &entry{key: k, url: imageURL, resp: resp, expires: expires}
		s.ll.MoveToFront(el)
		return
	}
	s.items[k] = s.ll.PushFront(&entry{key: k, url: imageURL, resp: resp, expires: expires})
	for s.ll.Len() > s.max {
		oldest := s.ll.Back()
		s.ll.Remove(oldest)
		delete(s.items, oldest.Value.(*entry).key)
	}
}

// Len counts cached entries, expired or not.
func (c *Cache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += s.ll.Len()
		s.mu.Unlock()
	}
	return n
}

func (c *Cache) shard(k uint64) *shard {
	return c.shards[k%uint64(len(c.shards))]
}

// Null never stores anything. It stands in when caching is disabled.
type Null struct{}

func (Null) Get(string) (domain.SearchResponse, bool) { return domain.SearchResponse{}, false }
func (Null) Put(string, domain.SearchResponse)        {}
func (Null) Len() int                                 { return 0 }

var (
	_ domain.ResultCache = (*Cache)(nil)
	_ domain.ResultCache = Null{}
)
