// Package cache memoizes classifier output per feature vector.
//
// The mapping is a pure function of the key under a fixed model, so racing
// writers always store the same value and last-writer-wins is safe. There is
// no eviction and no TTL: the cache grows with the number of distinct inputs
// and is rebuilt from scratch after a restart.
package cache

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/irispredictor/internal/server/models"
	"golang.org/x/sync/singleflight"
)

// DefaultShards is used when New is given a non-positive shard count.
const DefaultShards = 16

type shard struct {
	mu      sync.RWMutex
	entries map[models.FeatureVector]int
}

// Cache is a sharded, concurrency-safe FeatureVector -> label map.
type Cache struct {
	shards []*shard
	sf     singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats is a point-in-time view of cache activity.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

func New(shards int) *Cache {
	if shards <= 0 {
		shards = DefaultShards
	}
	c := &Cache{shards: make([]*shard, shards)}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[models.FeatureVector]int)}
	}
	return c
}

func (c *Cache) shardFor(key models.FeatureVector) *shard {
	var buf [32]byte
	for i, v := range key.Slice() {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	h := fnv.New64a()
	h.Write(buf[:])
	return c.shards[h.Sum64()%uint64(len(c.shards))]
}

// Get returns the memoized label for key.
func (c *Cache) Get(key models.FeatureVector) (int, bool) {
	sh := c.shardFor(key)
	sh.mu.RLock()
	label, ok := sh.entries[key]
	sh.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return label, ok
}

// Put stores label for key, overwriting any previous value.
func (c *Cache) Put(key models.FeatureVector, label int) {
	sh := c.shardFor(key)
	sh.mu.Lock()
	sh.entries[key] = label
	sh.mu.Unlock()
}

// GetOrCompute returns the memoized label or fills it with compute.
// Concurrent misses on one key share a single compute call. Errors are
// returned to every waiter and nothing is stored.
func (c *Cache) GetOrCompute(key models.FeatureVector, compute func() (int, error)) (label int, hit bool, err error) {
	if label, ok := c.Get(key); ok {
		return label, true, nil
	}

	v, err, _ := c.sf.Do(flightKey(key), func() (any, error) {
		label, err := compute()
		if err != nil {
			return 0, err
		}
		c.Put(key, label)
		return label, nil
	})
	if err != nil {
		return 0, false, err
	}
	return v.(int), false, nil
}

// Len returns the number of memoized entries.
func (c *Cache) Len() int {
	n := 0
	for _, sh := range c.shards {
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}

func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Entries: c.Len()}
}

func flightKey(key models.FeatureVector) string {
	b := make([]byte, 0, 4*17)
	for i, v := range key.Slice() {
		if i > 0 {
			b = append(b, ':')
		}
		b = strconv.AppendUint(b, math.Float64bits(v), 16)
	}
	return string(b)
}
