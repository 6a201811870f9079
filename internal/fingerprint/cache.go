package fingerprint

import (
	"encoding/binary"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/metrics"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

const defaultCacheCapacity = 32

// Cache memoises Compute keyed on the content of the points, the weight and the
// sort key. Concurrent requests for the same key share one computation.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]Result
	order    []string
	capacity int

	group   singleflight.Group
	metrics *metrics.Metrics
}

type CacheOption func(*Cache)

func WithCapacity(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) CacheOption {
	return func(c *Cache) {
		c.metrics = m
	}
}

func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries:  make(map[string]Result),
		capacity: defaultCacheCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Get(points []domain.MetricPoint, severityWeight float64, sortBy domain.SortKey) Result {
	key := cacheKey(points, severityWeight, sortBy)

	c.mu.Lock()
	if r, ok := c.entries[key]; ok {
		c.mu.Unlock()
		c.metrics.RecordCacheHit()
		return r
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(key, func() (any, error) {
		start := time.Now()
		r := Compute(points, severityWeight, sortBy)
		c.metrics.RecordComputation(time.Since(start))
		c.store(key, r)
		return r, nil
	})

	return v.(Result)
}

// Len reports how many snapshots are currently memoised.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) store(key string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = r
	c.order = append(c.order, key)
}

func cacheKey(points []domain.MetricPoint, severityWeight float64, sortBy domain.SortKey) string {
	return strconv.FormatUint(Digest(points), 16) + "|" +
		strconv.FormatFloat(severityWeight, 'g', -1, 64) + "|" + string(sortBy)
}

// Digest hashes every point field the aggregation reads.
func Digest(points []domain.MetricPoint) uint64 {
	h := xxhash.New()
	var buf [8]byte

	writeInt := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		_, _ = h.Write(buf[:])
	}
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	writeString := func(s string) {
		writeInt(len(s))
		_, _ = h.WriteString(s)
	}

	writeInt(len(points))
	for _, p := range points {
		writeString(p.RunID)
		writeString(p.QuestionID)
		writeFloat(p.LLMScore)
		writeInt(p.HumanFlags)
		writeInt(len(p.RetrievedDocs))
		for _, d := range p.RetrievedDocs {
			writeString(d.DocTitle())
			writeInt(d.ChunkIndex())
			writeString(d.ChunkIDValue())
			writeString(d.TextValue())
		}
	}

	return h.Sum64()
}
