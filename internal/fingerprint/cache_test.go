package fingerprint

import (
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCache_MatchesCompute(t *testing.T) {
	points := randomPoints(21, 120)
	c := NewCache()

	for _, key := range domain.SortKeys {
		assert.Equal(t, Compute(points, 10, key), c.Get(points, 10, key))
		assert.Equal(t, Compute(points, 10, key), c.Get(points, 10, key))
	}
	assert.Equal(t, len(domain.SortKeys), c.Len())
}

func TestCache_KeyedOnContent(t *testing.T) {
	points := randomPoints(22, 50)
	c := NewCache()

	c.Get(points, 10, domain.SortBySeverity)
	copied := append([]domain.MetricPoint(nil), points...)
	c.Get(copied, 10, domain.SortBySeverity)
	assert.Equal(t, 1, c.Len())

	c.Get(points, 3, domain.SortBySeverity)
	assert.Equal(t, 2, c.Len())

	changed := append([]domain.MetricPoint(nil), points...)
	changed[0].HumanFlags++
	assert.NotEqual(t, Digest(points), Digest(changed))
}

func TestCache_Evicts(t *testing.T) {
	points := randomPoints(23, 20)
	c := NewCache(WithCapacity(2))

	c.Get(points, 1, domain.SortBySeverity)
	c.Get(points, 2, domain.SortBySeverity)
	c.Get(points, 3, domain.SortBySeverity)

	assert.Equal(t, 2, c.Len())
}

func TestCache_Concurrent(t *testing.T) {
	points := randomPoints(24, 200)
	want := Compute(points, 10, domain.SortByFlags)
	c := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, c.Get(points, 10, domain.SortByFlags))
		}()
	}
	wg.Wait()
}
