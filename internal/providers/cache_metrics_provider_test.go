package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fontpair/internal/structures"
)

type mapCache struct {
	data map[string][]byte
}

func (c *mapCache) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *mapCache) Set(key string, value []byte) {
	c.data[key] = value
}

func TestMetricsCacheProvider_Hit(t *testing.T) {
	inner := &mapCache{data: map[string][]byte{"analyze:abc": []byte(`{"pairing":"x"}`)}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok := cache.Get("analyze:abc")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"pairing":"x"}`), val)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 0, metrics.misses)
}

func TestMetricsCacheProvider_Miss(t *testing.T) {
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: &mapCache{data: map[string][]byte{}}, metrics: metrics}

	val, ok := cache.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Equal(t, 0, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestMetricsCacheProvider_SetDelegates(t *testing.T) {
	inner := &mapCache{data: map[string][]byte{}}
	cache := &MetricsCacheProvider{inner: inner, metrics: &mockMetrics{}}

	cache.Set("find:serif", []byte("v"))

	val, ok := inner.Get("find:serif")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)
}

func TestMetricsCacheProvider_MultipleOperations(t *testing.T) {
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: &mapCache{data: map[string][]byte{"a": []byte("1")}}, metrics: metrics}

	cache.Get("a")
	cache.Get("b")
	cache.Get("a")
	cache.Get("c")

	assert.Equal(t, 2, metrics.hits)
	assert.Equal(t, 2, metrics.misses)
}

func TestInstrumentedCacheProvider_DisabledSkipsMetrics(t *testing.T) {
	metrics := &mockMetrics{}
	conf := &structures.Config{Cache: structures.CacheConfig{Enabled: false}}

	c := NewInstrumentedCacheProvider(conf, &testLogger{}, metrics)
	assert.IsType(t, &noopCache{}, c)

	c.Get("anything")
	assert.Equal(t, 0, metrics.misses)
}

func TestInstrumentedCacheProvider_EnabledWraps(t *testing.T) {
	metrics := &mockMetrics{}
	conf := &structures.Config{Cache: structures.CacheConfig{Enabled: true, Size: 1}}

	c := NewInstrumentedCacheProvider(conf, &testLogger{}, metrics)
	assert.IsType(t, &MetricsCacheProvider{}, c)

	c.Set("k", []byte("v"))
	c.Get("k")
	c.Get("other")
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}
