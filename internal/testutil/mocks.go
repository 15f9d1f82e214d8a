package testutil

import (
	"errors"
	"sort"
	"sync"
	"time"

	"fontpair/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockStore is an in-memory key-value store with injectable write failures.
type MockStore struct {
	mu         sync.Mutex
	Data       map[string][]byte
	FailWrites bool
	Persisted  int
	Restored   int
	PersistErr error
	RestoreErr error
}

var ErrWriteFailed = errors.New("write failed")

func NewMockStore() *MockStore {
	return &MockStore{Data: make(map[string][]byte)}
}

func (m *MockStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrWriteFailed
	}
	m.Data[key] = value
	return nil
}

func (m *MockStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	return nil
}

func (m *MockStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.Data))
	for k := range m.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *MockStore) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Restored++
	return m.RestoreErr
}

func (m *MockStore) Persist() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persisted++
	return m.PersistErr
}

func (m *MockStore) Close() error { return nil }

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts the
// domain events tests care about.
type MockMetrics struct {
	mu                 sync.Mutex
	RequestCount       int
	PersistCalls       int
	StoredKeys         int
	QuotaDenied        map[string]int
	LicenseValidations map[string]int
	WebhookDeliveries  map[string]int
	AIRequests         map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		QuotaDenied:        make(map[string]int),
		LicenseValidations: make(map[string]int),
		WebhookDeliveries:  make(map[string]int),
		AIRequests:         make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
}
func (m *MockMetrics) SetStoredKeys(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoredKeys = count
}
func (m *MockMetrics) IncQuotaDenied(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QuotaDenied == nil {
		m.QuotaDenied = make(map[string]int)
	}
	m.QuotaDenied[action]++
}
func (m *MockMetrics) IncLicenseValidation(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LicenseValidations == nil {
		m.LicenseValidations = make(map[string]int)
	}
	m.LicenseValidations[result]++
}
func (m *MockMetrics) IncWebhookDelivery(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WebhookDeliveries == nil {
		m.WebhookDeliveries = make(map[string]int)
	}
	m.WebhookDeliveries[outcome]++
}
func (m *MockMetrics) ObserveAIRequestDuration(operation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AIRequests == nil {
		m.AIRequests = make(map[string]int)
	}
	m.AIRequests[operation]++
}

// FakeClock is a settable clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
