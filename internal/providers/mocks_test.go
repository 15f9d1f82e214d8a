package providers

import (
	"fmt"
	"sync"
	"time"
)

// local mocks; testutil imports this package

type testLogger struct {
	mu    sync.Mutex
	infos []string
}

func (l *testLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (l *testLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Infof(_ TypeEnum, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}
func (l *testLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Close()                                        {}

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration)   { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                      { m.hits++ }
func (m *mockMetrics) IncCacheMisses()                                    { m.misses++ }
func (m *mockMetrics) ObservePersistenceDuration(_ time.Duration)         {}
func (m *mockMetrics) SetStoredKeys(_ int)                                {}
func (m *mockMetrics) IncQuotaDenied(_ string)                            {}
func (m *mockMetrics) IncLicenseValidation(_ string)                      {}
func (m *mockMetrics) IncWebhookDelivery(_ string)                        {}
func (m *mockMetrics) ObserveAIRequestDuration(_ string, _ time.Duration) {}
