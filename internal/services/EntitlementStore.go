package services

import (
	"strconv"
	"sync"

	"github.com/spf13/cast"

	"fontpair/internal/models"
	"fontpair/internal/storage"
)

type EntitlementStoreInterface interface {
	GetTier() models.UserTier
	// TierChosen reports whether a tier was ever stored, either by a license
	// or by the user continuing on the free tier.
	TierChosen() bool
	SetTier(tier models.UserTier)
	GetCounter(kind models.CounterKind) int
	IncrementCounter(kind models.CounterKind) int
	ResetIfStale(kind models.CounterKind) bool
}

type counterKeys struct {
	count string
	// date is empty for lifetime counters
	date string
}

var counters = map[models.CounterKind]counterKeys{
	models.CounterAnalysis:  {count: storage.KeyDailyAnalysisCount, date: storage.KeyDailyAnalysisDate},
	models.CounterFindFonts: {count: storage.KeyDailyFindFontsCount, date: storage.KeyDailyFindFontsDate},
	models.CounterCritique:  {count: storage.KeyCritiqueCount},
}

// EntitlementStore keeps the tier and the usage counters. Counters are
// decimal strings; daily counters carry a YYYY-MM-DD marker in the clock's
// location.
type EntitlementStore struct {
	mu       sync.Mutex
	accessor *storage.Accessor
	clock    Clock
}

func NewEntitlementStore(accessor *storage.Accessor, clock Clock) EntitlementStoreInterface {
	return &EntitlementStore{accessor: accessor, clock: clock}
}

func (s *EntitlementStore) GetTier() models.UserTier {
	val, ok := s.accessor.ReadString(storage.KeyUserTier)
	if !ok {
		return models.TierFree
	}
	tier := models.UserTier(val)
	if !tier.IsValid() {
		return models.TierFree
	}
	return tier
}

func (s *EntitlementStore) TierChosen() bool {
	_, ok := s.accessor.ReadString(storage.KeyUserTier)
	return ok
}

func (s *EntitlementStore) SetTier(tier models.UserTier) {
	s.accessor.WriteString(storage.KeyUserTier, string(tier))
}

func (s *EntitlementStore) GetCounter(kind models.CounterKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := counters[kind]
	if !ok {
		return 0
	}
	s.resetIfStale(keys)
	return s.read(keys)
}

// IncrementCounter writes count+1 and returns it.
func (s *EntitlementStore) IncrementCounter(kind models.CounterKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := counters[kind]
	if !ok {
		return 0
	}
	s.resetIfStale(keys)
	n := s.read(keys) + 1
	s.accessor.WriteString(keys.count, strconv.Itoa(n))
	return n
}

// ResetIfStale zeroes a daily counter whose marker is not today and reports
// whether it did.
func (s *EntitlementStore) ResetIfStale(kind models.CounterKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := counters[kind]
	if !ok {
		return false
	}
	return s.resetIfStale(keys)
}

func (s *EntitlementStore) resetIfStale(keys counterKeys) bool {
	if keys.date == "" {
		return false
	}
	today := s.clock.Now().Format(dateLayout)
	if stored, _ := s.accessor.ReadString(keys.date); stored == today {
		return false
	}
	s.accessor.WriteString(keys.count, "0")
	s.accessor.WriteString(keys.date, today)
	return true
}

func (s *EntitlementStore) read(keys counterKeys) int {
	val, ok := s.accessor.ReadString(keys.count)
	if !ok {
		return 0
	}
	n := cast.ToInt(val)
	if n < 0 {
		return 0
	}
	return n
}
