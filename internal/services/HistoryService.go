package services

import (
	"sync"

	"fontpair/internal/models"
	"fontpair/internal/providers"
	"fontpair/internal/storage"
)

type HistoryServiceInterface interface {
	SaveToHistory(analysis models.FontAnalysis, thumbnail string) models.HistoryItem
	GetHistory() []models.HistoryItem
	DeleteFromHistory(id string) bool
	ClearHistory()
	SaveSearchToHistory(criteria models.SearchCriteria, results models.FontSearchResult) models.SearchHistoryItem
	GetSearchHistory() []models.SearchHistoryItem
	DeleteFromSearchHistory(id string) bool
	ClearSearchHistory()
	TimeAgo(timestamp int64) string
}

// HistoryService keeps two newest-first logs. Up to MaxStoredHistory entries
// are stored; reads are cut to the tier's display limit.
type HistoryService struct {
	mu           sync.Mutex
	accessor     *storage.Accessor
	entitlements EntitlementServiceInterface
	clock        Clock
	logger       providers.Logger
}

func NewHistoryService(accessor *storage.Accessor, entitlements EntitlementServiceInterface, clock Clock, logger providers.Logger) HistoryServiceInterface {
	return &HistoryService{
		accessor:     accessor,
		entitlements: entitlements,
		clock:        clock,
		logger:       logger,
	}
}

func (h *HistoryService) SaveToHistory(analysis models.FontAnalysis, thumbnail string) models.HistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.clock.Now()
	item := models.HistoryItem{
		ID:        newID(now),
		Analysis:  analysis,
		Timestamp: now.UnixMilli(),
		Thumbnail: thumbnail,
	}

	var items []models.HistoryItem
	h.accessor.ReadJSON(storage.KeyHistory, &items)
	items = append([]models.HistoryItem{item}, items...)
	if len(items) > models.MaxStoredHistory {
		items = items[:models.MaxStoredHistory]
	}
	h.accessor.WriteJSON(storage.KeyHistory, items)
	return item
}

func (h *HistoryService) GetHistory() []models.HistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()

	items := []models.HistoryItem{}
	h.accessor.ReadJSON(storage.KeyHistory, &items)
	return truncate(items, h.entitlements.Limits().HistoryItems)
}

func (h *HistoryService) DeleteFromHistory(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	var items []models.HistoryItem
	h.accessor.ReadJSON(storage.KeyHistory, &items)
	kept, removed := removeByID(items, id, func(i models.HistoryItem) string { return i.ID })
	if removed {
		h.accessor.WriteJSON(storage.KeyHistory, kept)
	}
	return removed
}

func (h *HistoryService) ClearHistory() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accessor.Delete(storage.KeyHistory)
}

func (h *HistoryService) SaveSearchToHistory(criteria models.SearchCriteria, results models.FontSearchResult) models.SearchHistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()

	fontNames := make([]string, 0, len(results.Suggestions))
	for _, s := range results.Suggestions {
		fontNames = append(fontNames, s.FontName)
	}

	now := h.clock.Now()
	item := models.SearchHistoryItem{
		ID:             newID(now),
		Timestamp:      now.UnixMilli(),
		SearchCriteria: criteria,
		Results:        results,
		FontNames:      fontNames,
	}

	var items []models.SearchHistoryItem
	h.accessor.ReadJSON(storage.KeySearchHistory, &items)
	items = append([]models.SearchHistoryItem{item}, items...)
	if len(items) > models.MaxStoredHistory {
		items = items[:models.MaxStoredHistory]
	}
	h.accessor.WriteJSON(storage.KeySearchHistory, items)
	return item
}

func (h *HistoryService) GetSearchHistory() []models.SearchHistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()

	items := []models.SearchHistoryItem{}
	h.accessor.ReadJSON(storage.KeySearchHistory, &items)
	return truncate(items, h.entitlements.Limits().HistoryItems)
}

func (h *HistoryService) DeleteFromSearchHistory(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	var items []models.SearchHistoryItem
	h.accessor.ReadJSON(storage.KeySearchHistory, &items)
	kept, removed := removeByID(items, id, func(i models.SearchHistoryItem) string { return i.ID })
	if removed {
		h.accessor.WriteJSON(storage.KeySearchHistory, kept)
	}
	return removed
}

func (h *HistoryService) ClearSearchHistory() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accessor.Delete(storage.KeySearchHistory)
}

func (h *HistoryService) TimeAgo(timestamp int64) string {
	return FormatTimeAgo(timestamp, h.clock.Now())
}

func truncate[T any](items []T, limit int) []T {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	kept := make([]T, 0, len(items))
	removed := false
	for _, item := range items {
		if idOf(item) == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	return kept, removed
}
