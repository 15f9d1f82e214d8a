package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fontpair/internal/models"
	"fontpair/internal/services"
)

type HistoryController struct {
	service services.HistoryServiceInterface
}

func NewHistoryController(service services.HistoryServiceInterface) *HistoryController {
	return &HistoryController{service: service}
}

func (hc *HistoryController) GetHistory(w http.ResponseWriter, r *http.Request) {
	items := hc.service.GetHistory()
	views := make([]models.HistoryView, 0, len(items))
	for _, item := range items {
		views = append(views, models.HistoryView{HistoryItem: item, TimeAgo: hc.service.TimeAgo(item.Timestamp)})
	}
	writeJSON(w, http.StatusOK, views)
}

func (hc *HistoryController) ClearHistory(w http.ResponseWriter, r *http.Request) {
	hc.service.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (hc *HistoryController) DeleteHistoryItem(w http.ResponseWriter, r *http.Request) {
	if !hc.service.DeleteFromHistory(chi.URLParam(r, "id")) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (hc *HistoryController) GetSearchHistory(w http.ResponseWriter, r *http.Request) {
	items := hc.service.GetSearchHistory()
	views := make([]models.SearchHistoryView, 0, len(items))
	for _, item := range items {
		views = append(views, models.SearchHistoryView{SearchHistoryItem: item, TimeAgo: hc.service.TimeAgo(item.Timestamp)})
	}
	writeJSON(w, http.StatusOK, views)
}

func (hc *HistoryController) ClearSearchHistory(w http.ResponseWriter, r *http.Request) {
	hc.service.ClearSearchHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (hc *HistoryController) DeleteSearchHistoryItem(w http.ResponseWriter, r *http.Request) {
	if !hc.service.DeleteFromSearchHistory(chi.URLParam(r, "id")) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
