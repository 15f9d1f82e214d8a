package controllers

import (
	"net/http"

	"fontpair/internal/models"
	"fontpair/internal/services"
)

type SettingsController struct {
	service services.SettingsServiceInterface
}

func NewSettingsController(service services.SettingsServiceInterface) *SettingsController {
	return &SettingsController{service: service}
}

func (sc *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.service.Get())
}

func (sc *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var update models.SettingsUpdate
	if !readJSON(w, r, maxRequestBodySize, &update) {
		return
	}
	settings, err := sc.service.Update(update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
