package controllers

import (
	"net/http"

	"fontpair/internal/models"
	"fontpair/internal/services"
)

type AnalysisController struct {
	service services.AnalysisServiceInterface
}

func NewAnalysisController(service services.AnalysisServiceInterface) *AnalysisController {
	return &AnalysisController{service: service}
}

func (ac *AnalysisController) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if !readJSON(w, r, maxAnalysisBodySize, &req) {
		return
	}
	item, err := ac.service.Analyze(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (ac *AnalysisController) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchAnalysisRequest
	if !readJSON(w, r, maxAnalysisBodySize, &req) {
		return
	}
	results, err := ac.service.AnalyzeBatch(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (ac *AnalysisController) FindFonts(w http.ResponseWriter, r *http.Request) {
	var criteria models.SearchCriteria
	if !readJSON(w, r, maxRequestBodySize, &criteria) {
		return
	}
	item, err := ac.service.FindFonts(r.Context(), criteria)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (ac *AnalysisController) Critique(w http.ResponseWriter, r *http.Request) {
	var req models.CritiqueRequest
	if !readJSON(w, r, maxRequestBodySize, &req) {
		return
	}
	critique, err := ac.service.Critique(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, critique)
}
