package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"fontpair/internal/models"
	"fontpair/internal/services"
)

type ProjectController struct {
	service      services.ProjectServiceInterface
	entitlements services.EntitlementServiceInterface
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type activeProjectRequest struct {
	ID *string `json:"id"`
}

type duplicateProjectRequest struct {
	Name string `json:"name"`
}

func NewProjectController(service services.ProjectServiceInterface, entitlements services.EntitlementServiceInterface) *ProjectController {
	return &ProjectController{service: service, entitlements: entitlements}
}

// requireOrganization guards the actions that add projects.
func (pc *ProjectController) requireOrganization(w http.ResponseWriter) bool {
	if !pc.entitlements.HasFeature(models.FeatureProjectOrganization) {
		writeServiceError(w, services.ErrFeatureNotAvailable)
		return false
	}
	return true
}

func (pc *ProjectController) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pc.service.GetProjects())
}

func (pc *ProjectController) Create(w http.ResponseWriter, r *http.Request) {
	if !pc.requireOrganization(w) {
		return
	}
	var req createProjectRequest
	if !readJSON(w, r, maxRequestBodySize, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Project name is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, pc.service.CreateProject(req.Name, req.Description, req.Color))
}

func (pc *ProjectController) GetActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pc.service.GetActiveProject())
}

func (pc *ProjectController) SetActive(w http.ResponseWriter, r *http.Request) {
	var req activeProjectRequest
	if !readJSON(w, r, maxRequestBodySize, &req) {
		return
	}
	if err := pc.service.SetActiveProject(req.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pc.service.GetActiveProject())
}

func (pc *ProjectController) Import(w http.ResponseWriter, r *http.Request) {
	if !pc.requireOrganization(w) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAnalysisBodySize)
	text, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	project := pc.service.ImportProjectData(string(text))
	if project == nil {
		http.Error(w, "Invalid project data", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (pc *ProjectController) Get(w http.ResponseWriter, r *http.Request) {
	project := pc.service.GetProject(chi.URLParam(r, "id"))
	if project == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (pc *ProjectController) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ProjectPatch
	if !readJSON(w, r, maxRequestBodySize, &patch) {
		return
	}
	project := pc.service.UpdateProject(chi.URLParam(r, "id"), patch)
	if project == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (pc *ProjectController) Delete(w http.ResponseWriter, r *http.Request) {
	if !pc.service.DeleteProject(chi.URLParam(r, "id")) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Duplicate accepts an empty body, in which case the copy is named after
// the source.
func (pc *ProjectController) Duplicate(w http.ResponseWriter, r *http.Request) {
	if !pc.requireOrganization(w) {
		return
	}
	var req duplicateProjectRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	project := pc.service.DuplicateProject(chi.URLParam(r, "id"), req.Name)
	if project == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (pc *ProjectController) Export(w http.ResponseWriter, r *http.Request) {
	text, ok := pc.service.ExportProjectData(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (pc *ProjectController) Stats(w http.ResponseWriter, r *http.Request) {
	stats := pc.service.GetProjectStats(chi.URLParam(r, "id"))
	if stats == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (pc *ProjectController) AddPairing(w http.ResponseWriter, r *http.Request) {
	var input models.PairingInput
	if !readJSON(w, r, maxAnalysisBodySize, &input) {
		return
	}
	pairing := pc.service.AddPairingToProject(chi.URLParam(r, "id"), input)
	if pairing == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, pairing)
}

func (pc *ProjectController) UpdatePairing(w http.ResponseWriter, r *http.Request) {
	var patch models.PairingPatch
	if !readJSON(w, r, maxAnalysisBodySize, &patch) {
		return
	}
	pairing := pc.service.UpdatePairing(chi.URLParam(r, "id"), chi.URLParam(r, "pairingId"), patch)
	if pairing == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, pairing)
}

func (pc *ProjectController) RemovePairing(w http.ResponseWriter, r *http.Request) {
	if !pc.service.RemovePairingFromProject(chi.URLParam(r, "id"), chi.URLParam(r, "pairingId")) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
