package services

import (
	"math"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"

	"fontpair/internal/models"
	"fontpair/internal/providers"
	"fontpair/internal/storage"
)

const exportVersion = 1

type ProjectServiceInterface interface {
	CreateProject(name, description, color string) models.Project
	GetProjects() []models.Project
	GetProject(id string) *models.Project
	GetActiveProject() *models.Project
	SetActiveProject(id *string) error
	UpdateProject(id string, patch models.ProjectPatch) *models.Project
	DeleteProject(id string) bool
	AddPairingToProject(projectID string, input models.PairingInput) *models.ProjectPairing
	UpdatePairing(projectID, pairingID string, patch models.PairingPatch) *models.ProjectPairing
	RemovePairingFromProject(projectID, pairingID string) bool
	DuplicateProject(id, newName string) *models.Project
	ExportProjectData(id string) (string, bool)
	ImportProjectData(text string) *models.Project
	GetProjectStats(id string) *models.ProjectStats
}

// ProjectService does a full read-modify-write of the projects document for
// every mutation. Lookups of unknown ids return nil.
type ProjectService struct {
	mu       sync.Mutex
	accessor *storage.Accessor
	clock    Clock
	logger   providers.Logger
}

func NewProjectService(accessor *storage.Accessor, clock Clock, logger providers.Logger) ProjectServiceInterface {
	return &ProjectService{accessor: accessor, clock: clock, logger: logger}
}

func (p *ProjectService) load() models.ProjectsDocument {
	var doc models.ProjectsDocument
	p.accessor.ReadJSON(storage.KeyProjects, &doc)
	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	return doc
}

func (p *ProjectService) save(doc models.ProjectsDocument) {
	p.accessor.WriteJSON(storage.KeyProjects, doc)
}

func indexOf(doc models.ProjectsDocument, id string) int {
	for i := range doc.Projects {
		if doc.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *ProjectService) CreateProject(name, description, color string) models.Project {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	project := models.Project{
		ID:          newID(now),
		Name:        name,
		Description: description,
		Color:       color,
		Pairings:    []models.ProjectPairing{},
		CreatedAt:   now.UnixMilli(),
		UpdatedAt:   now.UnixMilli(),
	}

	doc := p.load()
	doc.Projects = append(doc.Projects, project)
	doc.ActiveProjectID = &project.ID
	p.save(doc)
	return project
}

func (p *ProjectService) GetProjects() []models.Project {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.load().Projects
}

func (p *ProjectService) GetProject(id string) *models.Project {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.load()
	if i := indexOf(doc, id); i >= 0 {
		return &doc.Projects[i]
	}
	return nil
}

func (p *ProjectService) GetActiveProject() *models.Project {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.load()
	if doc.ActiveProjectID == nil {
		return nil
	}
	if i := indexOf(doc, *doc.ActiveProjectID); i >= 0 {
		return &doc.Projects[i]
	}
	return nil
}

// SetActiveProject moves the active pointer. A nil id clears it; an id that
// names no project is rejected and the pointer is left alone.
func (p *ProjectService) SetActiveProject(id *string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.load()
	if id != nil && indexOf(doc, *id) < 0 {
		return ErrProjectNotFound
	}
	doc.ActiveProjectID = id
	p.save(doc)
	return nil
}

func (p *ProjectService) UpdateProject(id string, patch models.ProjectPatch) *models.Project {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.load()
	i := indexOf(doc, id)
	if i < 0 {
		return nil
	}
	project := &doc.Projects[i]
	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Color != nil {
		project.Color = *patch.Color
	}
	project.UpdatedAt = p.clock.Now().UnixMilli()
	p.save(doc)
	return project
}

// DeleteProject moves the active pointer to the first remaining project
// when the active one is deleted.
func (p *ProjectService) DeleteProject(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.load()
	i := indexOf(doc, id)
	if i < 0 {
		return false
	}
	doc.Projects = append(doc.Projects[:i], doc.Projects[i+1:]...)
	if doc.ActiveProjectID != nil && *doc.ActiveProjectID == id {
		if len(doc.Projects) > 0 {
			first := doc.Projects[0].ID
			doc.ActiveProjectID = &first
		} else {
			doc.ActiveProjectID = nil
		}
	}
	p.save(doc)
	return true
}

func (p *ProjectService) AddPairingToProject(projectID string, input models.PairingInput) *models.ProjectPairing {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.load()
	i := indexOf(doc, projectID)
	if i < 0 {
		return nil
	}
	now := p.clock.Now()
	pairing := models.ProjectPairing{
		ID:           newID(now),
		LeftFont:     input.LeftFont,
		RightFont:    input.RightFont,
		LeftPreview:  input.LeftPreview,
		RightPreview: input.RightPreview,
		Critique:     input.Critique,
		Notes:        input.Notes,
		CreatedAt:    now.UnixMilli(),
	}
	doc.Projects[i].Pairings = append(doc.Projects[i].Pairings, pairing)
	doc.Projects[i].UpdatedAt = now.UnixMilli()
	p.save(doc)
	return &pairing
}

func (p *ProjectService) UpdatePairing(projectID, pairingID string, patch models.PairingPatch) *models.ProjectPairing {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.load()
	i := indexOf(doc, projectID)
	if i < 0 {
		return nil
	}
	project := &doc.Projects[i]
	for j := range project.Pairings {
		pairing := &project.Pairings[j]
		if pairing.ID != pairingID {
			continue
		}
		if patch.LeftFont != nil {
			pairing.LeftFont = *patch.LeftFont
		}
		if patch.RightFont != nil {
			pairing.RightFont = *patch.RightFont
		}
		if patch.LeftPreview != nil {
			pairing.LeftPreview = *patch.LeftPreview
		}
		if patch.RightPreview != nil {
			pairing.RightPreview = *patch.RightPreview
		}
		if patch.Critique != nil {
			pairing.Critique = patch.Critique
		}
		if patch.Notes != nil {
			pairing.Notes = *patch.Notes
		}
		project.UpdatedAt = p.clock.Now().UnixMilli()
		p.save(doc)
		return pairing
	}
	return nil
}

func (p *ProjectService) RemovePairingFromProject(projectID, pairingID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.load()
	i := indexOf(doc, projectID)
	if i < 0 {
		return false
	}
	kept, removed := removeByID(doc.Projects[i].Pairings, pairingID, func(pp models.ProjectPairing) string { return pp.ID })
	if !removed {
		return false
	}
	doc.Projects[i].Pairings = kept
	doc.Projects[i].UpdatedAt = p.clock.Now().UnixMilli()
	p.save(doc)
	return true
}

// DuplicateProject deep-copies a project under fresh ids and timestamps.
// An empty newName gives "<name> (Copy)".
func (p *ProjectService) DuplicateProject(id, newName string) *models.Project {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.load()
	i := indexOf(doc, id)
	if i < 0 {
		return nil
	}
	copied, err := cloneProject(doc.Projects[i])
	if err != nil {
		p.logger.Errorf(providers.TypeApp, "Unable to duplicate project %s: %s", id, err)
		return nil
	}
	if newName == "" {
		newName = copied.Name + " (Copy)"
	}
	copied.Name = newName
	p.renew(&copied)

	doc.Projects = append(doc.Projects, copied)
	p.save(doc)
	return &copied
}

// ExportProjectData returns the indented export envelope for one project.
func (p *ProjectService) ExportProjectData(id string) (string, bool) {
	project := p.GetProject(id)
	if project == nil {
		return "", false
	}
	data, err := json.MarshalIndent(models.ProjectExport{
		Version:    exportVersion,
		ExportedAt: p.clock.Now().UnixMilli(),
		Project:    *project,
	}, "", "  ")
	if err != nil {
		p.logger.Errorf(providers.TypeApp, "Unable to export project %s: %s", id, err)
		return "", false
	}
	return string(data), true
}

// ImportProjectData accepts an export envelope or a bare project. The
// imported project gets new ids and timestamps and an " (Imported)" suffix.
// Malformed input is logged and yields nil.
func (p *ProjectService) ImportProjectData(text string) *models.Project {
	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		p.logger.Warnf(providers.TypeApp, "Project import rejected, not a JSON object: %s", err)
		return nil
	}
	if inner, ok := raw["project"].(map[string]any); ok {
		raw = inner
	}

	// an empty pairings array is valid, so it is checked outside the validator
	if _, ok := raw["pairings"].([]any); !ok {
		p.logger.Warnf(providers.TypeApp, "Project import rejected: pairings must be an array")
		return nil
	}
	v := validate.Map(raw)
	v.StringRules(validate.MS{"name": "required|string"})
	if !v.Validate() {
		p.logger.Warnf(providers.TypeApp, "Project import rejected: %s", v.Errors.One())
		return nil
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		p.logger.Warnf(providers.TypeApp, "Project import rejected: %s", err)
		return nil
	}
	var project models.Project
	if err := json.Unmarshal(normalized, &project); err != nil {
		p.logger.Warnf(providers.TypeApp, "Project import rejected: %s", err)
		return nil
	}
	if project.Pairings == nil {
		project.Pairings = []models.ProjectPairing{}
	}
	project.Name += " (Imported)"

	p.mu.Lock()
	defer p.mu.Unlock()

	p.renew(&project)
	doc := p.load()
	doc.Projects = append(doc.Projects, project)
	p.save(doc)
	return &project
}

// GetProjectStats counts distinct font names across both slots and averages
// critique scores to one decimal.
func (p *ProjectService) GetProjectStats(id string) *models.ProjectStats {
	project := p.GetProject(id)
	if project == nil {
		return nil
	}

	fonts := make(map[string]struct{})
	var (
		sum       float64
		critiqued int
	)
	for _, pairing := range project.Pairings {
		for _, name := range []string{pairing.LeftFont.FontName, pairing.RightFont.FontName} {
			if name != "" {
				fonts[name] = struct{}{}
			}
		}
		if pairing.Critique != nil {
			sum += pairing.Critique.OverallScore
			critiqued++
		}
	}

	stats := &models.ProjectStats{
		TotalPairings: len(project.Pairings),
		UniqueFonts:   len(fonts),
	}
	if critiqued > 0 {
		avg := math.Round(sum/float64(critiqued)*10) / 10
		stats.AverageScore = &avg
	}
	return stats
}

func (p *ProjectService) renew(project *models.Project) {
	now := p.clock.Now()
	project.ID = newID(now)
	project.CreatedAt = now.UnixMilli()
	project.UpdatedAt = now.UnixMilli()
	for i := range project.Pairings {
		project.Pairings[i].ID = newID(now)
		project.Pairings[i].CreatedAt = now.UnixMilli()
	}
}

func cloneProject(project models.Project) (models.Project, error) {
	var copied models.Project
	data, err := json.Marshal(project)
	if err != nil {
		return copied, err
	}
	err = json.Unmarshal(data, &copied)
	if copied.Pairings == nil {
		copied.Pairings = []models.ProjectPairing{}
	}
	return copied, err
}
