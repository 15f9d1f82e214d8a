package models

type ProjectPairing struct {
	ID           string           `json:"id"`
	LeftFont     FontAnalysis     `json:"leftFont"`
	RightFont    FontAnalysis     `json:"rightFont"`
	LeftPreview  string           `json:"leftPreview,omitempty"`
	RightPreview string           `json:"rightPreview,omitempty"`
	Critique     *PairingCritique `json:"critique,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    int64            `json:"createdAt"`
}

type Project struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Color       string           `json:"color,omitempty"`
	Pairings    []ProjectPairing `json:"pairings"`
	CreatedAt   int64            `json:"createdAt"`
	UpdatedAt   int64            `json:"updatedAt"`
}

// ProjectsDocument is the single stored document holding every project.
type ProjectsDocument struct {
	Projects        []Project `json:"projects"`
	ActiveProjectID *string   `json:"activeProjectId"`
}

type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

type PairingInput struct {
	LeftFont     FontAnalysis     `json:"leftFont"`
	RightFont    FontAnalysis     `json:"rightFont"`
	LeftPreview  string           `json:"leftPreview,omitempty"`
	RightPreview string           `json:"rightPreview,omitempty"`
	Critique     *PairingCritique `json:"critique,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

type PairingPatch struct {
	LeftFont     *FontAnalysis    `json:"leftFont,omitempty"`
	RightFont    *FontAnalysis    `json:"rightFont,omitempty"`
	LeftPreview  *string          `json:"leftPreview,omitempty"`
	RightPreview *string          `json:"rightPreview,omitempty"`
	Critique     *PairingCritique `json:"critique,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

type ProjectStats struct {
	TotalPairings int      `json:"totalPairings"`
	UniqueFonts   int      `json:"uniqueFonts"`
	AverageScore  *float64 `json:"averageScore"`
}

// ProjectExport is the portable text form produced by export.
type ProjectExport struct {
	Version    int     `json:"version"`
	ExportedAt int64   `json:"exportedAt"`
	Project    Project `json:"project"`
}
