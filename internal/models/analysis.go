package models

type AnalysisStatus string

const (
	AnalysisStatusOK            AnalysisStatus = "ok"
	AnalysisStatusNotEnoughData AnalysisStatus = "not_enough_data"
)

type PairingSuggestion struct {
	FontName string `json:"fontName"`
	Role     string `json:"role,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type SimilarFont struct {
	FontName string `json:"fontName"`
	Reason   string `json:"reason,omitempty"`
	IsFree   bool   `json:"isFree,omitempty"`
}

// FontAnalysis is the structured result of one AI analysis. It is never
// mutated after the AI call returns.
type FontAnalysis struct {
	FontName            string              `json:"fontName"`
	FontType            string              `json:"fontType"`
	Designer            string              `json:"designer"`
	Analysis            string              `json:"analysis"`
	Accessibility       string              `json:"accessibility"`
	Usage               []string            `json:"usage"`
	Weights             []string            `json:"weights"`
	BusinessSuitability []string            `json:"businessSuitability"`
	Pairings            []PairingSuggestion `json:"pairings,omitempty"`
	SimilarFonts        []SimilarFont       `json:"similarFonts,omitempty"`
	License             string              `json:"license,omitempty"`
	IsVariable          *bool               `json:"isVariable,omitempty"`
	Status              AnalysisStatus      `json:"status"`
}

// AnalysisRequest carries either an uploaded specimen image or a free-text
// description of the font.
type AnalysisRequest struct {
	ImageBase64 string `json:"imageBase64,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type BatchAnalysisRequest struct {
	Items []AnalysisRequest `json:"items"`
}

type BatchAnalysisResult struct {
	Item  *HistoryItem `json:"item,omitempty"`
	Error string       `json:"error,omitempty"`
}

type SearchCriteria struct {
	Description string   `json:"description"`
	UseCase     string   `json:"useCase,omitempty"`
	Mood        []string `json:"mood,omitempty"`
	Category    string   `json:"category,omitempty"`
	FreeOnly    bool     `json:"freeOnly,omitempty"`
}

type FontSuggestion struct {
	FontName string `json:"fontName"`
	Category string `json:"category,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Source   string `json:"source,omitempty"`
	License  string `json:"license,omitempty"`
}

type FontSearchResult struct {
	Suggestions []FontSuggestion `json:"suggestions"`
	Summary     string           `json:"summary,omitempty"`
}

type PairingCritique struct {
	OverallScore     float64  `json:"overallScore"`
	ContrastScore    float64  `json:"contrastScore,omitempty"`
	HarmonyScore     float64  `json:"harmonyScore,omitempty"`
	ReadabilityScore float64  `json:"readabilityScore,omitempty"`
	Summary          string   `json:"summary"`
	Strengths        []string `json:"strengths,omitempty"`
	Improvements     []string `json:"improvements,omitempty"`
}

// CritiqueRequest optionally names a saved pairing; the critique is then
// attached to it.
type CritiqueRequest struct {
	LeftFont  FontAnalysis `json:"leftFont"`
	RightFont FontAnalysis `json:"rightFont"`
	ProjectID string       `json:"projectId,omitempty"`
	PairingID string       `json:"pairingId,omitempty"`
}
