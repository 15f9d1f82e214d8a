package models

type UserTier string

const (
	TierFree         UserTier = "free"
	TierProfessional UserTier = "professional"
)

func (t UserTier) IsValid() bool {
	return t == TierFree || t == TierProfessional
}

// Unlimited marks a limit that never gates.
const Unlimited = -1

// MaxStoredHistory is the storage cap for both history logs, independent of
// how many entries the tier may display.
const MaxStoredHistory = 100

type TierLimits struct {
	DailyAnalyses     int `json:"dailyAnalyses"`
	DailySearches     int `json:"dailySearches"`
	LifetimeCritiques int `json:"lifetimeCritiques"`
	HistoryItems      int `json:"historyItems"`
	MaxDevices        int `json:"maxDevices"`
}

type GlyphComparison string

const (
	GlyphComparisonBasic GlyphComparison = "basic"
	GlyphComparisonFull  GlyphComparison = "full"
)

type Feature string

const (
	FeaturePairingCritique     Feature = "pairingCritique"
	FeatureBatchAnalysis       Feature = "batchAnalysis"
	FeatureWCAGReports         Feature = "wcagReports"
	FeaturePDFWatermark        Feature = "pdfWatermark"
	FeatureCSSExport           Feature = "cssExport"
	FeatureShareableLinks      Feature = "shareableLinks"
	FeatureProjectOrganization Feature = "projectOrganization"
	FeatureTypeScaleBuilder    Feature = "typeScaleBuilder"
	FeatureDualFontSlots       Feature = "dualFontSlots"
)

type TierFeatures struct {
	PairingCritique     bool            `json:"pairingCritique"`
	BatchAnalysis       bool            `json:"batchAnalysis"`
	GlyphComparison     GlyphComparison `json:"glyphComparison"`
	WCAGReports         bool            `json:"wcagReports"`
	PDFWatermark        bool            `json:"pdfWatermark"`
	CSSExport           bool            `json:"cssExport"`
	ShareableLinks      bool            `json:"shareableLinks"`
	ProjectOrganization bool            `json:"projectOrganization"`
	TypeScaleBuilder    bool            `json:"typeScaleBuilder"`
	DualFontSlots       bool            `json:"dualFontSlots"`
}

func (f TierFeatures) Has(feature Feature) bool {
	switch feature {
	case FeaturePairingCritique:
		return f.PairingCritique
	case FeatureBatchAnalysis:
		return f.BatchAnalysis
	case FeatureWCAGReports:
		return f.WCAGReports
	case FeaturePDFWatermark:
		return f.PDFWatermark
	case FeatureCSSExport:
		return f.CSSExport
	case FeatureShareableLinks:
		return f.ShareableLinks
	case FeatureProjectOrganization:
		return f.ProjectOrganization
	case FeatureTypeScaleBuilder:
		return f.TypeScaleBuilder
	case FeatureDualFontSlots:
		return f.DualFontSlots
	}
	return false
}

type TierConfig struct {
	Limits   TierLimits   `json:"limits"`
	Features TierFeatures `json:"features"`
}

var tierConfigs = map[UserTier]TierConfig{
	TierFree: {
		Limits: TierLimits{
			DailyAnalyses:     3,
			DailySearches:     3,
			LifetimeCritiques: 1,
			HistoryItems:      3,
			MaxDevices:        1,
		},
		Features: TierFeatures{
			PairingCritique: true,
			GlyphComparison: GlyphComparisonBasic,
			PDFWatermark:    true,
		},
	},
	TierProfessional: {
		Limits: TierLimits{
			DailyAnalyses:     Unlimited,
			DailySearches:     Unlimited,
			LifetimeCritiques: Unlimited,
			HistoryItems:      MaxStoredHistory,
			MaxDevices:        3,
		},
		Features: TierFeatures{
			PairingCritique:     true,
			BatchAnalysis:       true,
			GlyphComparison:     GlyphComparisonFull,
			WCAGReports:         true,
			PDFWatermark:        false,
			CSSExport:           true,
			ShareableLinks:      true,
			ProjectOrganization: true,
			TypeScaleBuilder:    true,
			DualFontSlots:       true,
		},
	},
}

// GetTierConfig falls back to the free tier for unknown values.
func GetTierConfig(tier UserTier) TierConfig {
	if conf, ok := tierConfigs[tier]; ok {
		return conf
	}
	return tierConfigs[TierFree]
}

type CounterKind string

const (
	CounterAnalysis  CounterKind = "analysis"
	CounterFindFonts CounterKind = "findFonts"
	CounterCritique  CounterKind = "critique"
)

type QuotaStatus struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"`
	Unlimited bool   `json:"unlimited"`
	Message   string `json:"message,omitempty"`
}

type EntitlementSummary struct {
	Tier       UserTier     `json:"tier"`
	TierChosen bool         `json:"tierChosen"`
	Limits     TierLimits   `json:"limits"`
	Features   TierFeatures `json:"features"`
	Analysis   QuotaStatus  `json:"analysis"`
	FindFonts  QuotaStatus  `json:"findFonts"`
	Critique   QuotaStatus  `json:"critique"`
}
