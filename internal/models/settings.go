package models

type AIMode string

const (
	// AIModeManaged uses the daemon's configured API key.
	AIModeManaged AIMode = "managed"
	// AIModeBYOK uses the key the user stored in settings.
	AIModeBYOK AIMode = "byok"
)

func (m AIMode) IsValid() bool {
	return m == AIModeManaged || m == AIModeBYOK
}

type Settings struct {
	OnboardingCompleted bool   `json:"onboardingCompleted"`
	AIMode              AIMode `json:"aiMode"`
	HasAPIKey           bool   `json:"hasApiKey"`
	DeviceID            string `json:"deviceId"`
}

type SettingsUpdate struct {
	OnboardingCompleted *bool   `json:"onboardingCompleted,omitempty"`
	AIMode              *AIMode `json:"aiMode,omitempty"`
	APIKey              *string `json:"apiKey,omitempty"`
}
