package services

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"fontpair/internal/models"
	"fontpair/internal/storage"
)

type SettingsServiceInterface interface {
	Get() models.Settings
	Update(update models.SettingsUpdate) (models.Settings, error)
	AIMode() models.AIMode
	APIKey() string
	DeviceID() string
}

type SettingsService struct {
	mu       sync.Mutex
	accessor *storage.Accessor
}

func NewSettingsService(accessor *storage.Accessor) SettingsServiceInterface {
	return &SettingsService{accessor: accessor}
}

// Get never includes the API key itself.
func (s *SettingsService) Get() models.Settings {
	onboarding, _ := s.accessor.ReadString(storage.KeyOnboardingCompleted)
	return models.Settings{
		OnboardingCompleted: cast.ToBool(onboarding),
		AIMode:              s.AIMode(),
		HasAPIKey:           s.APIKey() != "",
		DeviceID:            s.DeviceID(),
	}
}

// Update applies the non-nil fields. An empty API key removes the stored one.
func (s *SettingsService) Update(update models.SettingsUpdate) (models.Settings, error) {
	if update.AIMode != nil && !update.AIMode.IsValid() {
		return models.Settings{}, ErrInvalidAIMode
	}

	if update.OnboardingCompleted != nil {
		s.accessor.WriteString(storage.KeyOnboardingCompleted, strconv.FormatBool(*update.OnboardingCompleted))
	}
	if update.AIMode != nil {
		s.accessor.WriteString(storage.KeyAIMode, string(*update.AIMode))
	}
	if update.APIKey != nil {
		if *update.APIKey == "" {
			s.accessor.Delete(storage.KeyAPIKey)
		} else {
			s.accessor.WriteString(storage.KeyAPIKey, *update.APIKey)
		}
	}
	return s.Get(), nil
}

func (s *SettingsService) AIMode() models.AIMode {
	val, _ := s.accessor.ReadString(storage.KeyAIMode)
	mode := models.AIMode(val)
	if !mode.IsValid() {
		return models.AIModeManaged
	}
	return mode
}

func (s *SettingsService) APIKey() string {
	val, _ := s.accessor.ReadString(storage.KeyAPIKey)
	return val
}

// DeviceID is generated on first use and kept for the life of the store.
func (s *SettingsService) DeviceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.accessor.ReadString(storage.KeyDeviceID); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	s.accessor.WriteString(storage.KeyDeviceID, id)
	return id
}
