package storage

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"fontpair/internal/providers"
	"fontpair/internal/storage/interfaces"
	"fontpair/internal/structures"
)

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	store   KeyValueStore
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Storage.SaveInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		if err := s.Persist(); err != nil {
			return
		}
		s.logger.Debugf(providers.TypeApp, "Persisted local store")
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if err := s.store.Restore(); err != nil {
		return err
	}
	s.metrics.SetStoredKeys(len(s.store.Keys()))
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.store.Persist()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting local store: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.metrics.SetStoredKeys(len(s.store.Keys()))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store KeyValueStore, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		store:   store,
		metrics: metrics,
	}
}
