package service

import (
	"errors"

	"crm-insights/config"
	"crm-insights/internal/repository"
	"crm-insights/pkg/cache"
	"crm-insights/pkg/logger"
	"crm-insights/pkg/objstore"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrCustomerExists    = errors.New("customer already exists")
	ErrRecordingNotFound = errors.New("recording not found")
	ErrAnalysisDisabled  = errors.New("AI analysis is not configured")
	ErrStorageDisabled   = errors.New("object storage is not configured")
)

type Service struct {
	ImportService    ImportService
	CustomerService  CustomerService
	AnalysisService  AnalysisService
	RecordingService RecordingService
}

// NewService wires the services. store may be nil when object storage is not
// configured; the recording feature then degrades to disabled.
func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	store *objstore.Store,
) *Service {
	customerService := NewCustomerService(cfg, log, repo.CustomerRepo, repo.InteractionRepo)
	return &Service{
		ImportService:    NewImportService(cfg, log, repo.CustomerRepo, repo.InteractionRepo, inmemoryCache),
		CustomerService:  customerService,
		AnalysisService:  NewAnalysisService(cfg, log, repo, inmemoryCache),
		RecordingService: NewRecordingService(cfg, log, repo.CustomerRepo, repo.RecordingRepo, repo.TranscriptionRepo, store),
	}
}
