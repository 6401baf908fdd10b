package repository

import (
	"crm-insights/config"
	"crm-insights/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	CustomerRepo      CustomerRepository
	InteractionRepo   InteractionRepository
	RecordingRepo     RecordingRepository
	TranscriptionRepo TranscriptionRepository
	AnalysisRepo      AnalysisRepository
	GeminiAIRepo      AIRepository
	UnitOfWork        UnitOfWork
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	repo := &Repository{
		CustomerRepo:      NewCustomerRepository(db),
		InteractionRepo:   NewInteractionRepository(db),
		RecordingRepo:     NewRecordingRepository(db),
		TranscriptionRepo: NewTranscriptionRepository(db),
		AnalysisRepo:      NewAnalysisRepository(db),
		UnitOfWork:        NewUnitOfWork(db),
	}

	if cfg.Gemini.Enabled() {
		geminiAIRepo, err := NewGeminiAIRepository(cfg, log)
		if err != nil {
			return nil, err
		}
		repo.GeminiAIRepo = geminiAIRepo
	} else {
		log.Warn("GEMINI_API_KEY not configured, AI analysis disabled")
	}

	return repo, nil
}
