package repository

import (
	"context"

	"crm-insights/internal/model"

	"gorm.io/gorm"
)

type TranscriptionRepository interface {
	Create(ctx context.Context, transcription *model.Transcription) error
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Transcription, error)
}

type transcriptionRepository struct {
	db *gorm.DB
}

func NewTranscriptionRepository(db *gorm.DB) TranscriptionRepository {
	return &transcriptionRepository{db: db}
}

func (r *transcriptionRepository) Create(ctx context.Context, transcription *model.Transcription) error {
	return r.db.WithContext(ctx).Create(transcription).Error
}

func (r *transcriptionRepository) ListByCustomer(ctx context.Context, customerID uint) ([]model.Transcription, error) {
	var transcriptions []model.Transcription
	err := r.db.WithContext(ctx).
		Joins("JOIN recordings ON recordings.id = transcriptions.recording_id").
		Where("recordings.customer_id = ?", customerID).
		Order("transcriptions.created_at ASC").
		Find(&transcriptions).Error
	if err != nil {
		return nil, err
	}
	return transcriptions, nil
}
