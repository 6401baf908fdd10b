package repository

import (
	"context"
	"errors"

	"crm-insights/internal/model"

	"gorm.io/gorm"
)

type RecordingRepository interface {
	Create(ctx context.Context, recording *model.Recording) error
	GetByID(ctx context.Context, id uint) (*model.Recording, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Recording, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type recordingRepository struct {
	db *gorm.DB
}

func NewRecordingRepository(db *gorm.DB) RecordingRepository {
	return &recordingRepository{db: db}
}

func (r *recordingRepository) Create(ctx context.Context, recording *model.Recording) error {
	return r.db.WithContext(ctx).Create(recording).Error
}

func (r *recordingRepository) GetByID(ctx context.Context, id uint) (*model.Recording, error) {
	var recording model.Recording
	err := r.db.WithContext(ctx).Preload("Transcription").First(&recording, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recording, nil
}

func (r *recordingRepository) ListByCustomer(ctx context.Context, customerID uint) ([]model.Recording, error) {
	var recordings []model.Recording
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Preload("Transcription").
		Order("call_time DESC, id DESC").
		Find(&recordings).Error
	if err != nil {
		return nil, err
	}
	return recordings, nil
}

func (r *recordingRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.Recording{}).
		Where("id = ?", id).
		Update("status", status).Error
}
