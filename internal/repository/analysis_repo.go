package repository

import (
	"context"
	"errors"

	"crm-insights/internal/model"
	"crm-insights/pkg/utils"

	"gorm.io/gorm"
)

type AnalysisRepository interface {
	Create(ctx context.Context, analysis *model.AIAnalysis, opts ...utils.DBOption) error
	GetLatestByCustomer(ctx context.Context, customerID uint) (*model.AIAnalysis, error)
	AppendHistory(ctx context.Context, history *model.AnalysisHistory, opts ...utils.DBOption) error
	ListHistoryByCustomer(ctx context.Context, customerID uint) ([]model.AnalysisHistory, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(ctx context.Context, analysis *model.AIAnalysis, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return db.Create(analysis).Error
}

func (r *analysisRepository) GetLatestByCustomer(ctx context.Context, customerID uint) (*model.AIAnalysis, error) {
	var analysis model.AIAnalysis
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepository) AppendHistory(ctx context.Context, history *model.AnalysisHistory, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return db.Create(history).Error
}

func (r *analysisRepository) ListHistoryByCustomer(ctx context.Context, customerID uint) ([]model.AnalysisHistory, error) {
	var history []model.AnalysisHistory
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}
