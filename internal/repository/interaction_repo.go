package repository

import (
	"context"

	"crm-insights/internal/model"

	"gorm.io/gorm"
)

type InteractionRepository interface {
	ExistsByHash(ctx context.Context, customerID uint, hash string) (bool, error)
	Create(ctx context.Context, interaction *model.Interaction) error
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Interaction, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) ExistsByHash(ctx context.Context, customerID uint, hash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Where("customer_id = ? AND dedup_hash = ?", customerID, hash).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *interactionRepository) Create(ctx context.Context, interaction *model.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

func (r *interactionRepository) ListByCustomer(ctx context.Context, customerID uint) ([]model.Interaction, error) {
	var interactions []model.Interaction
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("timestamp ASC, id ASC").
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}
