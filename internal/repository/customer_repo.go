package repository

import (
	"context"
	"errors"

	"crm-insights/internal/model"
	"crm-insights/pkg/utils"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Customer, error)
	GetByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Create(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error
	Update(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error
	Delete(ctx context.Context, id uint) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// GetByCode returns nil when the customer does not exist.
func (r *customerRepository) GetByCode(ctx context.Context, code string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Customer, error) {
	db := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	var customer model.Customer
	err := db.First(&customer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Order("composite_score DESC, id ASC").Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return db.Create(customer).Error
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return db.Save(customer).Error
}

// Delete is a soft delete; interactions and recordings stay until the row is
// hard-deleted by the database cascade.
func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Customer{}, id).Error
}
