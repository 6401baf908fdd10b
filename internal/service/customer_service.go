package service

import (
	"context"
	"fmt"

	"crm-insights/config"
	"crm-insights/internal/dto"
	"crm-insights/internal/model"
	"crm-insights/internal/repository"
	"crm-insights/internal/scoring"
	"crm-insights/pkg/logger"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*model.Customer, error)
	Update(ctx context.Context, id uint, req dto.UpdateCustomerRequest) (*model.Customer, error)
	Get(ctx context.Context, id uint) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Delete(ctx context.Context, id uint) error
	Interactions(ctx context.Context, id uint) ([]model.Interaction, error)
}

type customerService struct {
	cfg             *config.Config
	log             *logger.Logger
	customerRepo    repository.CustomerRepository
	interactionRepo repository.InteractionRepository
}

func NewCustomerService(
	cfg *config.Config,
	log *logger.Logger,
	customerRepo repository.CustomerRepository,
	interactionRepo repository.InteractionRepository,
) CustomerService {
	return &customerService{
		cfg:             cfg,
		log:             log,
		customerRepo:    customerRepo,
		interactionRepo: interactionRepo,
	}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*model.Customer, error) {
	existing, err := s.customerRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCustomerExists
	}

	customer := &model.Customer{
		Code:              req.Code,
		ShortCode:         req.Code[8:],
		Name:              req.Name,
		Product:           req.Product,
		PurchaseAmount:    req.PurchaseAmount,
		BudgetAmount:      req.BudgetAmount,
		ConsumptionAmount: req.ConsumptionAmount,
		RelationshipScore: req.RelationshipScore,
		PotentialScore:    req.PotentialScore,
	}
	rescore(customer)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id uint, req dto.UpdateCustomerRequest) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Product != nil {
		customer.Product = *req.Product
	}
	if req.PurchaseAmount != nil {
		customer.PurchaseAmount = *req.PurchaseAmount
	}
	if req.BudgetAmount != nil {
		customer.BudgetAmount = *req.BudgetAmount
	}
	if req.ConsumptionAmount != nil {
		customer.ConsumptionAmount = *req.ConsumptionAmount
	}
	if req.RelationshipScore != nil {
		customer.RelationshipScore = *req.RelationshipScore
	}
	if req.PotentialScore != nil {
		customer.PotentialScore = *req.PotentialScore
	}
	rescore(customer)

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *customerService) List(ctx context.Context) ([]model.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *customerService) Delete(ctx context.Context, id uint) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}
	return s.customerRepo.Delete(ctx, id)
}

func (s *customerService) Interactions(ctx context.Context, id uint) ([]model.Interaction, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return s.interactionRepo.ListByCustomer(ctx, id)
}

// rescore recomputes the derived scoring fields from the amounts and the two
// externally supplied sub-scores.
func rescore(c *model.Customer) {
	c.PurchaseScore = scoring.PurchaseScore(c.PurchaseAmount + c.BudgetAmount)
	c.ConsumptionScore = scoring.ConsumptionScore(c.ConsumptionAmount)
	c.CompositeScore = scoring.CompositeScore(
		float64(c.PurchaseScore),
		float64(c.ConsumptionScore),
		c.RelationshipScore,
		c.PotentialScore,
	)
	c.Tier = scoring.ClassifyTier(c.PurchaseScore, c.ConsumptionScore)
	c.Priority = scoring.PriorityLabel(c.CompositeScore)
}
