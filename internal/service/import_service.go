package service

import (
	"context"
	"fmt"
	"time"

	"crm-insights/config"
	"crm-insights/internal/dto"
	"crm-insights/internal/model"
	"crm-insights/internal/parser"
	"crm-insights/internal/repository"
	"crm-insights/pkg/cache"
	"crm-insights/pkg/logger"
)

const customerCacheTTL = 10 * time.Minute

type ImportService interface {
	ImportConversation(ctx context.Context, filename string, data []byte) (*dto.ImportReport, error)
}

type importService struct {
	cfg             *config.Config
	log             *logger.Logger
	customerRepo    repository.CustomerRepository
	interactionRepo repository.InteractionRepository
	cache           cache.Cache
}

func NewImportService(
	cfg *config.Config,
	log *logger.Logger,
	customerRepo repository.CustomerRepository,
	interactionRepo repository.InteractionRepository,
	inmemoryCache cache.Cache,
) ImportService {
	return &importService{
		cfg:             cfg,
		log:             log,
		customerRepo:    customerRepo,
		interactionRepo: interactionRepo,
		cache:           inmemoryCache,
	}
}

// ImportConversation parses one conversation export and appends the new
// interactions. Rows are processed strictly sequentially, one dedup check and
// one insert each; a mid-import failure leaves already-inserted rows
// committed. Re-importing identical content yields zero new records.
func (s *importService) ImportConversation(ctx context.Context, filename string, data []byte) (*dto.ImportReport, error) {
	parsed, err := parser.ParseConversation(data, filename)
	if err != nil {
		return nil, err
	}

	customer, err := s.upsertCustomer(ctx, parsed.Identity)
	if err != nil {
		return nil, err
	}

	report := &dto.ImportReport{
		CustomerID:     parsed.Identity.ShortCode,
		CustomerName:   customer.Name,
		ProductName:    customer.Product,
		TotalRecords:   parsed.TotalRecords,
		CannedMessages: parsed.CannedCount,
	}

	for _, msg := range parsed.Messages {
		exists, err := s.interactionRepo.ExistsByHash(ctx, customer.ID, msg.Hash)
		if err != nil {
			return nil, fmt.Errorf("failed to check interaction hash: %w", err)
		}
		if exists {
			report.DuplicateRecords++
			continue
		}

		interaction := model.Interaction{
			CustomerID: customer.ID,
			Role:       msg.Role,
			Sender:     msg.Sender,
			Timestamp:  msg.Timestamp,
			Content:    msg.Content,
			DedupHash:  msg.Hash,
		}
		if err := s.interactionRepo.Create(ctx, &interaction); err != nil {
			return nil, fmt.Errorf("failed to insert interaction: %w", err)
		}
		report.NewRecords++
	}

	s.log.InfoContext(ctx, "conversation import finished",
		logger.StringField("customer_code", parsed.Identity.Code),
		logger.IntField("total", report.TotalRecords),
		logger.IntField("new", report.NewRecords),
		logger.IntField("duplicate", report.DuplicateRecords),
		logger.IntField("canned", report.CannedMessages),
	)

	return report, nil
}

// upsertCustomer looks the customer up by external code and creates it on
// first import. Core fields of an existing customer are never overwritten by
// a re-import.
func (s *importService) upsertCustomer(ctx context.Context, identity parser.Identity) (*model.Customer, error) {
	cacheKey := "customer:" + identity.Code
	if cached, found := s.cache.Get(cacheKey); found {
		if customer, ok := cached.(*model.Customer); ok {
			return customer, nil
		}
	}

	customer, err := s.customerRepo.GetByCode(ctx, identity.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer %s: %w", identity.Code, err)
	}

	if customer == nil {
		customer = &model.Customer{
			Code:      identity.Code,
			ShortCode: identity.ShortCode,
			Name:      identity.Name,
			Product:   identity.Product,
		}
		if !identity.RegisteredAt.IsZero() {
			registeredAt := identity.RegisteredAt
			customer.RegisteredAt = &registeredAt
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return nil, fmt.Errorf("failed to create customer %s: %w", identity.Code, err)
		}
	}

	s.cache.Set(cacheKey, customer, customerCacheTTL)
	return customer, nil
}
