package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crm-insights/config"
	"crm-insights/internal/model"
	"crm-insights/internal/repository"
	"crm-insights/pkg/cache"
	"crm-insights/pkg/logger"
	"crm-insights/pkg/utils"

	"gorm.io/datatypes"
)

const analysisCacheTTL = 30 * time.Minute

type AnalysisService interface {
	Analyze(ctx context.Context, customerID uint) (*model.AIAnalysis, error)
	Latest(ctx context.Context, customerID uint) (*model.AIAnalysis, error)
	History(ctx context.Context, customerID uint) ([]model.AnalysisHistory, error)
}

type analysisService struct {
	cfg   *config.Config
	log   *logger.Logger
	repo  *repository.Repository
	cache cache.Cache
}

func NewAnalysisService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) AnalysisService {
	return &analysisService{
		cfg:   cfg,
		log:   log,
		repo:  repo,
		cache: inmemoryCache,
	}
}

// Analyze runs the AI analysis over the customer's accumulated history and
// persists the result, the customer score merge and the history row in one
// transaction. A transport-level failure persists nothing.
func (s *analysisService) Analyze(ctx context.Context, customerID uint) (*model.AIAnalysis, error) {
	if s.repo.GeminiAIRepo == nil {
		return nil, ErrAnalysisDisabled
	}

	customer, err := s.repo.CustomerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	interactions, err := s.repo.InteractionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	transcriptions, err := s.repo.TranscriptionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcriptions: %w", err)
	}

	result, err := s.repo.GeminiAIRepo.AnalyzeCustomer(ctx, customer, interactions, transcriptions)
	if err != nil {
		return nil, err
	}

	analysis, err := buildAnalysisRow(customerID, result)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(result.Response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis snapshot: %w", err)
	}

	err = s.repo.UnitOfWork.Run(func(opts ...utils.DBOption) error {
		if err := s.repo.AnalysisRepo.Create(ctx, analysis, opts...); err != nil {
			return fmt.Errorf("failed to create analysis: %w", err)
		}

		// Merge the AI view back onto the customer and re-derive the tiers.
		customer.RelationshipScore = float64(analysis.TrustLevel)
		customer.PotentialScore = float64(analysis.PurchaseIntent)
		rescore(customer)
		if err := s.repo.CustomerRepo.Update(ctx, customer, opts...); err != nil {
			return fmt.Errorf("failed to update customer scores: %w", err)
		}

		history := &model.AnalysisHistory{
			CustomerID: customerID,
			AnalysisID: analysis.ID,
			Snapshot:   datatypes.JSON(snapshot),
		}
		if err := s.repo.AnalysisRepo.AppendHistory(ctx, history, opts...); err != nil {
			return fmt.Errorf("failed to append analysis history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(latestAnalysisCacheKey(customerID), analysis, analysisCacheTTL)

	s.log.InfoContext(ctx, "customer analysis stored",
		logger.StringField("customer_code", customer.Code),
		logger.StringField("outcome", analysis.Outcome),
		logger.IntField("closing_probability", analysis.ClosingProbability),
	)

	return analysis, nil
}

func (s *analysisService) Latest(ctx context.Context, customerID uint) (*model.AIAnalysis, error) {
	if cached, found := s.cache.Get(latestAnalysisCacheKey(customerID)); found {
		if analysis, ok := cached.(*model.AIAnalysis); ok {
			return analysis, nil
		}
	}

	analysis, err := s.repo.AnalysisRepo.GetLatestByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if analysis != nil {
		s.cache.Set(latestAnalysisCacheKey(customerID), analysis, analysisCacheTTL)
	}
	return analysis, nil
}

func (s *analysisService) History(ctx context.Context, customerID uint) ([]model.AnalysisHistory, error) {
	return s.repo.AnalysisRepo.ListHistoryByCustomer(ctx, customerID)
}

func latestAnalysisCacheKey(customerID uint) string {
	return fmt.Sprintf("analysis:latest:%d", customerID)
}

func buildAnalysisRow(customerID uint, result *repository.AnalysisResult) (*model.AIAnalysis, error) {
	resp := result.Response

	customerInsight, err := json.Marshal(resp.CustomerInsight)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal customer insight: %w", err)
	}
	productInsight, err := json.Marshal(resp.ProductInsight)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product insight: %w", err)
	}
	decisionStructure, err := json.Marshal(resp.DecisionStructure)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal decision structure: %w", err)
	}
	salesAnalysis, err := json.Marshal(resp.SalesAnalysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sales analysis: %w", err)
	}

	return &model.AIAnalysis{
		CustomerID:         customerID,
		PurchaseIntent:     resp.RadarScores.PurchaseIntent,
		BudgetClarity:      resp.RadarScores.BudgetClarity,
		DecisionAuthority:  resp.RadarScores.DecisionAuthority,
		NeedUrgency:        resp.RadarScores.NeedUrgency,
		TrustLevel:         resp.RadarScores.TrustLevel,
		Engagement:         resp.RadarScores.Engagement,
		ClosingProbability: resp.SalesAnalysis.ClosingProbability,
		CustomerInsight:    datatypes.JSON(customerInsight),
		ProductInsight:     datatypes.JSON(productInsight),
		DecisionStructure:  datatypes.JSON(decisionStructure),
		SalesAnalysis:      datatypes.JSON(salesAnalysis),
		DetailedReport:     resp.DetailedReport,
		Prompt:             result.Prompt,
		Outcome:            result.Outcome,
	}, nil
}
