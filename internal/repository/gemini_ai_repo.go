package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"crm-insights/config"
	"crm-insights/internal/dto"
	"crm-insights/internal/model"
	"crm-insights/pkg/httpclient"
	"crm-insights/pkg/logger"
	"crm-insights/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// AnalysisResult is the adapter output. Outcome records whether the model
// output parsed cleanly, needed repair, or fell back to the default analysis.
type AnalysisResult struct {
	Response *dto.AIAnalysisResponse
	Outcome  string
	Prompt   string
}

type AIRepository interface {
	AnalyzeCustomer(ctx context.Context, customer *model.Customer, interactions []model.Interaction, transcriptions []model.Transcription) (*AnalysisResult, error)
}

// geminiAIRepository implements AIRepository against the Google Gemini API.
type geminiAIRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiAIRepository{
		httpClient:     httpclient.New(cfg.Gemini.BaseURL, cfg.Gemini.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
	}, nil
}

// AnalyzeCustomer turns one customer's interaction and call history into a
// structured analysis. Transport failures return an error; malformed model
// output never does, it degrades through the repair chain to a default.
func (r *geminiAIRepository) AnalyzeCustomer(ctx context.Context, customer *model.Customer, interactions []model.Interaction, transcriptions []model.Transcription) (*AnalysisResult, error) {
	if len(interactions) == 0 && len(transcriptions) == 0 {
		r.logger.ErrorContext(ctx, "no history to analyze", logger.StringField("customer_code", customer.Code))
		return nil, fmt.Errorf("no interactions or transcriptions for customer %s", customer.Code)
	}

	prompt := r.promptAnalyzeCustomer(customer, interactions, transcriptions)

	geminiAPIResponse, err := r.sendRequest(ctx, prompt)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to send request to gemini", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to gemini: %w", err)
	}

	text := candidateText(geminiAPIResponse)
	response, outcome := repairAnalysisJSON(text)
	if outcome != model.AnalysisOutcomeParsed {
		r.logger.WarnContext(ctx, "gemini response needed repair",
			logger.StringField("customer_code", customer.Code),
			logger.StringField("outcome", outcome),
		)
	}

	return &AnalysisResult{
		Response: response,
		Outcome:  outcome,
		Prompt:   prompt,
	}, nil
}

func (r *geminiAIRepository) sendRequest(ctx context.Context, prompt string) (*dto.GeminiAPIResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.BaseModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)
	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for token gemini limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request gemini limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
		GenerationConfig: dto.GenerationConfig{
			Temperature:     r.cfg.Gemini.Temperature,
			MaxOutputTokens: r.cfg.Gemini.MaxOutputTokens,
		},
	}

	geminiAPIResponse := dto.GeminiAPIResponse{}

	apiURL := fmt.Sprintf("/%s:generateContent?key=%s", r.cfg.Gemini.BaseModel, r.cfg.Gemini.APIKey)

	geminiResp, err := r.httpClient.Post(ctx, apiURL, payload, nil, &geminiAPIResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to gemini: %w", err)
	}

	if geminiResp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "failed to get data from gemini", logger.IntField("status_code", geminiResp.StatusCode))
		return nil, fmt.Errorf("gemini returned status %d: %s", geminiResp.StatusCode, geminiResp.Body)
	}

	return &geminiAPIResponse, nil
}

// candidateText pulls the generated text out of the response envelope. An
// empty envelope counts as malformed output and flows into the repair chain.
func candidateText(response *dto.GeminiAPIResponse) string {
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return response.Candidates[0].Content.Parts[0].Text
}
