package repository

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"crm-insights/internal/dto"
	"crm-insights/internal/model"
)

const (
	radarScoreDefault  = 5
	radarScoreMax      = 10
	closingProbDefault = 50
	closingProbMax     = 100

	defaultedReport = "AI 回傳內容無法解析，已套用預設分析結果，請重新執行分析。"
)

// rawAnalysis mirrors dto.AIAnalysisResponse but leaves the numeric fields
// untyped so numbers, numeric strings and garbage can all be normalized.
type rawAnalysis struct {
	RadarScores       map[string]interface{} `json:"radar_scores"`
	CustomerInsight   dto.CustomerInsight    `json:"customer_insight"`
	ProductInsight    dto.ProductInsight     `json:"product_insight"`
	DecisionStructure dto.DecisionStructure  `json:"decision_structure"`
	SalesAnalysis     rawSalesAnalysis       `json:"sales_analysis"`
	DetailedReport    string                 `json:"detailed_report"`
}

type rawSalesAnalysis struct {
	ClosingProbability  interface{} `json:"closing_probability"`
	Concerns            []string    `json:"concerns"`
	Strengths           []string    `json:"strengths"`
	Weaknesses          []string    `json:"weaknesses"`
	RecommendedStrategy string      `json:"recommended_strategy"`
	NextSteps           []string    `json:"next_steps"`
}

// repairAnalysisJSON turns raw model output into a normalized analysis. The
// chain: strict parse, then retry with the detailed_report field stripped
// (unescaped control characters in the long-form text are the usual cause of
// a strict-parse failure), then retry on the first-{ to last-} substring, and
// finally the fixed default. It never fails.
func repairAnalysisJSON(text string) (*dto.AIAnalysisResponse, string) {
	s := stripCodeFences(text)

	if raw, err := parseRawAnalysis(s); err == nil {
		return normalizeAnalysis(raw), model.AnalysisOutcomeParsed
	}

	if raw, err := parseRawAnalysis(stripDetailedReport(s)); err == nil {
		resp := normalizeAnalysis(raw)
		resp.DetailedReport = ""
		return resp, model.AnalysisOutcomeRepaired
	}

	start, end := strings.Index(s, "{"), strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		sub := s[start : end+1]
		if raw, err := parseRawAnalysis(sub); err == nil {
			return normalizeAnalysis(raw), model.AnalysisOutcomeRepaired
		}
		if raw, err := parseRawAnalysis(stripDetailedReport(sub)); err == nil {
			resp := normalizeAnalysis(raw)
			resp.DetailedReport = ""
			return resp, model.AnalysisOutcomeRepaired
		}
	}

	return defaultAnalysis(), model.AnalysisOutcomeDefaulted
}

func parseRawAnalysis(s string) (*rawAnalysis, error) {
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// stripCodeFences unwraps a response the model wrapped in a fenced code block.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// stripDetailedReport cuts everything from the detailed_report key to the end
// of the object and closes it with an empty report. The prompt pins
// detailed_report as the last field, so whatever breaks inside it cannot take
// the rest of the object down with it.
func stripDetailedReport(s string) string {
	idx := strings.Index(s, `"detailed_report"`)
	if idx < 0 {
		return s
	}

	prefix := strings.TrimRight(s[:idx], " \t\r\n")
	prefix = strings.TrimRight(prefix, ",")
	if strings.HasSuffix(prefix, "{") {
		return prefix + `"detailed_report":""}`
	}
	return prefix + `,"detailed_report":""}`
}

func normalizeAnalysis(raw *rawAnalysis) *dto.AIAnalysisResponse {
	resp := &dto.AIAnalysisResponse{
		RadarScores: dto.RadarScores{
			PurchaseIntent:    validateRadarScore(raw.RadarScores["purchase_intent"]),
			BudgetClarity:     validateRadarScore(raw.RadarScores["budget_clarity"]),
			DecisionAuthority: validateRadarScore(raw.RadarScores["decision_authority"]),
			NeedUrgency:       validateRadarScore(raw.RadarScores["need_urgency"]),
			TrustLevel:        validateRadarScore(raw.RadarScores["trust_level"]),
			Engagement:        validateRadarScore(raw.RadarScores["engagement"]),
		},
		CustomerInsight:   raw.CustomerInsight,
		ProductInsight:    raw.ProductInsight,
		DecisionStructure: raw.DecisionStructure,
		SalesAnalysis: dto.SalesAnalysis{
			ClosingProbability:  clampClosingProbability(raw.SalesAnalysis.ClosingProbability),
			Concerns:            emptyIfNil(raw.SalesAnalysis.Concerns),
			Strengths:           emptyIfNil(raw.SalesAnalysis.Strengths),
			Weaknesses:          emptyIfNil(raw.SalesAnalysis.Weaknesses),
			RecommendedStrategy: raw.SalesAnalysis.RecommendedStrategy,
			NextSteps:           emptyIfNil(raw.SalesAnalysis.NextSteps),
		},
		DetailedReport: raw.DetailedReport,
	}
	return resp
}

// validateRadarScore clamps to [0,10]; a missing or non-numeric value
// defaults to the scale midpoint, not zero.
func validateRadarScore(v interface{}) int {
	n, ok := toNumber(v)
	if !ok {
		return radarScoreDefault
	}
	return clampInt(int(math.Round(n)), 0, radarScoreMax)
}

func clampClosingProbability(v interface{}) int {
	n, ok := toNumber(v)
	if !ok {
		return closingProbDefault
	}
	return clampInt(int(math.Round(n)), 0, closingProbMax)
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// defaultAnalysis is the fixed fallback: all radar scores at the midpoint and
// a 50% closing probability.
func defaultAnalysis() *dto.AIAnalysisResponse {
	return &dto.AIAnalysisResponse{
		RadarScores: dto.RadarScores{
			PurchaseIntent:    radarScoreDefault,
			BudgetClarity:     radarScoreDefault,
			DecisionAuthority: radarScoreDefault,
			NeedUrgency:       radarScoreDefault,
			TrustLevel:        radarScoreDefault,
			Engagement:        radarScoreDefault,
		},
		SalesAnalysis: dto.SalesAnalysis{
			ClosingProbability: closingProbDefault,
			Concerns:           []string{},
			Strengths:          []string{},
			Weaknesses:         []string{},
			NextSteps:          []string{},
		},
		DetailedReport: defaultedReport,
	}
}
