package repository

import (
	"testing"

	"crm-insights/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAnalysisJSON = `{
  "radar_scores": {
    "purchase_intent": 8,
    "budget_clarity": 6,
    "decision_authority": 7,
    "need_urgency": 5,
    "trust_level": 9,
    "engagement": 8
  },
  "customer_insight": {"summary": "積極詢價", "personality": "務實", "communication_style": "直接"},
  "product_insight": {"interests": ["水餃機"], "objections": ["價格偏高"]},
  "decision_structure": {"decision_maker": "王小明", "influencers": [], "process": "老闆決定"},
  "sales_analysis": {
    "closing_probability": 72,
    "concerns": ["交期"],
    "strengths": ["品質"],
    "weaknesses": ["價格"],
    "recommended_strategy": "強調投資報酬",
    "next_steps": ["寄送報價單"]
  },
  "detailed_report": "# 分析報告"
}`

func TestRepairAnalysisJSON_StrictParse(t *testing.T) {
	resp, outcome := repairAnalysisJSON(validAnalysisJSON)

	assert.Equal(t, model.AnalysisOutcomeParsed, outcome)
	assert.Equal(t, 8, resp.RadarScores.PurchaseIntent)
	assert.Equal(t, 72, resp.SalesAnalysis.ClosingProbability)
	assert.Equal(t, "# 分析報告", resp.DetailedReport)
}

func TestRepairAnalysisJSON_FencedBlock(t *testing.T) {
	resp, outcome := repairAnalysisJSON("```json\n" + validAnalysisJSON + "\n```")

	assert.Equal(t, model.AnalysisOutcomeParsed, outcome)
	assert.Equal(t, 9, resp.RadarScores.TrustLevel)
}

func TestRepairAnalysisJSON_ControlCharsInReport(t *testing.T) {
	// An unescaped newline inside detailed_report breaks strict JSON syntax.
	broken := "```json\n" +
		"{\"radar_scores\": {\"purchase_intent\": 8, \"budget_clarity\": 6, \"decision_authority\": 7, \"need_urgency\": 5, \"trust_level\": 9, \"engagement\": 8},\n" +
		"\"sales_analysis\": {\"closing_probability\": 60},\n" +
		"\"detailed_report\": \"第一行\n第二行\"}\n" +
		"```"

	resp, outcome := repairAnalysisJSON(broken)

	assert.Equal(t, model.AnalysisOutcomeRepaired, outcome)
	assert.Equal(t, "", resp.DetailedReport)
	assert.Equal(t, 8, resp.RadarScores.PurchaseIntent)
	assert.Equal(t, 60, resp.SalesAnalysis.ClosingProbability)
}

func TestRepairAnalysisJSON_SurroundingProse(t *testing.T) {
	text := "好的，以下是分析結果：\n" + validAnalysisJSON + "\n希望對您有幫助。"

	resp, outcome := repairAnalysisJSON(text)

	assert.Equal(t, model.AnalysisOutcomeRepaired, outcome)
	assert.Equal(t, 72, resp.SalesAnalysis.ClosingProbability)
}

func TestRepairAnalysisJSON_GarbageFallsBackToDefault(t *testing.T) {
	resp, outcome := repairAnalysisJSON("抱歉，我無法完成這項分析。")

	assert.Equal(t, model.AnalysisOutcomeDefaulted, outcome)
	assert.Equal(t, 5, resp.RadarScores.PurchaseIntent)
	assert.Equal(t, 5, resp.RadarScores.Engagement)
	assert.Equal(t, 50, resp.SalesAnalysis.ClosingProbability)
	assert.Empty(t, resp.SalesAnalysis.Concerns)
	assert.NotEmpty(t, resp.DetailedReport)
}

func TestRepairAnalysisJSON_EmptyText(t *testing.T) {
	_, outcome := repairAnalysisJSON("")
	assert.Equal(t, model.AnalysisOutcomeDefaulted, outcome)
}

func TestValidateRadarScore(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int
	}{
		{"plain number", float64(7), 7},
		{"numeric string", "8", 8},
		{"float rounds", 6.6, 7},
		{"above range clamps", float64(15), 10},
		{"below range clamps", float64(-3), 0},
		{"missing defaults to midpoint", nil, 5},
		{"non-numeric defaults to midpoint", "很高", 5},
		{"bool defaults to midpoint", true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateRadarScore(tt.input)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 10)
		})
	}
}

func TestClampClosingProbability(t *testing.T) {
	assert.Equal(t, 85, clampClosingProbability(float64(85)))
	assert.Equal(t, 100, clampClosingProbability(float64(120)))
	assert.Equal(t, 0, clampClosingProbability(float64(-5)))
	assert.Equal(t, 50, clampClosingProbability(nil))
	assert.Equal(t, 50, clampClosingProbability("unsure"))
}

func TestStripDetailedReport(t *testing.T) {
	in := `{"a": 1, "detailed_report": "broken` + "\n" + `stuff"}`
	out := stripDetailedReport(in)

	resp, err := parseRawAnalysis(out)
	require.NoError(t, err)
	assert.Equal(t, "", resp.DetailedReport)
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(`{"a":1}`))
}
