package dto

// RadarScores are six 0-10 ratings characterizing a sales conversation.
type RadarScores struct {
	PurchaseIntent    int `json:"purchase_intent"`
	BudgetClarity     int `json:"budget_clarity"`
	DecisionAuthority int `json:"decision_authority"`
	NeedUrgency       int `json:"need_urgency"`
	TrustLevel        int `json:"trust_level"`
	Engagement        int `json:"engagement"`
}

type CustomerInsight struct {
	Summary            string `json:"summary"`
	Personality        string `json:"personality"`
	CommunicationStyle string `json:"communication_style"`
}

type ProductInsight struct {
	Interests  []string `json:"interests"`
	Objections []string `json:"objections"`
}

type DecisionStructure struct {
	DecisionMaker string   `json:"decision_maker"`
	Influencers   []string `json:"influencers"`
	Process       string   `json:"process"`
}

type SalesAnalysis struct {
	ClosingProbability  int      `json:"closing_probability"`
	Concerns            []string `json:"concerns"`
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	RecommendedStrategy string   `json:"recommended_strategy"`
	NextSteps           []string `json:"next_steps"`
}

type AIAnalysisResponse struct {
	RadarScores       RadarScores       `json:"radar_scores"`
	CustomerInsight   CustomerInsight   `json:"customer_insight"`
	ProductInsight    ProductInsight    `json:"product_insight"`
	DecisionStructure DecisionStructure `json:"decision_structure"`
	SalesAnalysis     SalesAnalysis     `json:"sales_analysis"`
	DetailedReport    string            `json:"detailed_report"`
}
