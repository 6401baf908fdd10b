package model

import (
	"time"

	"gorm.io/datatypes"
)

// Outcome of the model-output parse. Transport failures never produce a row.
const (
	AnalysisOutcomeParsed    = "parsed"
	AnalysisOutcomeRepaired  = "repaired"
	AnalysisOutcomeDefaulted = "defaulted"
)

type AIAnalysis struct {
	ID         uint `gorm:"primarykey" json:"id"`
	CustomerID uint `gorm:"not null;index" json:"customer_id"`

	PurchaseIntent    int `gorm:"not null" json:"purchase_intent"`
	BudgetClarity     int `gorm:"not null" json:"budget_clarity"`
	DecisionAuthority int `gorm:"not null" json:"decision_authority"`
	NeedUrgency       int `gorm:"not null" json:"need_urgency"`
	TrustLevel        int `gorm:"not null" json:"trust_level"`
	Engagement        int `gorm:"not null" json:"engagement"`

	ClosingProbability int `gorm:"not null" json:"closing_probability"`

	CustomerInsight   datatypes.JSON `gorm:"type:jsonb" json:"customer_insight"`
	ProductInsight    datatypes.JSON `gorm:"type:jsonb" json:"product_insight"`
	DecisionStructure datatypes.JSON `gorm:"type:jsonb" json:"decision_structure"`
	SalesAnalysis     datatypes.JSON `gorm:"type:jsonb" json:"sales_analysis"`

	DetailedReport string `json:"detailed_report"`
	Prompt         string `gorm:"not null" json:"-"`
	Outcome        string `gorm:"not null" json:"outcome"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AIAnalysis) TableName() string {
	return "ai_analyses"
}

// AnalysisHistory is append-only; rows are never deleted individually.
type AnalysisHistory struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CustomerID uint           `gorm:"not null;index" json:"customer_id"`
	AnalysisID uint           `gorm:"not null" json:"analysis_id"`
	Snapshot   datatypes.JSON `gorm:"type:jsonb" json:"snapshot"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (AnalysisHistory) TableName() string {
	return "analysis_history"
}
