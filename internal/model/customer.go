package model

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Code         string `gorm:"uniqueIndex;not null" json:"code"` // 12-digit external identifier
	ShortCode    string `gorm:"not null" json:"short_code"`       // 4-digit per-day sequence
	Name         string `json:"name"`
	Product      string `json:"product"`
	RegisteredAt *time.Time `json:"registered_at"`

	PurchaseAmount    float64 `gorm:"not null;default:0" json:"purchase_amount"`
	BudgetAmount      float64 `gorm:"not null;default:0" json:"budget_amount"`
	ConsumptionAmount float64 `gorm:"not null;default:0" json:"consumption_amount"`

	PurchaseScore     int     `gorm:"not null;default:0" json:"purchase_score"`
	ConsumptionScore  int     `gorm:"not null;default:0" json:"consumption_score"`
	RelationshipScore float64 `gorm:"not null;default:0" json:"relationship_score"`
	PotentialScore    float64 `gorm:"not null;default:0" json:"potential_score"`
	CompositeScore    float64 `gorm:"not null;default:0" json:"composite_score"`

	Tier     string `json:"tier"`
	Priority string `json:"priority"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	Interactions []Interaction `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"interactions,omitempty"`
	Recordings   []Recording   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"recordings,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}
