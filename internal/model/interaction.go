package model

import "time"

type Interaction struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CustomerID uint      `gorm:"not null;index;uniqueIndex:idx_interactions_customer_hash,priority:1" json:"customer_id"`
	Role       string    `gorm:"not null" json:"role"` // customer | operator
	Sender     string    `gorm:"not null" json:"sender"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
	Content    string    `gorm:"not null" json:"content"`
	DedupHash  string    `gorm:"not null;uniqueIndex:idx_interactions_customer_hash,priority:2" json:"dedup_hash"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Interaction) TableName() string {
	return "interactions"
}

const (
	RoleCustomer = "customer"
	RoleOperator = "operator"
)
