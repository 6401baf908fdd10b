package model

import "time"

const (
	RecordingStatusPending      = "pending"
	RecordingStatusTranscribing = "transcribing"
	RecordingStatusCompleted    = "completed"
	RecordingStatusFailed       = "failed"
)

type Recording struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CustomerID  uint      `gorm:"not null;index" json:"customer_id"`
	Filename    string    `gorm:"not null" json:"filename"`
	ObjectKey   string    `gorm:"not null" json:"object_key"`
	URL         string    `json:"url"`
	Salesperson string    `json:"salesperson"`
	Product     string    `json:"product"`
	CallTime    time.Time `json:"call_time"`
	DurationSec int       `gorm:"not null;default:0" json:"duration_sec"`
	Status      string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Transcription *Transcription `gorm:"foreignKey:RecordingID" json:"transcription,omitempty"`
}

func (Recording) TableName() string {
	return "recordings"
}

type Transcription struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	RecordingID uint      `gorm:"not null;uniqueIndex" json:"recording_id"`
	Text        string    `gorm:"not null" json:"text"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Transcription) TableName() string {
	return "transcriptions"
}
