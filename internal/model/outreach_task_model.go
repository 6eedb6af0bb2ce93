package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusProcessing = "processing"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
)

type OutreachTask struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SourceURL   string    `gorm:"type:text" json:"source_url"`
	PageText    string    `gorm:"type:text" json:"page_text"`
	Length      string    `gorm:"type:varchar(20)" json:"length"`
	CompanyName string    `gorm:"type:varchar(255)" json:"company_name"`
	SenderName  string    `gorm:"type:varchar(255)" json:"sender_name"`
	Status      string    `gorm:"type:varchar(50)" json:"status"`
	Results     string    `gorm:"type:jsonb" json:"results"`
	Error       string    `gorm:"type:text" json:"error"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OutreachResult is the pipeline outcome for one extracted job. Error is set
// when matching or composing failed and the job was skipped.
type OutreachResult struct {
	Job   JobPosting      `json:"job"`
	Links []LinkResult    `json:"links"`
	Email *GeneratedEmail `json:"email,omitempty"`
	Error string          `json:"error,omitempty"`
}
