package dto

import (
	"time"

	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/google/uuid"
)

type OutreachTaskDTO struct {
	ID          uuid.UUID              `json:"id"`
	Status      string                 `json:"status"` // e.g. "processing", "completed", "failed"
	SourceURL   string                 `json:"source_url,omitempty"`
	Length      string                 `json:"length"`
	CompanyName string                 `json:"company_name"`
	SenderName  string                 `json:"sender_name"`
	Results     []model.OutreachResult `json:"results"`
	Error       string                 `json:"error,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
