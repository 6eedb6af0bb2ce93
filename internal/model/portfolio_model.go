package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

var ErrEmptyLink = errors.New("portfolio entry link cannot be empty")

// PortfolioEntry is one row of the backing table (Techstack, Links).
type PortfolioEntry struct {
	Techstack string `json:"techstack"`
	Link      string `json:"link"`
}

func (e PortfolioEntry) Validate() error {
	if strings.TrimSpace(e.Link) == "" {
		return ErrEmptyLink
	}
	return nil
}

// PortfolioDocument is the indexed form of an entry: the techstack is the
// embedded document and the link is its payload.
type PortfolioDocument struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Techstack string          `gorm:"type:text" json:"techstack"`
	Link      string          `gorm:"type:text" json:"link"`
	Embedding pgvector.Vector `gorm:"type:vector" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
}

func (d *PortfolioDocument) TableName() string {
	return "portfolio_documents"
}

type LinkMatch struct {
	Link      string  `json:"link"`
	Techstack string  `json:"techstack"`
	Distance  float64 `json:"distance"`
}

// LinkResult holds the nearest portfolio links for one queried skill, closest first.
type LinkResult struct {
	Skill   string      `json:"skill"`
	Matches []LinkMatch `json:"matches"`
}

func (r LinkResult) Links() []string {
	links := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		links = append(links, m.Link)
	}
	return links
}

// UniqueLinks flattens results into distinct links, keeping first-seen order.
func UniqueLinks(results []LinkResult) []string {
	seen := make(map[string]bool)
	var links []string
	for _, r := range results {
		for _, m := range r.Matches {
			if seen[m.Link] {
				continue
			}
			seen[m.Link] = true
			links = append(links, m.Link)
		}
	}
	return links
}
