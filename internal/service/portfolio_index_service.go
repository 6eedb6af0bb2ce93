package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/fadilmartias/cold-mailer/internal/repository"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

var ErrIndexOutOfRange = errors.New("portfolio index out of range")

// PortfolioTable is the persisted source of truth for portfolio entries.
type PortfolioTable interface {
	Load() ([]model.PortfolioEntry, error)
	Save(entries []model.PortfolioEntry) error
}

// PortfolioIndexService keeps a vector store in step with the portfolio table
// and answers skill queries with the nearest portfolio links.
//
// Staleness is detected by document count only: replacing the table with a
// different set of the same size is not noticed. Call Rebuild after such a
// change.
type PortfolioIndexService struct {
	mu       sync.RWMutex
	store    repository.VectorStore
	embedder EmbedderInterface
	table    PortfolioTable
	entries  []model.PortfolioEntry
	nResults int
}

func NewPortfolioIndexService(store repository.VectorStore, embedder EmbedderInterface, table PortfolioTable, defaultNResults int) *PortfolioIndexService {
	if defaultNResults <= 0 {
		defaultNResults = 2
	}
	return &PortfolioIndexService{
		store:    store,
		embedder: embedder,
		table:    table,
		nResults: defaultNResults,
	}
}

// Load reads the backing table and indexes it if the store looks stale.
func (s *PortfolioIndexService) Load(ctx context.Context) error {
	entries, err := s.table.Load()
	if err != nil {
		return fmt.Errorf("load portfolio table: %w", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	_, err = s.EnsureLoaded(ctx, entries)
	return err
}

// Entries returns a copy of the current backing table.
func (s *PortfolioIndexService) Entries() []model.PortfolioEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.PortfolioEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Rebuild drops the index and inserts one document per entry.
func (s *PortfolioIndexService) Rebuild(ctx context.Context, entries []model.PortfolioEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuildLocked(ctx, entries)
}

// EnsureLoaded rebuilds when the index is empty or its document count differs
// from len(entries). It reports whether a rebuild happened.
func (s *PortfolioIndexService) EnsureLoaded(ctx context.Context, entries []model.PortfolioEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.store.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count portfolio documents: %w", err)
	}
	if count != 0 && count == int64(len(entries)) {
		return false, nil
	}

	log.Printf("Portfolio index has %d documents for %d entries, rebuilding", count, len(entries))
	if err := s.rebuildLocked(ctx, entries); err != nil {
		return false, err
	}
	return true, nil
}

// QueryLinks returns, per skill and in input order, up to n portfolio links
// ranked closest first. An empty skill list issues no query; an empty index
// yields an empty match list for every skill.
func (s *PortfolioIndexService) QueryLinks(ctx context.Context, skills []string, n int) ([]model.LinkResult, error) {
	if len(skills) == 0 {
		return []model.LinkResult{}, nil
	}
	if n <= 0 {
		n = s.nResults
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count portfolio documents: %w", err)
	}

	results := make([]model.LinkResult, 0, len(skills))
	for _, skill := range skills {
		result := model.LinkResult{Skill: skill, Matches: []model.LinkMatch{}}
		if count == 0 {
			results = append(results, result)
			continue
		}

		embedding, err := s.embedder.GenerateEmbedding(ctx, skill)
		if err != nil {
			return nil, fmt.Errorf("embed skill %q: %w", skill, err)
		}
		matches, err := s.store.Query(ctx, embedding, n)
		if err != nil {
			return nil, fmt.Errorf("query portfolio for %q: %w", skill, err)
		}
		if matches != nil {
			result.Matches = matches
		}
		results = append(results, result)
	}
	return results, nil
}

// QuerySkill is QueryLinks for a single free-text skill.
func (s *PortfolioIndexService) QuerySkill(ctx context.Context, skill string, n int) ([]model.LinkResult, error) {
	if strings.TrimSpace(skill) == "" {
		return []model.LinkResult{}, nil
	}
	return s.QueryLinks(ctx, []string{skill}, n)
}

// AddItem appends an entry to the table, persists it and indexes it.
func (s *PortfolioIndexService) AddItem(ctx context.Context, techstack, link string) error {
	entry := model.PortfolioEntry{
		Techstack: strings.TrimSpace(techstack),
		Link:      strings.TrimSpace(link),
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.document(ctx, entry)
	if err != nil {
		return err
	}

	entries := append(append([]model.PortfolioEntry{}, s.entries...), entry)
	if err := s.table.Save(entries); err != nil {
		return fmt.Errorf("save portfolio table: %w", err)
	}
	s.entries = entries

	if err := s.store.Add(ctx, []model.PortfolioDocument{doc}); err != nil {
		return fmt.Errorf("index portfolio entry: %w", err)
	}
	return nil
}

// RemoveItem deletes the entry at index, persists the table and rebuilds the
// whole index.
func (s *PortfolioIndexService) RemoveItem(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("%w: %d (have %d entries)", ErrIndexOutOfRange, index, len(s.entries))
	}

	entries := make([]model.PortfolioEntry, 0, len(s.entries)-1)
	entries = append(entries, s.entries[:index]...)
	entries = append(entries, s.entries[index+1:]...)

	if err := s.table.Save(entries); err != nil {
		return fmt.Errorf("save portfolio table: %w", err)
	}
	s.entries = entries
	return s.rebuildLocked(ctx, entries)
}

// ReplaceAll swaps in a whole new table, persists it and rebuilds.
func (s *PortfolioIndexService) ReplaceAll(ctx context.Context, entries []model.PortfolioEntry) error {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.table.Save(entries); err != nil {
		return fmt.Errorf("save portfolio table: %w", err)
	}
	s.entries = append([]model.PortfolioEntry{}, entries...)
	return s.rebuildLocked(ctx, s.entries)
}

// rebuildLocked embeds every entry before touching the store, so an embedding
// failure leaves the previous index in place.
func (s *PortfolioIndexService) rebuildLocked(ctx context.Context, entries []model.PortfolioEntry) error {
	docs := make([]model.PortfolioDocument, 0, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		doc, err := s.document(ctx, e)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset portfolio index: %w", err)
	}
	if err := s.store.Add(ctx, docs); err != nil {
		return fmt.Errorf("index portfolio entries: %w", err)
	}
	log.Printf("Portfolio index rebuilt with %d documents", len(docs))
	return nil
}

// document embeds the entry's techstack. An entry without a techstack is
// embedded by its link so it still occupies exactly one document.
func (s *PortfolioIndexService) document(ctx context.Context, e model.PortfolioEntry) (model.PortfolioDocument, error) {
	text := e.Techstack
	if strings.TrimSpace(text) == "" {
		text = e.Link
	}
	embedding, err := s.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return model.PortfolioDocument{}, fmt.Errorf("embed portfolio entry %q: %w", e.Link, err)
	}
	return model.PortfolioDocument{
		ID:        uuid.New(),
		Techstack: e.Techstack,
		Link:      e.Link,
		Embedding: pgvector.NewVector(embedding),
		CreatedAt: time.Now(),
	}, nil
}
