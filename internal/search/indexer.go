package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v7"

	"example.com/worklog/config"
	"example.com/worklog/domain"
)

// Index names, prefixed per environment via config.FormatIndex.
const (
	WorkLogEntriesIndex = "work-log-entries"
)

// NewClient creates an Elasticsearch client from config, nil when search
// is disabled.
func NewClient(cfg config.Config) (*elasticsearch.Client, error) {
	if !cfg.ElasticEnabled {
		return nil, nil
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
		Username:  cfg.ElasticUsername,
		Password:  cfg.ElasticPassword,
	})
}

// WorkLogIndexer is a post-save hook that mirrors work-log entries into
// an Elasticsearch index for free-text search. Index failures are
// reported to the hook runner, which logs and swallows them; the index
// can always be rebuilt from the event log.
type WorkLogIndexer struct {
	client *elasticsearch.Client
	cfg    config.Config
}

// NewWorkLogIndexer creates the indexing hook.
func NewWorkLogIndexer(client *elasticsearch.Client, cfg config.Config) *WorkLogIndexer {
	return &WorkLogIndexer{client: client, cfg: cfg}
}

// Name identifies the hook in logs.
func (h *WorkLogIndexer) Name() string { return "worklog-search-index" }

type workLogDocument struct {
	AggregateID string  `json:"aggregate_id"`
	TenantID    string  `json:"tenant_id"`
	MemberID    string  `json:"member_id"`
	ProjectID   string  `json:"project_id"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Note        string  `json:"note"`
	Status      string  `json:"status"`
	Version     int     `json:"version"`
}

// AfterSave upserts or removes the entry's search document.
func (h *WorkLogIndexer) AfterSave(ctx context.Context, agg domain.Aggregate, events []domain.Event) error {
	entry, ok := agg.(*domain.WorkLogEntry)
	if !ok || h.client == nil {
		return nil
	}

	index := config.FormatIndex(h.cfg, WorkLogEntriesIndex)

	if entry.State.Deleted {
		res, err := h.client.Delete(index, entry.AggregateID(),
			h.client.Delete.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("failed to delete search document: %w", err)
		}
		defer res.Body.Close()
		return nil
	}

	doc := workLogDocument{
		AggregateID: entry.AggregateID(),
		TenantID:    entry.State.TenantID,
		MemberID:    entry.State.MemberID,
		ProjectID:   entry.State.ProjectID,
		Date:        entry.State.Date,
		Hours:       entry.State.Hours,
		Note:        entry.State.Note,
		Status:      string(entry.State.Status),
		Version:     entry.Version(),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal search document: %w", err)
	}

	res, err := h.client.Index(
		index,
		bytes.NewReader(body),
		h.client.Index.WithDocumentID(entry.AggregateID()),
		h.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index search document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index search document: %s", res.String())
	}
	return nil
}
