// Package store is the persistence surface the enrichment engine consumes.
package store

import (
	"context"

	"github.com/toolindex/enrich/pkg/models"
)

// Store provides the three operations the engine needs: a filtered,
// ordered, limited selection of under-enriched tools, a full scan for
// reporting, and a sparse patch update by id.
type Store interface {
	// FindUnderEnriched returns up to limit tools with at least one
	// missing enrichment field, most visible tools first.
	FindUnderEnriched(ctx context.Context, limit int) ([]models.Tool, error)

	// AllTools returns every tool record.
	AllTools(ctx context.Context) ([]models.Tool, error)

	// UpdateTool applies a sparse patch to a single tool row.
	UpdateTool(ctx context.Context, id uint, patch models.Patch) error
}
