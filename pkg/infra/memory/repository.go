// Package memory is the default in-process analysis store, used when no
// Firestore project is configured and as the repository double in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"techlens/pkg/domain/interfaces"
	"techlens/pkg/domain/model"
	"techlens/pkg/domain/types"
)

type repository struct {
	mu       sync.RWMutex
	analyses map[types.AnalysisID]*model.Analysis
}

// NewRepository creates an empty in-memory analysis repository
func NewRepository() interfaces.AnalysisRepository {
	return &repository{
		analyses: make(map[types.AnalysisID]*model.Analysis),
	}
}

func (r *repository) Put(_ context.Context, analysis *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses[analysis.ID] = analysis
	return nil
}

func (r *repository) Get(_ context.Context, id types.AnalysisID) (*model.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	analysis, ok := r.analyses[id]
	if !ok {
		return nil, types.ErrAnalysisNotFound
	}
	return analysis, nil
}

func (r *repository) List(_ context.Context, limit int) ([]*model.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*model.Analysis, 0, len(r.analyses))
	for _, a := range r.analyses {
		results = append(results, a)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
