package servicerequestrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/wrp-ops/opsconsole/internal/domain"
	"github.com/wrp-ops/opsconsole/internal/ports/out/servicerequestrepo"
)

// Repo is an in-memory implementation of servicerequestrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.ServiceRequestID]domain.ServiceRequest
}

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.ServiceRequestID]domain.ServiceRequest)}
}

func (r *Repo) Create(_ context.Context, sr domain.ServiceRequest) error {
	if sr.ID == "" {
		return servicerequestrepo.ErrAlreadyExists // empty ID is never valid; app layer assigns IDs
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[sr.ID]; ok {
		return servicerequestrepo.ErrAlreadyExists
	}
	r.byID[sr.ID] = cloneRequest(sr)
	return nil
}

func (r *Repo) GetByID(_ context.Context, id domain.ServiceRequestID) (domain.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sr, ok := r.byID[id]
	if !ok {
		return domain.ServiceRequest{}, servicerequestrepo.ErrNotFound
	}
	return cloneRequest(sr), nil
}

func (r *Repo) List(_ context.Context, limit int) ([]domain.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ServiceRequest, 0, len(r.byID))
	for _, sr := range r.byID {
		out = append(out, cloneRequest(sr))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repo) SetCorrelationID(_ context.Context, id domain.ServiceRequestID, corr domain.CorrelationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sr, ok := r.byID[id]
	if !ok {
		return servicerequestrepo.ErrNotFound
	}
	sr.CorrelationID = corr
	r.byID[id] = sr
	return nil
}

func cloneRequest(sr domain.ServiceRequest) domain.ServiceRequest {
	out := sr
	if sr.Container != nil {
		c := *sr.Container
		out.Container = &c
	}
	return out
}
