package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
)

type regulationRepository struct {
	mu          sync.RWMutex
	regulations map[string]*model.Regulation
}

func newRegulationRepository() *regulationRepository {
	return &regulationRepository{
		regulations: make(map[string]*model.Regulation),
	}
}

func (r *regulationRepository) Get(ctx context.Context, name string) (*model.Regulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, exists := r.regulations[name]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "regulation not found", goerr.V("name", name))
	}

	// Return a copy to prevent external modification
	return reg.Clone(), nil
}

func (r *regulationRepository) Put(ctx context.Context, reg *model.Regulation) error {
	if reg == nil || reg.Name == "" {
		return goerr.New("regulation name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.regulations[reg.Name] = reg.Clone()
	return nil
}

func (r *regulationRepository) List(ctx context.Context) ([]*model.Regulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]*model.Regulation, 0, len(r.regulations))
	for _, reg := range r.regulations {
		regs = append(regs, reg.Clone())
	}

	return regs, nil
}
