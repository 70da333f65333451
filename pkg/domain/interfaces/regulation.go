package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
)

// RegulationRepository is a key-value store of structured regulations
// keyed by regulation name.
type RegulationRepository interface {
	Get(ctx context.Context, name string) (*model.Regulation, error)
	Put(ctx context.Context, reg *model.Regulation) error
	List(ctx context.Context) ([]*model.Regulation, error)
}
