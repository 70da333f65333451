package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type requirementDoc struct {
	ID       string `firestore:"id"`
	Text     string `firestore:"requirement"`
	Category string `firestore:"category"`
	Severity string `firestore:"severity"`
}

type regulationDoc struct {
	Name              string           `firestore:"name"`
	KeyRequirements   []requirementDoc `firestore:"key_requirements"`
	ApplicableSystems []string         `firestore:"applicable_systems"`
	MaxFinePercentage float64          `firestore:"max_fine_percentage"`
	FineDescription   string           `firestore:"fine_description"`
}

func toRegulationDoc(reg *model.Regulation) *regulationDoc {
	doc := &regulationDoc{
		Name:              reg.Name,
		ApplicableSystems: reg.ApplicableSystems,
		MaxFinePercentage: reg.Penalties.MaxFinePercentage,
		FineDescription:   reg.Penalties.Description,
	}
	for _, req := range reg.KeyRequirements {
		doc.KeyRequirements = append(doc.KeyRequirements, requirementDoc{
			ID:       req.ID,
			Text:     req.Text,
			Category: req.Category.String(),
			Severity: req.Severity.String(),
		})
	}
	return doc
}

func (d *regulationDoc) toModel() *model.Regulation {
	reg := &model.Regulation{
		Name:              d.Name,
		ApplicableSystems: d.ApplicableSystems,
		Penalties: model.Penalty{
			MaxFinePercentage: d.MaxFinePercentage,
			Description:       d.FineDescription,
		},
	}
	for _, req := range d.KeyRequirements {
		reg.KeyRequirements = append(reg.KeyRequirements, model.Requirement{
			ID:       req.ID,
			Text:     req.Text,
			Category: types.Category(req.Category),
			Severity: types.Severity(req.Severity),
		})
	}
	return reg
}

type regulationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRegulationRepository(client *firestore.Client) *regulationRepository {
	return &regulationRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *regulationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_regulations"
	}
	return "regulations"
}

func (r *regulationRepository) Get(ctx context.Context, name string) (*model.Regulation, error) {
	doc, err := r.client.Collection(r.collection()).Doc(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "regulation not found", goerr.V("name", name))
		}
		return nil, goerr.Wrap(err, "failed to get regulation", goerr.V("name", name))
	}

	var data regulationDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to decode regulation document", goerr.V("name", name))
	}

	return data.toModel(), nil
}

func (r *regulationRepository) Put(ctx context.Context, reg *model.Regulation) error {
	if reg == nil || reg.Name == "" {
		return goerr.New("regulation name is required")
	}

	if _, err := r.client.Collection(r.collection()).Doc(reg.Name).Set(ctx, toRegulationDoc(reg)); err != nil {
		return goerr.Wrap(err, "failed to put regulation", goerr.V("name", reg.Name))
	}

	return nil
}

func (r *regulationRepository) List(ctx context.Context) ([]*model.Regulation, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var regs []*model.Regulation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate regulations")
		}

		var data regulationDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to decode regulation document", goerr.V("doc", doc.Ref.ID))
		}
		regs = append(regs, data.toModel())
	}

	return regs, nil
}
