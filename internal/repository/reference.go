package repository

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

var ErrDuplicateName = dao.ErrDuplicateName

type ReferenceDAO interface {
	ListEventTypes(ctx context.Context) ([]dao.Reference, error)
	GetOrCreateEventType(ctx context.Context, name string) (dao.Reference, error)
	ListPlayingFormats(ctx context.Context) ([]dao.Reference, error)
	GetOrCreatePlayingFormat(ctx context.Context, name string) (dao.Reference, error)
	ListPairingMethods(ctx context.Context) ([]dao.Reference, error)
	GetOrCreatePairingMethod(ctx context.Context, name string) (dao.Reference, error)
	ListPairingApps(ctx context.Context) ([]dao.Reference, error)
	GetOrCreatePairingApp(ctx context.Context, name string) (dao.Reference, error)
	ListChecklistCategories(ctx context.Context) ([]dao.Reference, error)
	GetOrCreateChecklistCategory(ctx context.Context, name string) (dao.Reference, error)
	ListCostCategories(ctx context.Context) ([]dao.Reference, error)
	GetOrCreateCostCategory(ctx context.Context, name string) (dao.Reference, error)
}

// ReferenceCatalog fronts the small enumerations. Enumerations grow through
// get-or-create; there is no separate management surface, and values no
// longer used by any event are kept.
type ReferenceCatalog struct {
	dao ReferenceDAO
}

func NewReferenceCatalog(dao ReferenceDAO) *ReferenceCatalog {
	return &ReferenceCatalog{
		dao: dao,
	}
}

func refsToDomain(rows []dao.Reference) []domain.Reference {
	out := make([]domain.Reference, len(rows))
	for i, r := range rows {
		out[i] = domain.Reference{ID: r.ID, Name: r.Name}
	}

	return out
}

type listFn func(ctx context.Context) ([]dao.Reference, error)
type getOrCreateFn func(ctx context.Context, name string) (dao.Reference, error)

func (c *ReferenceCatalog) list(ctx context.Context, fn listFn) ([]domain.Reference, error) {
	rows, err := fn(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.dao list -> %w", err)
	}

	return refsToDomain(rows), nil
}

func (c *ReferenceCatalog) getOrCreate(ctx context.Context, fn getOrCreateFn, name string) (domain.Reference, error) {
	if err := validation.Validate(name, validation.Required); err != nil {
		return domain.Reference{}, fmt.Errorf("name: %w", err)
	}

	row, err := fn(ctx, name)
	if err != nil {
		return domain.Reference{}, fmt.Errorf("c.dao getOrCreate -> %w", err)
	}

	return domain.Reference{ID: row.ID, Name: row.Name}, nil
}

func (c *ReferenceCatalog) ListEventTypes(ctx context.Context) ([]domain.Reference, error) {
	return c.list(ctx, c.dao.ListEventTypes)
}

func (c *ReferenceCatalog) GetOrCreateEventType(ctx context.Context, name string) (domain.Reference, error) {
	return c.getOrCreate(ctx, c.dao.GetOrCreateEventType, name)
}

func (c *ReferenceCatalog) ListPlayingFormats(ctx context.Context) ([]domain.Reference, error) {
	return c.list(ctx, c.dao.ListPlayingFormats)
}

func (c *ReferenceCatalog) GetOrCreatePlayingFormat(ctx context.Context, name string) (domain.Reference, error) {
	return c.getOrCreate(ctx, c.dao.GetOrCreatePlayingFormat, name)
}

func (c *ReferenceCatalog) ListPairingMethods(ctx context.Context) ([]domain.Reference, error) {
	return c.list(ctx, c.dao.ListPairingMethods)
}

func (c *ReferenceCatalog) GetOrCreatePairingMethod(ctx context.Context, name string) (domain.Reference, error) {
	return c.getOrCreate(ctx, c.dao.GetOrCreatePairingMethod, name)
}

func (c *ReferenceCatalog) ListPairingApps(ctx context.Context) ([]domain.Reference, error) {
	return c.list(ctx, c.dao.ListPairingApps)
}

func (c *ReferenceCatalog) GetOrCreatePairingApp(ctx context.Context, name string) (domain.Reference, error) {
	return c.getOrCreate(ctx, c.dao.GetOrCreatePairingApp, name)
}

func (c *ReferenceCatalog) ListChecklistCategories(ctx context.Context) ([]domain.Reference, error) {
	return c.list(ctx, c.dao.ListChecklistCategories)
}

func (c *ReferenceCatalog) GetOrCreateChecklistCategory(ctx context.Context, name string) (domain.Reference, error) {
	return c.getOrCreate(ctx, c.dao.GetOrCreateChecklistCategory, name)
}

func (c *ReferenceCatalog) ListCostCategories(ctx context.Context) ([]domain.Reference, error) {
	return c.list(ctx, c.dao.ListCostCategories)
}

func (c *ReferenceCatalog) GetOrCreateCostCategory(ctx context.Context, name string) (domain.Reference, error) {
	return c.getOrCreate(ctx, c.dao.GetOrCreateCostCategory, name)
}
