package repository

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

var (
	ErrContentNotFound  = dao.ErrContentNotFound
	ErrRevisionNotFound = dao.ErrRevisionNotFound
	ErrRevisionConflict = dao.ErrRevisionConflict
)

type HelpDAO interface {
	Insert(ctx context.Context, content dao.HelpContent) (dao.HelpContent, error)
	FindByID(ctx context.Context, id uint) (dao.HelpContent, error)
	FindAll(ctx context.Context, kind string) ([]dao.HelpContent, error)
	SaveVersion(ctx context.Context, id uint, body, modifiedBy, changeNote string) (dao.HelpContent, error)
	FindRevisions(ctx context.Context, contentID uint) ([]dao.HelpRevision, error)
	FindRevision(ctx context.Context, contentID uint, version int) (dao.HelpRevision, error)
	Delete(ctx context.Context, id uint) error
}

// HelpRepository persists opaque rich-text blobs with a versioned revision
// history. Rendering and editing belong to the presentation layer.
type HelpRepository struct {
	dao HelpDAO
}

func NewHelpRepository(dao HelpDAO) *HelpRepository {
	return &HelpRepository{
		dao: dao,
	}
}

func helpDaoToDomain(c dao.HelpContent) domain.HelpContent {
	return domain.HelpContent{
		ID:          c.ID,
		Kind:        domain.HelpContentKind(c.Kind),
		EventTypeID: c.EventTypeID,
		Title:       c.Title,
		Body:        c.Body,
		Version:     c.Version,
		ModifiedBy:  c.ModifiedBy,
		UpdatedAt:   c.UpdatedAt,
	}
}

func revisionDaoToDomain(rev dao.HelpRevision) domain.HelpRevision {
	return domain.HelpRevision{
		ID:         rev.ID,
		ContentID:  rev.ContentID,
		Version:    rev.Version,
		Body:       rev.Body,
		ModifiedBy: rev.ModifiedBy,
		ChangeNote: rev.ChangeNote,
		CreatedAt:  rev.CreatedAt,
	}
}

func (r *HelpRepository) CreateContent(ctx context.Context, content domain.HelpContent) (domain.HelpContent, error) {
	if err := validation.Validate(content.Title, validation.Required); err != nil {
		return domain.HelpContent{}, fmt.Errorf("title: %w", err)
	}

	created, err := r.dao.Insert(ctx, dao.HelpContent{
		Kind:        string(content.Kind),
		EventTypeID: content.EventTypeID,
		Title:       content.Title,
		Body:        content.Body,
		ModifiedBy:  content.ModifiedBy,
	})
	if err != nil {
		return domain.HelpContent{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return helpDaoToDomain(created), nil
}

func (r *HelpRepository) GetContent(ctx context.Context, id uint) (domain.HelpContent, error) {
	content, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.HelpContent{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return helpDaoToDomain(content), nil
}

func (r *HelpRepository) ListContent(ctx context.Context, kind domain.HelpContentKind) ([]domain.HelpContent, error) {
	contents, err := r.dao.FindAll(ctx, string(kind))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	out := make([]domain.HelpContent, len(contents))
	for i, c := range contents {
		out[i] = helpDaoToDomain(c)
	}

	return out, nil
}

// SaveNewVersion archives the current blob in the revision log and bumps the
// version counter atomically.
func (r *HelpRepository) SaveNewVersion(ctx context.Context, id uint, body, modifiedBy, changeNote string) (domain.HelpContent, error) {
	saved, err := r.dao.SaveVersion(ctx, id, body, modifiedBy, changeNote)
	if err != nil {
		return domain.HelpContent{}, fmt.Errorf("r.dao.SaveVersion -> %w", err)
	}

	return helpDaoToDomain(saved), nil
}

func (r *HelpRepository) GetRevisions(ctx context.Context, contentID uint) ([]domain.HelpRevision, error) {
	revisions, err := r.dao.FindRevisions(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRevisions -> %w", err)
	}

	out := make([]domain.HelpRevision, len(revisions))
	for i, rev := range revisions {
		out[i] = revisionDaoToDomain(rev)
	}

	return out, nil
}

// RestoreRevision brings an archived blob back as a new version, so the
// restore itself is captured in the history.
func (r *HelpRepository) RestoreRevision(ctx context.Context, contentID uint, version int, modifiedBy string) (domain.HelpContent, error) {
	revision, err := r.dao.FindRevision(ctx, contentID, version)
	if err != nil {
		return domain.HelpContent{}, fmt.Errorf("r.dao.FindRevision -> %w", err)
	}

	note := fmt.Sprintf("Restored version %d", version)

	restored, err := r.dao.SaveVersion(ctx, contentID, revision.Body, modifiedBy, note)
	if err != nil {
		return domain.HelpContent{}, fmt.Errorf("r.dao.SaveVersion -> %w", err)
	}

	return helpDaoToDomain(restored), nil
}

func (r *HelpRepository) DeleteContent(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
