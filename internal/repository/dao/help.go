package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrContentNotFound  = errors.New("help content not found")
	ErrRevisionNotFound = errors.New("revision not found")
	ErrRevisionConflict = errors.New("revision already recorded for this version")
)

// HelpContent stores an opaque rich-text blob; the core never interprets the
// body.
type HelpContent struct {
	ID          uint   `gorm:"primaryKey"`
	Kind        string `gorm:"not null;default:help"`
	EventTypeID *uint  `gorm:"index"`
	Title       string `gorm:"not null"`
	Body        string
	Version     int    `gorm:"not null;default:1"`
	ModifiedBy  string
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// HelpRevision rows are append-only, keyed by (content, version).
type HelpRevision struct {
	ID         uint `gorm:"primaryKey"`
	ContentID  uint `gorm:"not null;index;uniqueIndex:idx_content_version"`
	Version    int  `gorm:"not null;uniqueIndex:idx_content_version"`
	Body       string
	ModifiedBy string
	ChangeNote string
	CreatedAt  time.Time
}

type HelpDAO struct {
	db *gorm.DB
}

func NewHelpDAO(db *gorm.DB) *HelpDAO {
	return &HelpDAO{
		db: db,
	}
}

func (d *HelpDAO) Insert(ctx context.Context, content HelpContent) (HelpContent, error) {
	content.Version = 1

	result := d.db.WithContext(ctx).Create(&content)
	if result.Error != nil {
		return HelpContent{}, result.Error
	}

	return content, nil
}

func (d *HelpDAO) FindByID(ctx context.Context, id uint) (HelpContent, error) {
	var content HelpContent

	err := d.db.WithContext(ctx).First(&content, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HelpContent{}, ErrContentNotFound
		}

		return HelpContent{}, err
	}

	return content, nil
}

func (d *HelpDAO) FindAll(ctx context.Context, kind string) ([]HelpContent, error) {
	query := d.db.WithContext(ctx)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var contents []HelpContent
	if err := query.Order("title asc, id asc").Find(&contents).Error; err != nil {
		return nil, err
	}

	return contents, nil
}

// SaveVersion archives the current blob into the revision log, bumps the
// version counter and writes the new blob, all in one transaction.
func (d *HelpDAO) SaveVersion(ctx context.Context, id uint, body, modifiedBy, changeNote string) (HelpContent, error) {
	var content HelpContent

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&content, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContentNotFound
			}

			return err
		}

		revision := HelpRevision{
			ContentID:  content.ID,
			Version:    content.Version,
			Body:       content.Body,
			ModifiedBy: content.ModifiedBy,
			ChangeNote: changeNote,
		}
		if err := tx.Create(&revision).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrRevisionConflict
			}

			return err
		}

		content.Version++
		content.Body = body
		content.ModifiedBy = modifiedBy

		return tx.Save(&content).Error
	})
	if err != nil {
		return HelpContent{}, err
	}

	return content, nil
}

func (d *HelpDAO) FindRevisions(ctx context.Context, contentID uint) ([]HelpRevision, error) {
	var revisions []HelpRevision

	err := d.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("version desc").
		Find(&revisions).Error
	if err != nil {
		return nil, err
	}

	return revisions, nil
}

func (d *HelpDAO) FindRevision(ctx context.Context, contentID uint, version int) (HelpRevision, error) {
	var revision HelpRevision

	err := d.db.WithContext(ctx).
		Where("content_id = ? AND version = ?", contentID, version).
		First(&revision).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HelpRevision{}, ErrRevisionNotFound
		}

		return HelpRevision{}, err
	}

	return revision, nil
}

func (d *HelpDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&HelpRevision{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&HelpContent{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrContentNotFound
		}

		return nil
	})
}
