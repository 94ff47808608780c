package dao

import (
	"context"
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var ErrDuplicateName = errors.New("name already exists")

type EventType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type PlayingFormat struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type PairingMethod struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type PairingApp struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type ChecklistCategory struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type CostCategory struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

// isUniqueViolation classifies the sqlite constraint error underneath gorm,
// the way a server-backed store would inspect its driver's error codes.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

type ReferenceDAO struct {
	db *gorm.DB
}

func NewReferenceDAO(db *gorm.DB) *ReferenceDAO {
	return &ReferenceDAO{
		db: db,
	}
}

type Reference struct {
	ID   uint
	Name string
}

func (d *ReferenceDAO) list(ctx context.Context, model interface{}) ([]Reference, error) {
	var rows []Reference

	err := d.db.WithContext(ctx).Model(model).Order("name asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// getOrCreate looks the name up exactly; absent names insert a new row. The
// unique-violation retry covers the race where the row appeared between the
// lookup and the insert.
func (d *ReferenceDAO) getOrCreate(ctx context.Context, model interface{}, name string) (Reference, error) {
	var row Reference

	err := d.db.WithContext(ctx).Model(model).Where("name = ?", name).First(&row).Error
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Reference{}, err
	}

	if err := d.db.WithContext(ctx).Model(model).Create(map[string]interface{}{"name": name}).Error; err != nil {
		if isUniqueViolation(err) {
			err = d.db.WithContext(ctx).Model(model).Where("name = ?", name).First(&row).Error
			if err != nil {
				return Reference{}, err
			}

			return row, nil
		}

		return Reference{}, err
	}

	err = d.db.WithContext(ctx).Model(model).Where("name = ?", name).First(&row).Error
	if err != nil {
		return Reference{}, err
	}

	return row, nil
}

func (d *ReferenceDAO) ListEventTypes(ctx context.Context) ([]Reference, error) {
	return d.list(ctx, &EventType{})
}

func (d *ReferenceDAO) GetOrCreateEventType(ctx context.Context, name string) (Reference, error) {
	return d.getOrCreate(ctx, &EventType{}, name)
}

func (d *ReferenceDAO) ListPlayingFormats(ctx context.Context) ([]Reference, error) {
	return d.list(ctx, &PlayingFormat{})
}

func (d *ReferenceDAO) GetOrCreatePlayingFormat(ctx context.Context, name string) (Reference, error) {
	return d.getOrCreate(ctx, &PlayingFormat{}, name)
}

func (d *ReferenceDAO) ListPairingMethods(ctx context.Context) ([]Reference, error) {
	return d.list(ctx, &PairingMethod{})
}

func (d *ReferenceDAO) GetOrCreatePairingMethod(ctx context.Context, name string) (Reference, error) {
	return d.getOrCreate(ctx, &PairingMethod{}, name)
}

func (d *ReferenceDAO) ListPairingApps(ctx context.Context) ([]Reference, error) {
	return d.list(ctx, &PairingApp{})
}

func (d *ReferenceDAO) GetOrCreatePairingApp(ctx context.Context, name string) (Reference, error) {
	return d.getOrCreate(ctx, &PairingApp{}, name)
}

func (d *ReferenceDAO) ListChecklistCategories(ctx context.Context) ([]Reference, error) {
	return d.list(ctx, &ChecklistCategory{})
}

func (d *ReferenceDAO) GetOrCreateChecklistCategory(ctx context.Context, name string) (Reference, error) {
	return d.getOrCreate(ctx, &ChecklistCategory{}, name)
}

func (d *ReferenceDAO) ListCostCategories(ctx context.Context) ([]Reference, error) {
	return d.list(ctx, &CostCategory{})
}

func (d *ReferenceDAO) GetOrCreateCostCategory(ctx context.Context, name string) (Reference, error) {
	return d.getOrCreate(ctx, &CostCategory{}, name)
}
