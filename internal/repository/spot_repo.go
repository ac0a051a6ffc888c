package repository

import (
	"context"

	"github.com/spotstay/booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SpotRepository interface {
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Spot, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Spot, error)
	Upsert(ctx context.Context, spot *models.Spot) error
	Delete(ctx context.Context, id uint) error
}

type spotRepository struct {
	db *gorm.DB
}

func NewSpotRepository(db *gorm.DB) SpotRepository {
	return &spotRepository{db: db}
}

func (r *spotRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *spotRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Spot, error) {
	var spot models.Spot
	if err := r.conn(tx).WithContext(ctx).First(&spot, id).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

// FindByIDForUpdate locks the spot row so edits on the same spot serialize.
func (r *spotRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Spot, error) {
	var spot models.Spot
	if err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&spot, id).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

// Upsert inserts the spot or refreshes it when the listing service's ID already exists.
func (r *spotRepository) Upsert(ctx context.Context, spot *models.Spot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"owner_id", "address", "city", "state", "country",
			"lat", "lng", "name", "description", "price", "updated_at",
		}),
	}).Create(spot).Error
}

func (r *spotRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Spot{}, id).Error
}
