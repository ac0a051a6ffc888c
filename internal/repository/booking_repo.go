package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spotstay/booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOverlap is returned when a write trips the no-overlap exclusion constraint.
var ErrOverlap = errors.New("booking overlaps an existing booking on the same spot")

// SQLSTATE exclusion_violation
const exclusionViolation = "23P01"

type BookingRepository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindByUserWithSpot(ctx context.Context, userID uint) ([]models.Booking, error)
	FindUpcomingBySpot(ctx context.Context, tx *gorm.DB, spotID uint, from time.Time, excludeID uint) ([]models.Booking, error)
	UpdateDates(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *bookingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.conn(tx).WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the given transaction.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUserWithSpot(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Spot", func(db *gorm.DB) *gorm.DB {
			return db.Omit("created_at", "updated_at")
		}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindUpcomingBySpot returns bookings on the spot starting on or after from,
// other than excludeID.
func (r *bookingRepository) FindUpcomingBySpot(ctx context.Context, tx *gorm.DB, spotID uint, from time.Time, excludeID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.conn(tx).WithContext(ctx).
		Select("id", "spot_id", "start_date", "end_date").
		Where("spot_id = ? AND start_date >= ? AND id <> ?", spotID, from, excludeID).
		Order("start_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateDates(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	err := r.conn(tx).WithContext(ctx).
		Model(booking).
		Updates(map[string]any{
			"start_date": booking.StartDate,
			"end_date":   booking.EndDate,
		}).Error
	return translate(err)
}

func (r *bookingRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.conn(tx).WithContext(ctx).Delete(&models.Booking{}, id).Error
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return ErrOverlap
	}
	return err
}
