package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spotstay/booking-service/internal/dto"
	"github.com/spotstay/booking-service/internal/models"
	"github.com/spotstay/booking-service/internal/repository"
	"gorm.io/gorm"
)

// Routing keys published after a committed mutation.
const (
	RoutingBookingUpdated = "booking.updated"
	RoutingBookingDeleted = "booking.deleted"
)

type BookingService interface {
	ListForUser(ctx context.Context, principal *models.Principal) ([]models.Booking, error)
	Edit(ctx context.Context, bookingID uint, principal *models.Principal, patch BookingPatch) (*models.Booking, error)
	Delete(ctx context.Context, bookingID uint, principal *models.Principal) error
}

type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type Option func(*bookingService)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *bookingService) { s.now = now }
}

// WithLocation sets the zone whose calendar decides what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *bookingService) { s.loc = loc }
}

// WithPublisher enables booking.* notifications.
func WithPublisher(p EventPublisher) Option {
	return func(s *bookingService) { s.publisher = p }
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	spotRepo    repository.SpotRepository
	publisher   EventPublisher
	now         func() time.Time
	loc         *time.Location
}

func NewBookingService(bookingRepo repository.BookingRepository, spotRepo repository.SpotRepository, opts ...Option) BookingService {
	s := &bookingService{
		bookingRepo: bookingRepo,
		spotRepo:    spotRepo,
		now:         time.Now,
		loc:         time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) today() time.Time {
	return DateOf(s.now(), s.loc)
}

func (s *bookingService) ListForUser(ctx context.Context, principal *models.Principal) ([]models.Booking, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}

	bookings, err := s.bookingRepo.FindByUserWithSpot(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %d: %w", principal.ID, err)
	}
	return bookings, nil
}

func (s *bookingService) Edit(ctx context.Context, bookingID uint, principal *models.Principal, patch BookingPatch) (*models.Booking, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}

	var result *models.Booking
	today := s.today()

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// 1. Lock the booking row
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("find booking %d: %w", bookingID, err)
		}

		// 2. Only the renter may change dates
		if booking.UserID != principal.ID {
			return ErrForbidden
		}

		// 3. Validate the merged range
		start, end := patch.Resolve(*booking)
		if err := ValidateRange(start, end, today); err != nil {
			return err
		}

		// 4. Lock the spot so concurrent edits on it serialize. A spot not yet
		// synced locally is still guarded by the exclusion constraint.
		if _, err := s.spotRepo.FindByIDForUpdate(ctx, tx, booking.SpotID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lock spot %d: %w", booking.SpotID, err)
		}

		// 5. Check against upcoming bookings on the same spot
		upcoming, err := s.bookingRepo.FindUpcomingBySpot(ctx, tx, booking.SpotID, today, booking.ID)
		if err != nil {
			return fmt.Errorf("find upcoming bookings for spot %d: %w", booking.SpotID, err)
		}
		if FindConflict(upcoming, start, end) != nil {
			return conflictError()
		}

		// 6. Write only the date fields
		booking.StartDate = start
		booking.EndDate = end
		if err := s.bookingRepo.UpdateDates(ctx, tx, booking); err != nil {
			if errors.Is(err, repository.ErrOverlap) {
				return conflictError()
			}
			return fmt.Errorf("update booking %d: %w", booking.ID, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BookingService] booking %d moved to %s..%s by user %d",
		result.ID, result.StartDate.Format(models.DateLayout), result.EndDate.Format(models.DateLayout), principal.ID)
	s.publish(RoutingBookingUpdated, result, principal.ID)

	return result, nil
}

func (s *bookingService) Delete(ctx context.Context, bookingID uint, principal *models.Principal) error {
	if principal == nil {
		return ErrUnauthorized
	}

	var deleted *models.Booking
	today := s.today()

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("find booking %d: %w", bookingID, err)
		}

		// Renter or spot owner
		ownerID, err := s.spotOwner(ctx, tx, booking.SpotID)
		if err != nil {
			return err
		}
		if booking.UserID != principal.ID && (ownerID == nil || *ownerID != principal.ID) {
			return ErrForbidden
		}

		if booking.StartDate.Before(today) {
			return ErrAlreadyStarted
		}

		if err := s.bookingRepo.Delete(ctx, tx, booking.ID); err != nil {
			return fmt.Errorf("delete booking %d: %w", booking.ID, err)
		}
		deleted = booking
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[BookingService] booking %d deleted by user %d", deleted.ID, principal.ID)
	s.publish(RoutingBookingDeleted, deleted, principal.ID)

	return nil
}

// spotOwner returns nil when the spot is not in the local copy.
func (s *bookingService) spotOwner(ctx context.Context, tx *gorm.DB, spotID uint) (*uint, error) {
	spot, err := s.spotRepo.FindByID(ctx, tx, spotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find spot %d: %w", spotID, err)
	}
	return &spot.OwnerID, nil
}

func (s *bookingService) publish(routingKey string, booking *models.Booking, actorID uint) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, dto.ToBookingMessage(booking, actorID)); err != nil {
		log.Printf("[BookingService] failed to publish %s for booking %d: %v", routingKey, booking.ID, err)
	}
}
