package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/models"
)

// BookingStorage implements the BookingStorage interface for Badger
type BookingStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewBookingStorage creates a new BookingStorage instance
func NewBookingStorage(db *BadgerDB, logger arbor.ILogger) interfaces.BookingStorage {
	return &BookingStorage{
		db:     db,
		logger: logger,
	}
}

func (s *BookingStorage) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = common.NewBookingID()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	if err := s.db.Store().Insert(booking.ID, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Debug().
		Str("booking_id", booking.ID).
		Str("tenant_id", booking.TenantID).
		Str("service", booking.Service).
		Msg("Booking created")

	return nil
}

func (s *BookingStorage) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Store().Get(id, &booking); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingStorage) ListBookings(ctx context.Context, tenantID string) ([]*models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Store().Find(&bookings, badgerhold.Where("TenantID").Eq(tenantID).Index("TenantID"))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	result := make([]*models.Booking, len(bookings))
	for i := range bookings {
		result[i] = &bookings[i]
	}
	return result, nil
}
