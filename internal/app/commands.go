package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"tour_service/internal/adapters/observability"
	"tour_service/internal/domain"
)

const notifyTimeout = 5 * time.Second

type BookingService struct {
	store    domain.DocumentStore
	notifier domain.Notifier
}

func NewBookingService(st domain.DocumentStore, n domain.Notifier) *BookingService {
	return &BookingService{store: st, notifier: n}
}

// Create stores b as-is and returns the datastore id. tour_id is not checked
// against the catalog.
func (s *BookingService) Create(ctx context.Context, b domain.Booking) (string, error) {
	if s.store == nil {
		return "", domain.ErrStoreUnavailable
	}
	id, err := s.store.InsertOne(ctx, domain.BookingCollection, b)
	if err != nil {
		return "", err
	}
	log.Info().Str("booking_id", id).Str("tour_id", b.TourID).Int("guests", b.Guests).Msg("booking created")

	if s.notifier != nil {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		err := s.notifier.NotifyBooking(nctx, id, b)
		observability.ObserveNotification("booking", err)
		if err != nil {
			log.Warn().Err(err).Str("booking_id", id).Msg("booking notification failed")
		}
	}
	return id, nil
}

type InquiryService struct {
	store    domain.DocumentStore
	notifier domain.Notifier
}

func NewInquiryService(st domain.DocumentStore, n domain.Notifier) *InquiryService {
	return &InquiryService{store: st, notifier: n}
}

func (s *InquiryService) Submit(ctx context.Context, in domain.Inquiry) error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	id, err := s.store.InsertOne(ctx, domain.InquiryCollection, in)
	if err != nil {
		return err
	}
	log.Info().Str("inquiry_id", id).Msg("inquiry received")

	if s.notifier != nil {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		err := s.notifier.NotifyInquiry(nctx, in)
		observability.ObserveNotification("inquiry", err)
		if err != nil {
			log.Warn().Err(err).Str("inquiry_id", id).Msg("inquiry notification failed")
		}
	}
	return nil
}
